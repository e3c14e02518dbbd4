package decimal

import (
	"github.com/shopspring/decimal"
)

// Number is a decimal that encodes as a bare JSON number rather than the
// quoted string shopspring/decimal emits by default. The vendor rejects
// quoted amounts.
type Number struct {
	decimal.Decimal
}

// NewNumber wraps d for JSON encoding
func NewNumber(d decimal.Decimal) Number {
	return Number{Decimal: d}
}

// NumberPtr wraps an optional decimal; nil stays nil and encodes as null
func NumberPtr(d *decimal.Decimal) *Number {
	if d == nil {
		return nil
	}
	n := NewNumber(*d)
	return &n
}

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}
