package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	money "github.com/rezonia/ifirma/internal/decimal"
)

// Position is one invoice line item
type Position struct {
	VATRate   decimal.Decimal // fraction, e.g. 0.23
	Quantity  decimal.Decimal
	BasePrice decimal.Decimal // unit price
	FullName  string
	Unit      string
	PKWiU     *string          // classification code
	Discount  *decimal.Decimal // percent, 0-100
	VATType   VATType
}

// NewPosition creates a percentage-VAT position without discount
func NewPosition(vatRate, quantity, basePrice decimal.Decimal, fullName, unit string) Position {
	return Position{
		VATRate:   vatRate,
		Quantity:  quantity,
		BasePrice: basePrice,
		FullName:  fullName,
		Unit:      unit,
		VATType:   VATTypePercentage,
	}
}

// WithDiscount returns a copy of p with the discount percentage set
func (p Position) WithDiscount(percent decimal.Decimal) Position {
	p.Discount = &percent
	return p
}

// WithPKWiU returns a copy of p with the classification code set
func (p Position) WithPKWiU(code string) Position {
	p.PKWiU = &code
	return p
}

// Contribution is the amount this line adds to the invoice total:
// quantity * base price, reduced by the discount when one is set.
func (p Position) Contribution() decimal.Decimal {
	amount := money.Mul(p.Quantity, p.BasePrice)
	if p.Discount != nil {
		return money.ApplyDiscount(amount, *p.Discount)
	}
	return amount
}

func (p Position) vatType() VATType {
	if p.VATType == "" {
		return VATTypePercentage
	}
	return p.VATType
}

// Validate checks the line item; index is used in the reported field path
func (p Position) Validate(index int) error {
	field := func(name string) string {
		return fmt.Sprintf("positions[%d].%s", index, name)
	}

	if strings.TrimSpace(p.FullName) == "" {
		return requiredError(field("full_name"))
	}
	if strings.TrimSpace(p.Unit) == "" {
		return requiredError(field("unit"))
	}
	if !money.IsPositive(p.Quantity) {
		return NewValidationError(field("quantity"), p.Quantity.String(), RulePositive, "must be greater than zero")
	}
	if !money.IsNonNegative(p.BasePrice) {
		return NewValidationError(field("base_price"), p.BasePrice.String(), RuleRange, "must not be negative")
	}
	if p.VATRate.IsNegative() || p.VATRate.GreaterThan(decimal.NewFromInt(1)) {
		return NewValidationError(field("vat_rate"), p.VATRate.String(), RuleRange, "must be a fraction between 0 and 1")
	}
	if p.Discount != nil && !money.InPercentRange(*p.Discount) {
		return NewValidationError(field("discount"), p.Discount.String(), RuleRange, "must be between 0 and 100")
	}
	if !p.vatType().Valid() {
		return NewValidationError(field("vat_type"), string(p.VATType), RuleEnum, "must be PRC or ZW")
	}
	return nil
}
