package decimal

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

var hundred = decimal.NewFromInt(100)

// MustFromString parses decimal from string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Mul multiplies two decimals without rounding
func Mul(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b)
}

// ApplyDiscount computes: amount * (1 - percent/100)
func ApplyDiscount(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(1).Sub(percent.Div(hundred)))
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// IsPositive returns true if decimal is greater than zero
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(Zero)
}

// IsNonNegative returns true if decimal is >= zero
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}

// InPercentRange returns true if 0 <= d <= 100
func InPercentRange(d decimal.Decimal) bool {
	return IsNonNegative(d) && d.LessThanOrEqual(hundred)
}

// RoundPLN rounds to grosze (2 decimal places)
func RoundPLN(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
