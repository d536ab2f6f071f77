// Package money renders decimal amounts for display. Amounts are never rounded
// before they reach this package.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Format renders n as dollars with two places; negatives use accounting parentheses.
func Format(n decimal.Decimal) string {
	s := "$" + n.Abs().StringFixed(2)
	if n.IsNegative() {
		return "(" + s + ")"
	}
	return s
}

// FormatRate renders a fractional rate as a percentage with one decimal place.
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(1) + "%"
}

// Parse reads a plain decimal amount such as "12.50"; surrounding space is ignored.
func Parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}
