// Package money formats storefront prices.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const Symbol = "$"

// Format renders an amount with two decimal places and the currency prefix.
func Format(amount decimal.Decimal) string {
	return Symbol + amount.StringFixed(2)
}

// Parse reads a formatted amount back into a decimal, tolerating the prefix.
func Parse(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), Symbol))
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", value, err)
	}
	return amount, nil
}
