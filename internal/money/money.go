// Package money holds the decimal helpers shared by every component that
// handles currency amounts.
package money

import "github.com/shopspring/decimal"

// Places is the number of fraction digits amounts are finalised to.
const Places = 2

// Round2 rounds an amount half away from zero to two fraction digits.
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(Places)
}

// New builds an amount from a decimal literal such as "19.90". It panics on
// malformed input and is meant for constants and fixtures.
func New(literal string) decimal.Decimal {
	return decimal.RequireFromString(literal)
}

// Sum adds amounts without intermediate rounding.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// SumBy adds the amount extracted from each element without intermediate
// rounding.
func SumBy[T any](items []T, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(amount(it))
	}
	return total
}
