package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category groups products for reporting, promotions and tax.
type Category string

const (
	CategoryAppliance             Category = "appliance"
	CategoryDecor                 Category = "decor"
	CategoryConstructionMaterials Category = "construction-materials"
	CategoryApparel               Category = "apparel"
	CategoryFood                  Category = "food"
)

var (
	standardRate = decimal.RequireFromString("0.23")
	reducedRate  = decimal.RequireFromString("0.06")

	taxRates = map[Category]decimal.Decimal{
		CategoryAppliance:             standardRate,
		CategoryDecor:                 standardRate,
		CategoryConstructionMaterials: standardRate,
		CategoryApparel:               standardRate,
		CategoryFood:                  reducedRate,
	}
)

// Categories lists every recognised category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryAppliance,
		CategoryDecor,
		CategoryConstructionMaterials,
		CategoryApparel,
		CategoryFood,
	}
}

// Valid reports whether c is a recognised category.
func (c Category) Valid() bool {
	_, ok := taxRates[c]
	return ok
}

// ParseCategory normalises raw input into a Category.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
	}
	return c, nil
}

// TaxRate returns the VAT rate applied to the category. Unknown categories are untaxed.
func TaxRate(c Category) decimal.Decimal {
	rate, ok := taxRates[c]
	if !ok {
		return decimal.Zero
	}
	return rate
}
