package pricing

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/customer"
	"github.com/noah-isme/toko-checkout/internal/money"
)

// LineItem is one SKU line at checkout time. UnitPrice is frozen when the
// item enters the cart and is never re-read from the catalog while pricing.
type LineItem struct {
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// LineTotal returns quantity times unit price rounded to cents.
func (l LineItem) LineTotal() decimal.Decimal {
	return money.Round2(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
}

// UnitRecord is a single physical unit, used by unit-granular promotions.
type UnitRecord struct {
	SKU       string
	UnitPrice decimal.Decimal
	Category  catalog.Category
}

// DiscountLine is one applied discount. Amount is never negative.
type DiscountLine struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Request is the input to Engine.Calculate.
type Request struct {
	Customer   customer.Classification
	Items      []LineItem
	CouponCode string
}

// Breakdown is the itemised result of a price calculation. Discounts are
// listed in application order.
type Breakdown struct {
	Subtotal      decimal.Decimal
	Discounts     []DiscountLine
	TotalDiscount decimal.Decimal
	TaxableBase   decimal.Decimal
	TaxByCategory map[catalog.Category]decimal.Decimal
	TotalTax      decimal.Decimal
	Shipping      decimal.Decimal
	GrandTotal    decimal.Decimal
}

// TaxCategories returns the taxed categories sorted by name.
func (b Breakdown) TaxCategories() []catalog.Category {
	out := make([]catalog.Category, 0, len(b.TaxByCategory))
	for c := range b.TaxByCategory {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Discount looks up an applied discount by code.
func (b Breakdown) Discount(code string) (DiscountLine, bool) {
	for _, d := range b.Discounts {
		if d.Code == code {
			return d, true
		}
	}
	return DiscountLine{}, false
}

type discountJSON struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

type breakdownJSON struct {
	Subtotal      string            `json:"subtotal"`
	Discounts     []discountJSON    `json:"discounts"`
	TotalDiscount string            `json:"totalDiscount"`
	TaxableBase   string            `json:"taxableBase"`
	TaxByCategory map[string]string `json:"taxByCategory"`
	TotalTax      string            `json:"totalTax"`
	Shipping      string            `json:"shipping"`
	GrandTotal    string            `json:"grandTotal"`
}

// MarshalJSON renders every amount with exactly two fraction digits.
func (b Breakdown) MarshalJSON() ([]byte, error) {
	out := breakdownJSON{
		Subtotal:      fixed(b.Subtotal),
		Discounts:     make([]discountJSON, 0, len(b.Discounts)),
		TotalDiscount: fixed(b.TotalDiscount),
		TaxableBase:   fixed(b.TaxableBase),
		TaxByCategory: make(map[string]string, len(b.TaxByCategory)),
		TotalTax:      fixed(b.TotalTax),
		Shipping:      fixed(b.Shipping),
		GrandTotal:    fixed(b.GrandTotal),
	}
	for _, d := range b.Discounts {
		out.Discounts = append(out.Discounts, discountJSON{Code: d.Code, Description: d.Description, Amount: fixed(d.Amount)})
	}
	for c, v := range b.TaxByCategory {
		out.TaxByCategory[string(c)] = fixed(v)
	}
	return json.Marshal(out)
}

func fixed(v decimal.Decimal) string {
	return v.StringFixed(money.Places)
}
