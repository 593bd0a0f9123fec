// Package receipt renders the fiscal receipt of an order.
package receipt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-checkout/internal/money"
	"github.com/noah-isme/toko-checkout/internal/order"
)

// FormatBRL formats an amount as Brazilian reais, e.g. "R$ 12,34".
func FormatBRL(v decimal.Decimal) string {
	return "R$ " + strings.Replace(money.Round2(v).StringFixed(money.Places), ".", ",", 1)
}

// Lines renders the receipt. Taxes are listed by category name.
func Lines(o order.Order) []string {
	b := o.Breakdown
	lines := []string{
		"=== FISCAL RECEIPT ===",
		"Order: " + o.ID,
		"Customer: " + o.CustomerID,
		"--- Items ---",
	}
	for _, it := range o.Items {
		lines = append(lines, fmt.Sprintf("%s | Qty: %d | Unit: %s | Total: %s",
			it.SKU, it.Quantity, FormatBRL(it.UnitPrice), FormatBRL(it.Total())))
	}
	lines = append(lines, "--- Totals ---", "Subtotal: "+FormatBRL(b.Subtotal))
	if len(b.Discounts) == 0 {
		lines = append(lines, "Discounts: none")
	} else {
		lines = append(lines, "Discounts:")
		for _, d := range b.Discounts {
			lines = append(lines, fmt.Sprintf("- %s (%s): -%s", d.Code, d.Description, FormatBRL(d.Amount)))
		}
	}
	lines = append(lines, "Total Discounts: -"+FormatBRL(b.TotalDiscount), "Taxes by category:")
	for _, c := range b.TaxCategories() {
		lines = append(lines, fmt.Sprintf("- %s: %s", c, FormatBRL(b.TaxByCategory[c])))
	}
	lines = append(lines,
		"Total Taxes: "+FormatBRL(b.TotalTax),
		"Shipping: "+FormatBRL(b.Shipping),
		"Grand Total: "+FormatBRL(b.GrandTotal),
	)
	if o.Installments > 1 {
		each := money.Round2(b.GrandTotal.Div(decimal.NewFromInt(int64(o.Installments))))
		lines = append(lines, fmt.Sprintf("Installments: %dx %s", o.Installments, FormatBRL(each)))
	}
	return append(lines, "Status: "+string(o.Status))
}
