// Command demo seeds the catalog and runs the reference checkout scenarios,
// printing each receipt and the closing sales report to stdout.
package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/noah-isme/toko-checkout/internal/app"
	"github.com/noah-isme/toko-checkout/internal/checkout"
	"github.com/noah-isme/toko-checkout/internal/customer"
	"github.com/noah-isme/toko-checkout/internal/inventory"
	"github.com/noah-isme/toko-checkout/internal/money"
	"github.com/noah-isme/toko-checkout/internal/obs"
	"github.com/noah-isme/toko-checkout/internal/receipt"
)

func main() {
	logger := obs.NewLoggerTo(os.Stderr, "console", "warn")
	if err := run(context.Background(), os.Stdout, &app.Options{Logger: &logger}); err != nil {
		logger.Fatal().Err(err).Msg("demo failed")
	}
}

func run(ctx context.Context, w io.Writer, opts *app.Options) error {
	opts.SeedDemoData = true
	a, err := app.New(*opts)
	if err != nil {
		return err
	}
	printer := receipt.Printer{W: w}

	vip := customer.New("C1", "Ana", "VIP")
	regular := customer.New("C2", "Bruno", "REGULAR")

	scenarios := []struct {
		customer     customer.Customer
		items        []inventory.Line
		coupon       string
		installments int
	}{
		{customer: vip, items: []inventory.Line{{SKU: "CAMISETA", Quantity: 2}, {SKU: "MEIA", Quantity: 1}, {SKU: "CALCA", Quantity: 1}}, installments: 3},
		{customer: regular, items: []inventory.Line{{SKU: "MICRO", Quantity: 1}, {SKU: "VASO", Quantity: 1}}, coupon: "ETIC10", installments: 5},
	}
	for _, sc := range scenarios {
		c := a.Carts.Create()
		for _, it := range sc.items {
			if err := c.AddItem(it.SKU, it.Quantity); err != nil {
				return err
			}
		}
		placed, err := a.Checkout.Checkout(ctx, checkout.Input{
			Customer:     sc.customer,
			Cart:         c,
			CouponCode:   sc.coupon,
			Installments: sc.installments,
		})
		if err != nil {
			return err
		}
		paid, err := a.Orders.Pay(ctx, placed.ID)
		if err != nil {
			return err
		}
		if err := printer.Print(receipt.Lines(paid)); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	invalid := a.Carts.Create()
	if err := invalid.AddItem("ARROZ", 1); err != nil {
		return err
	}
	if _, err := a.Checkout.Checkout(ctx, checkout.Input{Customer: regular, Cart: invalid, CouponCode: "INVALIDO"}); err != nil {
		fmt.Fprintln(w, "(OK) invalid coupon rejected:")
		fmt.Fprintln(w, err.Error())
	} else {
		return fmt.Errorf("demo: coupon INVALIDO was accepted")
	}

	short := a.Carts.Create()
	if err := short.AddItem("MICRO", 999); err != nil {
		fmt.Fprintln(w, "(OK) insufficient stock rejected:")
		fmt.Fprintln(w, err.Error())
	} else {
		return fmt.Errorf("demo: 999 units of MICRO were accepted")
	}

	return printReport(ctx, w, a)
}

func printReport(ctx context.Context, w io.Writer, a *app.App) error {
	summary, err := a.Reports.Summary(ctx)
	if err != nil {
		return err
	}
	top, err := a.Reports.TopProducts(ctx, 3)
	if err != nil {
		return err
	}
	rule := strings.Repeat("=", 30)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Sales report")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Total revenue:", receipt.FormatBRL(money.New(summary.TotalRevenue)))
	fmt.Fprintln(w, "Total taxes:", receipt.FormatBRL(money.New(summary.TotalTax)))
	fmt.Fprintln(w, "Total discounts:", receipt.FormatBRL(money.New(summary.TotalDiscount)))
	fmt.Fprintln(w, "Top products:")
	for _, row := range top {
		fmt.Fprintf(w, "  %s x%d\n", row.SKU, row.Quantity)
	}
	fmt.Fprintln(w, "Revenue by category:")
	for _, category := range slices.Sorted(maps.Keys(summary.RevenueByCategory)) {
		fmt.Fprintf(w, "  %s: %s\n", category, receipt.FormatBRL(money.New(summary.RevenueByCategory[category])))
	}
	return nil
}
