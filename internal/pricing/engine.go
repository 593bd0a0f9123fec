// Package pricing turns a priced cart into an itemised breakdown: subtotal,
// the ordered promotion pipeline, pro-rata tax per category, shipping and
// the grand total.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/money"
	"github.com/noah-isme/toko-checkout/internal/obs"
)

var (
	tracer    = otel.Tracer("github.com/noah-isme/toko-checkout/internal/pricing")
	nopLogger = zerolog.Nop()
)

// ProductLookup resolves the category of a SKU. *catalog.Catalog satisfies it.
type ProductLookup interface {
	Category(sku string) (catalog.Category, error)
}

// Engine calculates price breakdowns. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	Lookup ProductLookup
	Logger *zerolog.Logger

	// rules overrides the production pipeline in tests.
	rules []Rule
}

// NewEngine builds an engine backed by lookup.
func NewEngine(lookup ProductLookup, logger *zerolog.Logger) *Engine {
	return &Engine{Lookup: lookup, Logger: logger}
}

type pricedLine struct {
	item     LineItem
	total    decimal.Decimal
	category catalog.Category
}

// Calculate prices a request. Errors match ErrEmptyCart, ErrInvalidLineItem,
// ErrInvalidCoupon or catalog.ErrUnknownSKU.
func (e *Engine) Calculate(ctx context.Context, req Request) (Breakdown, error) {
	_, span := tracer.Start(ctx, "pricing.Calculate")
	defer span.End()
	span.SetAttributes(
		attribute.Int("pricing.items", len(req.Items)),
		attribute.String("pricing.customer", string(req.Customer)),
		attribute.String("pricing.coupon", req.CouponCode),
	)

	b, err := e.calculate(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		recordCalculation(resultLabel(err), Breakdown{})
		return Breakdown{}, err
	}
	span.SetAttributes(attribute.String("pricing.grand_total", b.GrandTotal.StringFixed(money.Places)))
	recordCalculation("ok", b)
	return b, nil
}

func (e *Engine) calculate(req Request) (Breakdown, error) {
	if e == nil || e.Lookup == nil {
		return Breakdown{}, ErrNotConfigured
	}
	if len(req.Items) == 0 {
		return Breakdown{}, ErrEmptyCart
	}
	for i, item := range req.Items {
		if err := validateItem(item); err != nil {
			return Breakdown{}, fmt.Errorf("item %d: %w", i, err)
		}
	}
	coupon := ParseCoupon(req.CouponCode)
	if err := coupon.Validate(); err != nil {
		return Breakdown{}, err
	}

	lines, units, err := e.expand(req.Items)
	if err != nil {
		return Breakdown{}, err
	}
	subtotal := money.Round2(money.SumBy(lines, func(l pricedLine) decimal.Decimal { return l.total }))

	rules := e.rules
	if rules == nil {
		rules = pipeline
	}
	state, discounts := applyRules(rules, State{
		Customer: req.Customer,
		Coupon:   coupon,
		Units:    units,
		Subtotal: subtotal,
		Shipping: DefaultShipping,
	})

	granted := state.Discounted
	if granted.GreaterThan(subtotal) {
		e.logger().Warn().
			Str("subtotal", subtotal.String()).
			Str("discount", granted.String()).
			Msg("pricing_discount_clamped")
		granted = subtotal
	}
	totalDiscount := money.Round2(granted)
	taxableBase := subtotal.Sub(totalDiscount)
	taxByCategory, totalTax := allocateTax(lines, subtotal, taxableBase)
	shipping := money.Round2(state.Shipping)

	b := Breakdown{
		Subtotal:      subtotal,
		Discounts:     discounts,
		TotalDiscount: totalDiscount,
		TaxableBase:   taxableBase,
		TaxByCategory: taxByCategory,
		TotalTax:      totalTax,
		Shipping:      shipping,
		GrandTotal:    money.Round2(taxableBase.Add(totalTax).Add(shipping)),
	}
	e.logger().Debug().
		Int("items", len(req.Items)).
		Int("discounts", len(discounts)).
		Str("grand_total", b.GrandTotal.String()).
		Msg("pricing_calculated")
	return b, nil
}

// expand resolves each line's category once and explodes lines into units.
func (e *Engine) expand(items []LineItem) ([]pricedLine, []UnitRecord, error) {
	lines := make([]pricedLine, 0, len(items))
	units := make([]UnitRecord, 0, len(items))
	for _, item := range items {
		category, err := e.Lookup.Category(item.SKU)
		if err != nil {
			return nil, nil, fmt.Errorf("pricing: resolve %s: %w", item.SKU, err)
		}
		lines = append(lines, pricedLine{item: item, total: item.LineTotal(), category: category})
		for i := 0; i < item.Quantity; i++ {
			units = append(units, UnitRecord{SKU: item.SKU, UnitPrice: item.UnitPrice, Category: category})
		}
	}
	return lines, units, nil
}

// allocateTax spreads the taxable base over lines by their share of the
// pre-discount subtotal. Categories are rounded individually and the total
// once; the cents lost between the two go to the categories with the largest
// rounding remainders so the map always sums to the total.
func allocateTax(lines []pricedLine, subtotal, base decimal.Decimal) (map[catalog.Category]decimal.Decimal, decimal.Decimal) {
	perCategory := make(map[catalog.Category]decimal.Decimal)
	if subtotal.IsZero() {
		return perCategory, decimal.Zero
	}
	exact := make(map[catalog.Category]decimal.Decimal)
	taxes := make([]decimal.Decimal, 0, len(lines))
	for _, l := range lines {
		share := l.total.Div(subtotal)
		tax := base.Mul(share).Mul(catalog.TaxRate(l.category))
		exact[l.category] = exact[l.category].Add(tax)
		taxes = append(taxes, tax)
	}
	total := money.Round2(money.Sum(taxes...))
	for c, v := range exact {
		perCategory[c] = money.Round2(v)
	}
	reconcile(perCategory, exact, total)
	return perCategory, total
}

var cent = decimal.New(1, -money.Places)

// reconcile moves whole cents between rounded categories until they sum to
// total. Cents are added to the most rounded-down categories first and
// removed from the most rounded-up ones; ties go by category name.
func reconcile(rounded, exact map[catalog.Category]decimal.Decimal, total decimal.Decimal) {
	diff := total.Sub(money.Sum(slices.Collect(maps.Values(rounded))...))
	if diff.IsZero() || len(rounded) == 0 {
		return
	}
	categories := slices.Collect(maps.Keys(rounded))
	remainder := func(c catalog.Category) decimal.Decimal { return exact[c].Sub(rounded[c]) }
	step := cent
	if diff.IsNegative() {
		step = cent.Neg()
	}
	slices.SortStableFunc(categories, func(a, b catalog.Category) int {
		byRemainder := remainder(b).Cmp(remainder(a))
		if diff.IsNegative() {
			byRemainder = -byRemainder
		}
		if byRemainder != 0 {
			return byRemainder
		}
		return strings.Compare(string(a), string(b))
	})
	cents := int(diff.Div(cent).Abs().IntPart())
	for i := 0; i < cents; i++ {
		c := categories[i%len(categories)]
		rounded[c] = rounded[c].Add(step)
	}
}

func validateItem(item LineItem) error {
	switch {
	case strings.TrimSpace(item.SKU) == "":
		return fmt.Errorf("%w: sku is required", ErrInvalidLineItem)
	case item.Quantity < 1:
		return fmt.Errorf("%w: quantity must be >= 1", ErrInvalidLineItem)
	case !item.UnitPrice.IsPositive():
		return fmt.Errorf("%w: unit price must be > 0", ErrInvalidLineItem)
	}
	return nil
}

func (e *Engine) logger() *zerolog.Logger {
	if e != nil && e.Logger != nil {
		return e.Logger
	}
	return &nopLogger
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrInvalidLineItem):
		return "invalid_item"
	case errors.Is(err, ErrInvalidCoupon):
		return "invalid_coupon"
	case errors.Is(err, catalog.ErrUnknownSKU):
		return "unknown_sku"
	default:
		return "error"
	}
}

func recordCalculation(result string, b Breakdown) {
	if obs.PricingCalculationsTotal != nil {
		obs.PricingCalculationsTotal.WithLabelValues(result).Inc()
	}
	if result != "ok" {
		return
	}
	if obs.PricingDiscountLinesTotal != nil {
		for _, d := range b.Discounts {
			obs.PricingDiscountLinesTotal.WithLabelValues(d.Code).Inc()
		}
	}
	if obs.PricingGrandTotal != nil {
		total, _ := b.GrandTotal.Float64()
		obs.PricingGrandTotal.Observe(total)
	}
}
