// Package checkout closes a cart into an OPEN order: it validates
// installments, prices the cart, takes the stock and records the order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/toko-checkout/internal/cart"
	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/customer"
	"github.com/noah-isme/toko-checkout/internal/inventory"
	"github.com/noah-isme/toko-checkout/internal/lock"
	"github.com/noah-isme/toko-checkout/internal/obs"
	"github.com/noah-isme/toko-checkout/internal/order"
	"github.com/noah-isme/toko-checkout/internal/pricing"
)

// StockLockKey guards stock removal across concurrent checkouts.
const StockLockKey = "lock:checkout:stock"

var (
	tracer    = otel.Tracer("github.com/noah-isme/toko-checkout/internal/checkout")
	nopLogger = zerolog.Nop()
)

// ProductSource resolves catalog products. *catalog.Catalog satisfies it.
type ProductSource interface {
	Product(sku string) (catalog.Product, error)
}

// Input is a checkout request. Installments defaults to one when zero.
type Input struct {
	Customer     customer.Customer
	Cart         *cart.Cart
	CouponCode   string
	Installments int
}

// Service closes carts into orders.
type Service struct {
	Catalog ProductSource
	Stock   *inventory.Stock
	Engine  *pricing.Engine
	Orders  *order.Service
	Locker  lock.Locker
	LockTTL time.Duration
	Logger  *zerolog.Logger
	Now     func() time.Time
}

// Checkout prices the cart, removes the purchased units from stock and
// places an OPEN order. Nothing is removed from stock when any step before
// it fails.
func (s *Service) Checkout(ctx context.Context, in Input) (order.Order, error) {
	ctx, span := tracer.Start(ctx, "checkout.Checkout")
	defer span.End()
	span.SetAttributes(
		attribute.String("checkout.customer_id", in.Customer.ID),
		attribute.Int("checkout.installments", in.Installments),
	)

	o, err := s.checkout(ctx, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		recordResult(resultLabel(err))
		return order.Order{}, err
	}
	span.SetAttributes(attribute.String("checkout.order_id", o.ID))
	recordResult("ok")
	s.logger().Info().
		Str("order_id", o.ID).
		Str("customer_id", o.CustomerID).
		Str("grand_total", o.Breakdown.GrandTotal.StringFixed(2)).
		Msg("checkout_completed")
	return o, nil
}

func (s *Service) checkout(ctx context.Context, in Input) (order.Order, error) {
	if s == nil || s.Catalog == nil || s.Stock == nil || s.Engine == nil || s.Orders == nil {
		return order.Order{}, errors.New("checkout service not configured")
	}
	if in.Cart == nil {
		return order.Order{}, pricing.ErrEmptyCart
	}
	// Pricing, the order and the stock removal all use this snapshot.
	items := in.Cart.Items()
	if len(items) == 0 {
		return order.Order{}, pricing.ErrEmptyCart
	}
	installments := in.Installments
	if installments == 0 {
		installments = 1
	}
	for _, it := range items {
		product, err := s.Catalog.Product(it.SKU)
		if err != nil {
			return order.Order{}, err
		}
		if _, err := product.InstallmentValue(installments); err != nil {
			return order.Order{}, err
		}
	}

	breakdown, err := s.Engine.Calculate(ctx, pricing.Request{
		Customer:   in.Customer.Classification,
		Items:      cart.LineItemsOf(items),
		CouponCode: in.CouponCode,
	})
	if err != nil {
		return order.Order{}, err
	}

	o := order.Order{
		ID:           "PED-" + uuid.NewString(),
		CustomerID:   in.Customer.ID,
		Items:        make([]order.Item, 0, len(items)),
		Breakdown:    breakdown,
		Installments: installments,
		Status:       order.StatusOpen,
		CreatedAt:    s.now(),
	}
	lines := make([]inventory.Line, 0, len(items))
	for _, it := range items {
		o.Items = append(o.Items, order.Item{SKU: it.SKU, Name: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
		lines = append(lines, inventory.Line{SKU: it.SKU, Quantity: it.Quantity})
	}

	err = s.locker().WithLock(ctx, StockLockKey, s.LockTTL, func(ctx context.Context) error {
		if err := s.Stock.RemoveAll(lines); err != nil {
			return err
		}
		if err := s.Orders.Place(ctx, o); err != nil {
			for _, l := range lines {
				_ = s.Stock.Add(l.SKU, l.Quantity)
			}
			return fmt.Errorf("place order: %w", err)
		}
		return nil
	})
	if err != nil {
		return order.Order{}, err
	}
	return o, nil
}

func (s *Service) locker() lock.Locker {
	if s.Locker != nil {
		return s.Locker
	}
	return defaultLocker
}

var defaultLocker = &lock.Local{}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) logger() *zerolog.Logger {
	if s != nil && s.Logger != nil {
		return s.Logger
	}
	return &nopLogger
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, pricing.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, catalog.ErrInvalidInstallments):
		return "invalid_installments"
	case errors.Is(err, pricing.ErrInvalidCoupon):
		return "invalid_coupon"
	case errors.Is(err, inventory.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, catalog.ErrUnknownSKU):
		return "unknown_sku"
	default:
		return "error"
	}
}

func recordResult(result string) {
	if obs.CheckoutOrdersTotal != nil {
		obs.CheckoutOrdersTotal.WithLabelValues(result).Inc()
	}
}
