package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart is returned when pricing zero line items.
	ErrEmptyCart = errors.New("pricing: empty cart")
	// ErrInvalidCoupon matches every InvalidCouponError.
	ErrInvalidCoupon = errors.New("pricing: invalid coupon")
	// ErrInvalidLineItem is returned for blank SKUs, quantities below one or non-positive prices.
	ErrInvalidLineItem = errors.New("pricing: invalid line item")
	// ErrNotConfigured is returned when the engine has no product lookup.
	ErrNotConfigured = errors.New("pricing: engine not configured")
)

// InvalidCouponError carries the coupon code that was rejected.
type InvalidCouponError struct {
	Code string
}

func (e *InvalidCouponError) Error() string {
	return fmt.Sprintf("pricing: invalid coupon %q", e.Code)
}

// Is lets errors.Is match ErrInvalidCoupon.
func (e *InvalidCouponError) Is(target error) bool {
	return target == ErrInvalidCoupon
}
