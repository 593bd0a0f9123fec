// Package order models placed orders and their payment lifecycle.
package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-checkout/internal/money"
	"github.com/noah-isme/toko-checkout/internal/pricing"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

var (
	// ErrNotFound indicates the requested order could not be located.
	ErrNotFound = errors.New("order not found")
	// ErrDuplicateID is returned when saving an order whose id is taken.
	ErrDuplicateID = errors.New("order id already exists")
	// ErrInvalidTransition matches every TransitionError.
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// TransitionError reports a rejected status change.
type TransitionError struct {
	ID   string
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order %s cannot move from %s to %s", e.ID, e.From, e.To)
}

// Is lets errors.Is match ErrInvalidTransition.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// Item is a purchased line with the price charged.
type Item struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Total returns the rounded line total.
func (i Item) Total() decimal.Decimal {
	return money.Round2(i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))))
}

// Order is created OPEN by checkout and then paid or cancelled once.
type Order struct {
	ID           string            `json:"id"`
	CustomerID   string            `json:"customerId"`
	Items        []Item            `json:"items"`
	Breakdown    pricing.Breakdown `json:"breakdown"`
	Installments int               `json:"installments"`
	Status       Status            `json:"status"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// Pay moves an OPEN order to PAID.
func (o *Order) Pay() error {
	if o.Status != StatusOpen {
		return &TransitionError{ID: o.ID, From: o.Status, To: StatusPaid}
	}
	o.Status = StatusPaid
	return nil
}

// Cancel moves an OPEN order to CANCELLED. Paid orders need a refund flow
// and cannot be cancelled here.
func (o *Order) Cancel() error {
	if o.Status != StatusOpen {
		return &TransitionError{ID: o.ID, From: o.Status, To: StatusCancelled}
	}
	o.Status = StatusCancelled
	return nil
}

// Summary is the short view of an order.
type Summary struct {
	ID        string    `json:"id"`
	Total     string    `json:"total"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary returns the id, grand total, status and creation time.
func (o Order) Summary() Summary {
	return Summary{
		ID:        o.ID,
		Total:     o.Breakdown.GrandTotal.StringFixed(money.Places),
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
	}
}

func (o Order) clone() Order {
	o.Items = append([]Item(nil), o.Items...)
	return o
}
