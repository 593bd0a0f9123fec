// Package customer models shoppers and their loyalty balance.
package customer

import (
	"errors"
	"fmt"
	"strings"
)

// Classification drives customer-specific pricing.
type Classification string

const (
	Regular Classification = "REGULAR"
	VIP     Classification = "VIP"
)

var (
	// ErrInsufficientPoints is returned when redeeming more points than the balance holds.
	ErrInsufficientPoints = errors.New("customer: insufficient points")
	// ErrInvalidPoints is returned for negative point amounts.
	ErrInvalidPoints = errors.New("customer: points must be >= 0")
)

// ParseClassification maps raw input onto a classification. Anything other
// than "vip" (case-insensitive) is a regular customer.
func ParseClassification(raw string) Classification {
	if strings.EqualFold(strings.TrimSpace(raw), string(VIP)) {
		return VIP
	}
	return Regular
}

// Customer is a shopper placing orders.
type Customer struct {
	ID             string         `json:"id" validate:"required"`
	Name           string         `json:"name"`
	Classification Classification `json:"classification"`
	Points         int            `json:"points" validate:"min=0"`
}

// New builds a customer, normalising the classification.
func New(id, name, classification string) Customer {
	return Customer{ID: id, Name: name, Classification: ParseClassification(classification)}
}

// IsVIP reports whether the customer gets VIP treatment.
func (c Customer) IsVIP() bool { return c.Classification == VIP }

// AddPoints credits points to the balance.
func (c *Customer) AddPoints(points int) error {
	if points < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPoints, points)
	}
	c.Points += points
	return nil
}

// RedeemPoints debits points from the balance.
func (c *Customer) RedeemPoints(points int) error {
	if points < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPoints, points)
	}
	if points > c.Points {
		return fmt.Errorf("%w: balance is %d", ErrInsufficientPoints, c.Points)
	}
	c.Points -= points
	return nil
}
