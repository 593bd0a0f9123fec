package order

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/noah-isme/toko-checkout/internal/events"
	"github.com/noah-isme/toko-checkout/internal/obs"
)

var nopLogger = zerolog.Nop()

// Service applies lifecycle transitions and emits the matching domain events.
type Service struct {
	Store  *Store
	Events *events.Bus
	Logger *zerolog.Logger
}

type eventPayload struct {
	OrderID    string `json:"orderId"`
	CustomerID string `json:"customerId"`
	Status     Status `json:"status"`
	Total      string `json:"total"`
}

// Place stores a new order and emits order.created.
func (s *Service) Place(ctx context.Context, o Order) error {
	if s == nil || s.Store == nil {
		return errors.New("order service not configured")
	}
	if err := s.Store.Save(o); err != nil {
		return err
	}
	s.emit(ctx, events.TopicOrderCreated, o)
	return nil
}

// Get returns the order with the given id.
func (s *Service) Get(id string) (Order, error) {
	if s == nil || s.Store == nil {
		return Order{}, errors.New("order service not configured")
	}
	return s.Store.Get(id)
}

// Pay marks an order as paid and emits order.paid.
func (s *Service) Pay(ctx context.Context, id string) (Order, error) {
	return s.transition(ctx, id, events.TopicOrderPaid, (*Order).Pay)
}

// Cancel marks an order as cancelled and emits order.cancelled.
func (s *Service) Cancel(ctx context.Context, id string) (Order, error) {
	return s.transition(ctx, id, events.TopicOrderCancelled, (*Order).Cancel)
}

func (s *Service) transition(ctx context.Context, id, topic string, apply func(*Order) error) (Order, error) {
	if s == nil || s.Store == nil {
		return Order{}, errors.New("order service not configured")
	}
	o, err := s.Store.Update(id, apply)
	if err != nil {
		return o, err
	}
	if obs.OrderTransitionsTotal != nil {
		obs.OrderTransitionsTotal.WithLabelValues(string(o.Status)).Inc()
	}
	s.logger().Info().Str("order_id", o.ID).Str("status", string(o.Status)).Msg("order_status_changed")
	s.emit(ctx, topic, o)
	return o, nil
}

func (s *Service) emit(ctx context.Context, topic string, o Order) {
	if s.Events == nil {
		return
	}
	payload := eventPayload{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		Total:      o.Summary().Total,
	}
	if _, err := s.Events.Emit(ctx, topic, o.ID, payload); err != nil {
		s.logger().Warn().Err(err).Str("topic", topic).Str("order_id", o.ID).Msg("order_event_failed")
	}
}

func (s *Service) logger() *zerolog.Logger {
	if s != nil && s.Logger != nil {
		return s.Logger
	}
	return &nopLogger
}
