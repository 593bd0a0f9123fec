package events

import "slices"

// Topic constants for domain events emitted by checkout and order handling.
const (
	TopicOrderCreated   = "order.created"
	TopicOrderPaid      = "order.paid"
	TopicOrderCancelled = "order.cancelled"
)

// DefaultTopics returns the canonical list of topics.
func DefaultTopics() []string {
	return []string{
		TopicOrderCreated,
		TopicOrderPaid,
		TopicOrderCancelled,
	}
}

// KnownTopic reports whether topic is one of DefaultTopics.
func KnownTopic(topic string) bool {
	return slices.Contains(DefaultTopics(), topic)
}
