package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps events in process memory in emission order.
type MemoryStore struct {
	Now func() time.Time

	mu     sync.RWMutex
	events []Event
}

// Insert assigns an id and timestamp and appends the event.
func (s *MemoryStore) Insert(_ context.Context, ev Event) (Event, error) {
	ev.ID = uuid.NewString()
	ev.OccurredAt = s.now()
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
	return ev, nil
}

// List returns recorded events, optionally filtered by topic.
func (s *MemoryStore) List(topic string) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, 0, len(s.events))
	for _, ev := range s.events {
		if topic == "" || ev.Topic == topic {
			out = append(out, ev)
		}
	}
	return out
}

func (s *MemoryStore) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
