// Package lock serialises critical sections by key, either in process or
// across instances through Redis.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultTTL bounds how long a distributed lock is held if its owner dies.
const DefaultTTL = 30 * time.Second

// ErrNoCallback is returned when WithLock is called without a function.
var ErrNoCallback = errors.New("lock: callback not provided")

// Locker runs fn while holding the lock for key. The lock is released when
// fn returns, whatever its result.
type Locker interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error
}

// Local is an in-process Locker. The ttl argument is ignored. The zero value
// is ready to use.
type Local struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

// WithLock waits for key to be free or ctx to end.
func (l *Local) WithLock(ctx context.Context, key string, _ time.Duration, fn func(context.Context) error) error {
	if fn == nil {
		return ErrNoCallback
	}
	slot := l.slot(key)
	select {
	case slot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-slot }()
	return fn(ctx)
}

func (l *Local) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.slots == nil {
		l.slots = make(map[string]chan struct{})
	}
	s, ok := l.slots[key]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[key] = s
	}
	return s
}
