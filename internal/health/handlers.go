package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

var ready atomic.Bool

func init() { ready.Store(true) }

// SetReady toggles readiness. The server flips it off when shutdown starts so
// load balancers drain traffic before listeners close.
func SetReady(v bool) { ready.Store(v) }

// IsReady reports the current readiness flag.
func IsReady() bool { return ready.Load() }

// Checker represents a dependency that can be probed for readiness.
type Checker interface {
	Ping(ctx context.Context, timeout time.Duration) error
}

// RedisChecker probes a redis client with PING.
type RedisChecker struct {
	R redis.UniversalClient
}

// Ping implements Checker.
func (c RedisChecker) Ping(ctx context.Context, timeout time.Duration) error {
	if c.R == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.R.Ping(ctx).Err()
}

// Handler exposes HTTP handlers for health endpoints.
// Checkers are keyed by dependency name; an empty map means the service runs
// fully in process and is ready whenever the flag allows.
type Handler struct {
	Checkers map[string]Checker
	Timeout  time.Duration
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on dependency probes.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !IsReady() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	ctx := r.Context()
	status := map[string]string{}
	healthy := true
	for name, checker := range h.Checkers {
		if checker == nil {
			continue
		}
		if err := checker.Ping(ctx, h.timeout()); err != nil {
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}
	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(status)
}

func (h Handler) timeout() time.Duration {
	if h.Timeout <= 0 {
		return 300 * time.Millisecond
	}
	return h.Timeout
}
