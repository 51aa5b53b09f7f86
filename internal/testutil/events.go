//go:build integration

package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/alanyang/tailor-flow/internal/domain/event"
)

// EventRecorder is an eventbus handler that records every event it receives.
// It is safe for concurrent use.
type EventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *EventRecorder) Handle(_ context.Context, e event.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of everything recorded so far.
func (r *EventRecorder) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.Event(nil), r.events...)
}

// WaitFor polls until an event with type t and key arrives or timeout passes.
func (r *EventRecorder) WaitFor(t event.Type, key string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		for _, e := range r.Events() {
			if e.Type == t && e.Key == key {
				return true
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}
