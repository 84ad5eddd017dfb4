// Package eventstest provides an in-memory events.Publisher for tests.
package eventstest

import (
	"context"
	"sync"

	"tvGuideBff/internal/shared/events"
)

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	Events []events.Event
}

func (r *Recorder) Publish(_ context.Context, event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
}

var _ events.Publisher = (*Recorder)(nil)
