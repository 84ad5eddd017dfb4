package events

import (
	"context"
	"time"
)

// Event actions emitted after successful writes.
const (
	ActionInserted = "inserted"
	ActionAdded    = "added"
	ActionRemoved  = "removed"
)

// Publisher announces completed writes to downstream consumers. Implementations must not
// block the request on broker availability and must never fail it.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Event is a write notification. Topic is derived as "<entity>.<action>".
type Event struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

func (e Event) Topic() string {
	return e.Entity + "." + e.Action
}

// Noop is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) {}

// Multi fans one event out to several publishers in order.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event Event) {
	for _, p := range m {
		if p != nil {
			p.Publish(ctx, event)
		}
	}
}
