package usecase

import (
	"context"
	"strings"
	"time"

	"tvGuideBff/internal/modules/realtime/application/port"
	"tvGuideBff/internal/modules/realtime/domain"
	"tvGuideBff/internal/shared/events"
)

type BroadcastUseCase struct {
	broadcaster port.Broadcaster
}

func NewBroadcastUseCase(b port.Broadcaster) *BroadcastUseCase {
	return &BroadcastUseCase{broadcaster: b}
}

// Execute fills the topic and timestamp when the producer left them out, then fans the message out.
func (uc *BroadcastUseCase) Execute(ctx context.Context, msg *domain.Message) {
	if msg == nil {
		return
	}
	if strings.TrimSpace(msg.Topic) == "" {
		msg.Topic = domain.CustomTopic(msg.Entity, msg.Action)
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	uc.broadcaster.Broadcast(ctx, msg)
}

// Publish lets local writes reach websocket clients without a broker round trip.
func (uc *BroadcastUseCase) Publish(ctx context.Context, event events.Event) {
	uc.Execute(ctx, &domain.Message{
		Topic:      event.Topic(),
		Entity:     event.Entity,
		Action:     event.Action,
		ResourceID: event.ResourceID,
		Metadata:   event.Metadata,
		Data:       event.Data,
		Timestamp:  event.OccurredAt,
	})
}

var _ events.Publisher = (*BroadcastUseCase)(nil)
