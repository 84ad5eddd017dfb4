package handler

import (
	"context"
	"testing"

	"tvGuideBff/internal/modules/realtime/application/usecase"
	"tvGuideBff/internal/modules/realtime/domain"
)

type captureBroadcaster struct {
	messages []*domain.Message
}

func (c *captureBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	c.messages = append(c.messages, msg)
}

func TestNotificationStreamFiltersActions(t *testing.T) {
	sink := &captureBroadcaster{}
	h := NewNotificationStreamHandler(" tv-program.updated ", []string{"Updated"}, usecase.NewBroadcastUseCase(sink))

	if h.Topic() != "tv-program.updated" {
		t.Fatalf("expected trimmed topic, got %q", h.Topic())
	}
	_ = h.Handle(context.Background(), &domain.Message{Entity: "tv-program", Action: "updated"})
	_ = h.Handle(context.Background(), &domain.Message{Entity: "tv-program", Action: "deleted"})

	if len(sink.messages) != 1 {
		t.Fatalf("expected 1 broadcast, got %d", len(sink.messages))
	}
	if sink.messages[0].Topic != "tv-program.updated" {
		t.Fatalf("expected topic filled from entity and action, got %q", sink.messages[0].Topic)
	}
	if sink.messages[0].Timestamp.IsZero() {
		t.Fatalf("expected timestamp to be filled")
	}
}

func TestNotificationStreamWithoutFilter(t *testing.T) {
	sink := &captureBroadcaster{}
	h := NewNotificationStreamHandler("favorite.added", nil, usecase.NewBroadcastUseCase(sink))
	_ = h.Handle(context.Background(), &domain.Message{Topic: "favorite.added", Action: "anything"})
	if len(sink.messages) != 1 {
		t.Fatalf("expected message to pass, got %d", len(sink.messages))
	}
}
