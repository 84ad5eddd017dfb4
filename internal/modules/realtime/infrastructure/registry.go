package infrastructure

import (
	"context"
	"log/slog"

	"tvGuideBff/internal/modules/realtime/application/port"
	"tvGuideBff/internal/modules/realtime/domain"
)

// HandlerRegistry routes consumed messages to the handler registered for their Kafka topic.
type HandlerRegistry struct {
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.handlers[h.Topic()] = h
}

// Topics lists the Kafka topics with a registered handler.
func (r *HandlerRegistry) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

func (r *HandlerRegistry) Dispatch(ctx context.Context, kafkaTopic string, msg *domain.Message) error {
	if handler, ok := r.handlers[kafkaTopic]; ok {
		return handler.Handle(ctx, msg)
	}
	slog.Debug("no handler for topic", slog.String("topic", kafkaTopic))
	return nil
}
