package port

import (
	"context"

	"tvGuideBff/internal/modules/realtime/domain"
)

// Broadcaster delivers a message to the connected websocket clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler is registered per consumed Kafka topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}
