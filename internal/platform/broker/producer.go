package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"tvGuideBff/internal/platform/upstream"
	"tvGuideBff/internal/shared/events"
)

const headerRequestID = "x-request-id"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher emits write events. The writer is asynchronous so a slow or absent broker never
// delays the HTTP response; delivery failures are only logged.
type KafkaPublisher struct {
	writer     messageWriter
	fixedTopic bool
	logger     *slog.Logger
}

// NewKafkaPublisher writes every event to topic when it is set, otherwise to the event's own
// "<entity>.<action>" topic.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		Async:                  true,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warn("kafka publish failed", slog.Int("messages", len(messages)), slog.Any("error", err))
			}
		},
	}
	return &KafkaPublisher{writer: writer, fixedTopic: topic != "", logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event events.Event) {
	msg, err := p.buildMessage(ctx, event)
	if err != nil {
		p.logger.Error("kafka event encode failed", slog.String("topic", event.Topic()), slog.Any("error", err))
		return
	}
	if err := p.writer.WriteMessages(context.WithoutCancel(ctx), msg); err != nil {
		p.logger.Warn("kafka publish failed", slog.String("topic", event.Topic()), slog.Any("error", err))
	}
}

func (p *KafkaPublisher) buildMessage(ctx context.Context, event events.Event) (kafka.Message, error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(envelope{Topic: event.Topic(), Event: event})
	if err != nil {
		return kafka.Message{}, err
	}
	msg := kafka.Message{
		Key:   []byte(event.ResourceID),
		Value: value,
		Time:  event.OccurredAt,
	}
	if !p.fixedTopic {
		msg.Topic = event.Topic()
	}
	if id := upstream.RequestIDFromContext(ctx); id != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: headerRequestID, Value: []byte(id)})
	}
	return msg, nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type envelope struct {
	Topic string `json:"topic"`
	events.Event
}

var _ events.Publisher = (*KafkaPublisher)(nil)
