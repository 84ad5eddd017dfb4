package broker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"tvGuideBff/internal/modules/realtime/domain"
)

const readRetryDelay = time.Second

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type KafkaConsumer struct {
	reader messageReader
	logger *slog.Logger
}

func NewKafkaConsumer(brokers []string, groupID string, topic string, logger *slog.Logger) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
		logger: logger.With(slog.String("topic", topic)),
	}
}

// Consume reads until ctx is cancelled, handing every decoded message to handler along with the
// Kafka topic it was read from. The reader is closed on return.
func (c *KafkaConsumer) Consume(ctx context.Context, handler func(kafkaTopic string, msg *domain.Message) error) {
	defer func() {
		if err := c.reader.Close(); err != nil {
			c.logger.Warn("kafka reader close error", slog.Any("error", err))
		}
	}()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			c.logger.Warn("kafka read error", slog.Any("error", err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(readRetryDelay):
			}
			continue
		}
		msg := decodeMessage(m)
		c.logger.Debug("kafka message consumed",
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
			slog.String("entity", msg.Entity),
			slog.String("action", msg.Action),
			slog.String("resourceId", msg.ResourceID),
		)
		if err := handler(m.Topic, msg); err != nil {
			c.logger.Warn("kafka handler error", slog.Any("error", err))
		}
	}
}

type rawEvent struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata"`
	Data       any               `json:"data"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// decodeMessage accepts the event envelope this service publishes. Anything else is forwarded as
// a raw string with entity and action inferred from the Kafka topic.
func decodeMessage(m kafka.Message) *domain.Message {
	msg := &domain.Message{Timestamp: time.Now().UTC()}
	topicEntity, topicAction := domain.SplitTopic(m.Topic)

	var event rawEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		msg.Topic = m.Topic
		msg.Entity = topicEntity
		msg.Action = topicAction
		msg.Data = string(m.Value)
		return msg
	}

	msg.Entity = firstNonEmpty(event.Entity, topicEntity)
	msg.Action = firstNonEmpty(event.Action, topicAction)
	msg.ResourceID = event.ResourceID
	msg.Metadata = event.Metadata
	msg.Data = event.Data
	msg.Topic = firstNonEmpty(event.Topic, domain.CustomTopic(msg.Entity, msg.Action), m.Topic)
	if !event.OccurredAt.IsZero() {
		msg.Timestamp = event.OccurredAt.UTC()
	}
	return msg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
