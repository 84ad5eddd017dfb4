package broker

import (
	"context"
	"log/slog"
	"sync"

	"tvGuideBff/internal/modules/realtime/domain"
)

// Dispatcher routes a consumed message by the Kafka topic it arrived on.
type Dispatcher interface {
	Dispatch(ctx context.Context, kafkaTopic string, msg *domain.Message) error
}

// StartKafkaConsumers starts one reader per topic. The returned WaitGroup completes once every
// reader has stopped after ctx is cancelled.
func StartKafkaConsumers(
	ctx context.Context,
	dispatcher Dispatcher,
	brokers []string,
	groupID string,
	topics []string,
	logger *slog.Logger,
) *sync.WaitGroup {
	var wg sync.WaitGroup
	if len(brokers) == 0 {
		return &wg
	}
	for _, topic := range topics {
		consumer := NewKafkaConsumer(brokers, groupID, topic, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			consumer.Consume(ctx, func(kafkaTopic string, msg *domain.Message) error {
				return dispatcher.Dispatch(ctx, kafkaTopic, msg)
			})
		}()
		logger.Info("kafka consumer started", slog.String("topic", topic), slog.String("groupId", groupID))
	}
	return &wg
}
