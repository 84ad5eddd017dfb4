package handler

import (
	"context"
	"strings"

	"tvGuideBff/internal/modules/realtime/application/port"
	"tvGuideBff/internal/modules/realtime/application/usecase"
	"tvGuideBff/internal/modules/realtime/domain"
)

// NotificationStreamHandler forwards the events of one consumed Kafka topic to websocket clients.
// An empty action list lets every action through.
type NotificationStreamHandler struct {
	kafkaTopic     string
	allowedActions map[string]struct{}
	broadcastUC    *usecase.BroadcastUseCase
}

func NewNotificationStreamHandler(kafkaTopic string, allowedActions []string, broadcastUC *usecase.BroadcastUseCase) *NotificationStreamHandler {
	actionSet := make(map[string]struct{}, len(allowedActions))
	for _, a := range allowedActions {
		if v := strings.TrimSpace(strings.ToLower(a)); v != "" {
			actionSet[v] = struct{}{}
		}
	}
	return &NotificationStreamHandler{
		kafkaTopic:     strings.TrimSpace(kafkaTopic),
		allowedActions: actionSet,
		broadcastUC:    broadcastUC,
	}
}

func (h *NotificationStreamHandler) Topic() string { return h.kafkaTopic }

func (h *NotificationStreamHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if len(h.allowedActions) > 0 {
		if _, ok := h.allowedActions[strings.ToLower(msg.Action)]; !ok {
			return nil
		}
	}
	h.broadcastUC.Execute(ctx, msg)
	return nil
}

var _ port.TopicHandler = (*NotificationStreamHandler)(nil)
