package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"tvGuideBff/internal/modules/realtime/application/usecase"
	"tvGuideBff/internal/modules/realtime/domain"
	"tvGuideBff/internal/shared/httputil"
	"tvGuideBff/internal/shared/logging"
)

// BroadcastRequest lets the data service push a notification without going through Kafka.
type BroadcastRequest struct {
	Topic      string            `json:"topic,omitempty"`
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
}

type BroadcastResponse struct {
	Topic     string `json:"topic"`
	Delivered bool   `json:"delivered"`
}

func (r BroadcastRequest) toMessage() (*domain.Message, bool) {
	entity := strings.TrimSpace(r.Entity)
	action := strings.TrimSpace(r.Action)
	topic := strings.TrimSpace(r.Topic)
	if topic != "" && (entity == "" || action == "") {
		inferredEntity, inferredAction := domain.SplitTopic(topic)
		if entity == "" {
			entity = inferredEntity
		}
		if action == "" {
			action = inferredAction
		}
	}
	if entity == "" || action == "" {
		return nil, false
	}
	return &domain.Message{
		Topic:      topic,
		Entity:     entity,
		Action:     action,
		ResourceID: strings.TrimSpace(r.ResourceID),
		Metadata:   r.Metadata,
		Data:       r.Data,
		Timestamp:  time.Now().UTC(),
	}, true
}

// NewBroadcastHTTPHandler accepts a message and fans it out to the websocket clients.
func NewBroadcastHTTPHandler(broadcastUC *usecase.BroadcastUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		logger := logging.FromContext(ctx)

		var req BroadcastRequest
		if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
			logger.Warn("broadcast body is not valid JSON", slog.Any("error", err))
			return httputil.WriteError(c, http.StatusBadRequest, httputil.InvalidRequestMessage)
		}
		msg, ok := req.toMessage()
		if !ok {
			logger.Warn("broadcast without entity or action", slog.String("topic", req.Topic))
			return httputil.WriteError(c, http.StatusBadRequest, httputil.InvalidRequestMessage)
		}

		broadcastUC.Execute(ctx, msg)
		logger.Info("broadcast http: message sent", slog.String("topic", msg.Topic), slog.String("resourceId", msg.ResourceID))
		return httputil.WriteData(c, BroadcastResponse{Topic: msg.Topic, Delivered: true})
	}
}
