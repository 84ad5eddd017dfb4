package transport

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"tvGuideBff/internal/modules/realtime/domain"
	"tvGuideBff/internal/modules/realtime/infrastructure"
	"tvGuideBff/internal/shared/logging"
)

const clientBuffer = 16

var (
	notificationCounter atomic.Uint64

	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(*http.Request) bool { return true },
	}
)

// NewNotificationsWebsocketHandler exposes /ws/notifications. The optional topics query narrows
// the stream; without it the client receives every message. The optional user query enables
// delivery of user-targeted messages such as favorite changes.
func NewNotificationsWebsocketHandler(hub *infrastructure.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := logging.FromContext(c.Request().Context())

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			logger.Error("notifications ws upgrade failed", slog.String("ip", c.RealIP()), slog.Any("error", err))
			return err
		}

		userID := strings.TrimSpace(c.QueryParam("user"))
		sessionID := fmt.Sprintf("notif-%d", notificationCounter.Add(1))
		client := infrastructure.NewClient(hub, conn, userID, sessionID, clientBuffer)

		topics := domain.ParseTopics(c.QueryParam("topics"))
		if len(topics) > 0 {
			hub.AttachClient(client, topics)
		} else {
			hub.AttachClientToAll(client)
			topics = []string{"*"}
		}

		go client.WritePump()
		go client.ReadPump()

		client.SendDomainMessage(&domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: map[string]string{
				"sessionId": sessionID,
			},
			Data: map[string]any{
				"topics": topics,
				"user":   userID,
			},
			Timestamp: time.Now().UTC(),
		})

		logger.Info("notifications ws connected", slog.String("user", userID), slog.String("sessionId", sessionID), slog.Any("topics", topics))
		return nil
	}
}
