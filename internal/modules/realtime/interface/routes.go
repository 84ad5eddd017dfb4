package transport

import (
	"github.com/labstack/echo/v4"

	"tvGuideBff/internal/modules/realtime/application/usecase"
	"tvGuideBff/internal/modules/realtime/infrastructure"
)

func RegisterRoutes(e *echo.Echo, hub *infrastructure.Hub, broadcastUC *usecase.BroadcastUseCase) {
	e.GET("/ws/notifications", NewNotificationsWebsocketHandler(hub))
	e.POST("/api/notifications", NewBroadcastHTTPHandler(broadcastUC))
}
