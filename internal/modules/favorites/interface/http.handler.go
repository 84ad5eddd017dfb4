package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"tvGuideBff/internal/modules/favorites/application/port"
	"tvGuideBff/internal/modules/favorites/application/usecase"
	"tvGuideBff/internal/modules/favorites/domain"
	"tvGuideBff/internal/shared/httputil"
	"tvGuideBff/internal/shared/logging"
)

const (
	msgList   = "Error getting favorites"
	msgAdd    = "Error adding favorite"
	msgRemove = "Error removing favorite"
)

func mapperFor(message string) *httputil.ErrorMapper {
	return httputil.NewErrorMapper().
		WithMapping(port.ErrInvalidRequest, http.StatusBadRequest, httputil.InvalidRequestMessage).
		WithDefault(http.StatusInternalServerError, message)
}

func RegisterRoutes(e *echo.Echo, uc *usecase.FavoritesUseCase) {
	g := e.Group("/api/db/tv-program")
	g.GET("/favorites/:userMail", NewListHandler(uc))
	g.POST("/favorite", NewAddHandler(uc))
	g.DELETE("/favorite", NewRemoveHandler(uc))
}

func NewListHandler(uc *usecase.FavoritesUseCase) echo.HandlerFunc {
	mapper := mapperFor(msgList)
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		logger := logging.FromContext(ctx)
		favorites, err := uc.List(ctx, logger, httputil.PathParam(c, "userMail"))
		if err != nil {
			logger.Error(msgList, slog.Any("error", err))
			return httputil.WriteMappedError(c, mapper, err)
		}
		return httputil.WriteData(c, favorites)
	}
}

func NewAddHandler(uc *usecase.FavoritesUseCase) echo.HandlerFunc {
	return newWriteHandler(msgAdd, uc.Add)
}

func NewRemoveHandler(uc *usecase.FavoritesUseCase) echo.HandlerFunc {
	return newWriteHandler(msgRemove, uc.Remove)
}

type writeFunc func(ctx context.Context, logger *slog.Logger, favorite domain.Favorite) (json.RawMessage, error)

func newWriteHandler(message string, write writeFunc) echo.HandlerFunc {
	mapper := mapperFor(message)
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		logger := logging.FromContext(ctx)

		var favorite domain.Favorite
		if err := json.NewDecoder(c.Request().Body).Decode(&favorite); err != nil {
			logger.Warn("favorite body is not valid JSON", slog.Any("error", err))
			return httputil.WriteError(c, http.StatusBadRequest, httputil.InvalidRequestMessage)
		}
		data, err := write(ctx, logger, favorite)
		if err != nil {
			logger.Error(message, slog.Any("error", err))
			return httputil.WriteMappedError(c, mapper, err)
		}
		if len(data) == 0 {
			return httputil.WriteData(c, nil)
		}
		return httputil.WriteData(c, data)
	}
}
