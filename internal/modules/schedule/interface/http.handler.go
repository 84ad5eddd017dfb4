package transport

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"tvGuideBff/internal/modules/schedule/application/port"
	"tvGuideBff/internal/modules/schedule/application/usecase"
	"tvGuideBff/internal/modules/schedule/domain"
	"tvGuideBff/internal/shared/httputil"
	"tvGuideBff/internal/shared/logging"
)

// Failure messages returned to callers; the underlying error is only logged.
const (
	msgLastUpdate       = "Error getting last tv program update"
	msgInsert           = "Error inserting tv program"
	msgToday            = "Error getting today's tv programs"
	msgWeek             = "Error getting week's tv programs"
	msgRaiChannels      = "Error getting Rai channel list"
	msgMediasetChannels = "Error getting Mediaset channel list"
	msgChannelToday     = "Error getting today's programs for channel"
	msgChannelWeek      = "Error getting week's programs for channel"
)

const (
	dbInfo        = "TV guide BFF database API: /tv-program"
	tvProgramInfo = "TV guide BFF tv program API: /:provider/today/:channelId, /:provider/week/:channelId"
)

func mapperFor(message string) *httputil.ErrorMapper {
	return httputil.NewErrorMapper().
		WithMapping(port.ErrInvalidRequest, http.StatusBadRequest, httputil.InvalidRequestMessage).
		WithMapping(port.ErrUnknownProvider, http.StatusBadRequest, httputil.InvalidRequestMessage).
		WithDefault(http.StatusInternalServerError, message)
}

// RegisterRoutes mounts the /api/db/tv-program and /api/tv-program routes.
func RegisterRoutes(e *echo.Echo, uc *usecase.ScheduleUseCase) {
	e.GET("/api/db", infoHandler(dbInfo))
	e.GET("/api/tv-program", infoHandler(tvProgramInfo))

	db := e.Group("/api/db/tv-program")
	db.GET("/get-last-update", NewLastUpdateHandler(uc))
	db.POST("/insert", NewInsertHandler(uc))
	db.GET("/today", NewStoredProgramsHandler(uc, domain.PeriodToday))
	db.GET("/week", NewStoredProgramsHandler(uc, domain.PeriodWeek))
	db.GET("/rai-channel-list", NewChannelListHandler(uc, "rai"))
	db.GET("/mediaset-channel-list", NewChannelListHandler(uc, "mediaset"))

	listings := e.Group("/api/tv-program")
	listings.GET("/:provider/today/:channelId", NewChannelListingHandler(uc, domain.PeriodToday))
	listings.GET("/:provider/week/:channelId", NewChannelListingHandler(uc, domain.PeriodWeek))
}

func infoHandler(text string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, text)
	}
}

func NewLastUpdateHandler(uc *usecase.ScheduleUseCase) echo.HandlerFunc {
	mapper := mapperFor(msgLastUpdate)
	return func(c echo.Context) error {
		logger := logging.FromContext(c.Request().Context())
		data, err := uc.LastUpdate(c.Request().Context())
		if err != nil {
			logger.Error(msgLastUpdate, slog.Any("error", err))
			return httputil.WriteMappedError(c, mapper, err)
		}
		return httputil.WriteData(c, passthrough(data))
	}
}

// insertRequest keeps the program list raw so it reaches the data service untouched.
type insertRequest struct {
	Data json.RawMessage `json:"data"`
}

func NewInsertHandler(uc *usecase.ScheduleUseCase) echo.HandlerFunc {
	mapper := mapperFor(msgInsert)
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		logger := logging.FromContext(ctx)

		var body insertRequest
		payload, err := io.ReadAll(c.Request().Body)
		if err == nil {
			err = json.Unmarshal(payload, &body)
		}
		if err != nil {
			logger.Warn("insert body is not valid JSON", slog.Any("error", err))
			return httputil.WriteError(c, http.StatusBadRequest, httputil.InvalidRequestMessage)
		}

		data, err := uc.Insert(ctx, logger, body.Data)
		if err != nil {
			logger.Error(msgInsert, slog.Any("error", err))
			return httputil.WriteMappedError(c, mapper, err)
		}
		return httputil.WriteData(c, passthrough(data))
	}
}

func NewStoredProgramsHandler(uc *usecase.ScheduleUseCase, period domain.Period) echo.HandlerFunc {
	message := msgToday
	if period == domain.PeriodWeek {
		message = msgWeek
	}
	mapper := mapperFor(message)
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		logger := logging.FromContext(ctx)
		programs, err := uc.StoredPrograms(ctx, logger, period)
		if err != nil {
			logger.Error(message, slog.Any("error", err))
			return httputil.WriteMappedError(c, mapper, err)
		}
		return httputil.WriteData(c, programs)
	}
}

func NewChannelListHandler(uc *usecase.ScheduleUseCase, provider string) echo.HandlerFunc {
	message := msgRaiChannels
	if provider == "mediaset" {
		message = msgMediasetChannels
	}
	mapper := mapperFor(message)
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		logger := logging.FromContext(ctx)
		channels, err := uc.Channels(ctx, logger, provider)
		if err != nil {
			logger.Error(message, slog.Any("error", err))
			return httputil.WriteMappedError(c, mapper, err)
		}
		return httputil.WriteData(c, channels)
	}
}

func NewChannelListingHandler(uc *usecase.ScheduleUseCase, period domain.Period) echo.HandlerFunc {
	message := msgChannelToday
	if period == domain.PeriodWeek {
		message = msgChannelWeek
	}
	mapper := mapperFor(message)
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		provider, channel := httputil.PathParam(c, "provider"), httputil.PathParam(c, "channelId")
		logger := logging.FromContext(ctx).With(slog.String("provider", provider), slog.String("channel", channel))
		programs, err := uc.ChannelListing(ctx, logger, provider, period, channel)
		if err != nil {
			logger.Error(message, slog.Any("error", err))
			return httputil.WriteMappedError(c, mapper, err)
		}
		return httputil.WriteData(c, programs)
	}
}

// passthrough keeps absent upstream data as JSON null instead of an empty raw message.
func passthrough(data json.RawMessage) any {
	if len(data) == 0 {
		return nil
	}
	return data
}
