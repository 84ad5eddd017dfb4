package server

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tvGuideBff/internal/platform/upstream"
	"tvGuideBff/internal/shared/httputil"
	"tvGuideBff/internal/shared/logging"
	"tvGuideBff/internal/shared/metrics"
)

const apiInfo = "TV guide BFF API: /db, /tv-program, /program-metadata"

// New builds the echo instance with the middleware chain every module relies on: panic recovery,
// request ids, a request scoped logger, access logging and request metrics. m may be nil.
func New(logger *slog.Logger, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httputil.ErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestContext(logger))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				slog.String("request_id", v.RequestID),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Warn("request failed", append(attrs, slog.Any("error", v.Error))...)
				return nil
			}
			logger.Info("request", attrs...)
			return nil
		},
	}))
	if m != nil {
		e.Use(m.Middleware())
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	e.GET("/api", func(c echo.Context) error {
		return c.String(http.StatusOK, apiInfo)
	})
	return e
}

// RequestContext attaches a logger carrying the request id, method and path to the request
// context, and forwards the request id to data service calls.
func RequestContext(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			logger := base.With(
				slog.String("request_id", id),
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
			)
			ctx := logging.WithLogger(req.Context(), logger)
			ctx = upstream.WithRequestID(ctx, id)
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}
