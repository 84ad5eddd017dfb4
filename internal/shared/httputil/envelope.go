package httputil

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

// InvalidRequestMessage is the generic message returned for caller input errors.
const InvalidRequestMessage = "Invalid Request"

// DataEnvelope wraps every successful response body.
type DataEnvelope struct {
	Data any `json:"data"`
}

// ErrorBody carries the client-facing error message.
type ErrorBody struct {
	Message string `json:"message"`
}

// ErrorEnvelope wraps every error response body.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// WriteData sends {"data": payload} with status 200.
func WriteData(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, DataEnvelope{Data: payload})
}

// WriteError sends {"error": {"message": message}} with the given status.
func WriteError(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorEnvelope{Error: ErrorBody{Message: message}})
}

// WriteMappedError resolves err through the mapper and writes the matching envelope.
func WriteMappedError(c echo.Context, mapper *ErrorMapper, err error) error {
	info := mapper.Map(err)
	return WriteError(c, info.Status, info.Message)
}

// ErrorHandler renders errors escaping handlers (unknown routes, panics, binder failures)
// with the same envelope as the handlers themselves.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		message := "Internal Server Error"
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			if text, ok := httpErr.Message.(string); ok && text != "" {
				message = text
			} else {
				message = http.StatusText(status)
			}
		}
		if status >= http.StatusInternalServerError {
			logger.Error("unhandled request error", slog.String("path", c.Path()), slog.Any("error", err))
		}
		if writeErr := WriteError(c, status, message); writeErr != nil {
			logger.Warn("error response write failed", slog.Any("error", writeErr))
		}
	}
}

// PathParam returns a route parameter decoded exactly once. Echo routes on URL.RawPath when the
// request carried encodings that differ from the canonical form (%40, %2F, %0A), leaving those
// parameters escaped; otherwise it routes on the already decoded URL.Path.
func PathParam(c echo.Context, name string) string {
	value := c.Param(name)
	if c.Request().URL.RawPath == "" || !strings.Contains(value, "%") {
		return value
	}
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}
