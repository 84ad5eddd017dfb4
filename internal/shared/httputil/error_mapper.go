package httputil

import (
	"errors"
	"net/http"
)

// HTTPErrorInfo contains the HTTP status code and message for an error.
type HTTPErrorInfo struct {
	Status  int
	Message string
}

// ErrorMapping represents a single error to HTTP status/message mapping.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string
}

// ErrorMapper maps domain errors to HTTP status codes and client-facing messages.
// Messages are fixed strings; the underlying error text never reaches the client.
type ErrorMapper struct {
	mappings       []ErrorMapping
	defaultStatus  int
	defaultMessage string
}

// NewErrorMapper creates a new ErrorMapper with default settings.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		mappings:       make([]ErrorMapping, 0),
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "Internal Server Error",
	}
}

// WithMapping adds an error mapping to the mapper.
func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{
		Error:   err,
		Status:  status,
		Message: message,
	})
	return m
}

// WithDefault sets the default status and message for unmatched errors.
func (m *ErrorMapper) WithDefault(status int, message string) *ErrorMapper {
	m.defaultStatus = status
	m.defaultMessage = message
	return m
}

// Map converts an error to HTTP status and message.
// Upstream timeouts fall through to the default like any other upstream failure.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK, Message: ""}
	}

	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.Error) {
			return HTTPErrorInfo{Status: mapping.Status, Message: mapping.Message}
		}
	}

	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}
