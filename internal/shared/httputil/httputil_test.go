package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"tvGuideBff/internal/shared/logging"
)

var errInvalid = errors.New("invalid input")

func TestErrorMapperMap(t *testing.T) {
	mapper := NewErrorMapper().
		WithMapping(errInvalid, http.StatusBadRequest, InvalidRequestMessage).
		WithDefault(http.StatusInternalServerError, "Error inserting tv program")

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "nil", err: nil, status: http.StatusOK, message: ""},
		{name: "wrapped mapping", err: fmt.Errorf("channel: %w", errInvalid), status: http.StatusBadRequest, message: InvalidRequestMessage},
		{name: "timeout uses default", err: context.DeadlineExceeded, status: http.StatusInternalServerError, message: "Error inserting tv program"},
		{name: "unknown uses default", err: errors.New("boom"), status: http.StatusInternalServerError, message: "Error inserting tv program"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			info := mapper.Map(test.err)
			if info.Status != test.status || info.Message != test.message {
				t.Fatalf("expected %d %q, got %d %q", test.status, test.message, info.Status, info.Message)
			}
		})
	}
}

func TestErrorHandlerWritesEnvelope(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(logging.Discard())(echo.NewHTTPError(http.StatusNotFound, "Not Found"), c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "{\"error\":{\"message\":\"Not Found\"}}\n" {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestPathParamDecodesOnce(t *testing.T) {
	cases := map[string]string{
		"/search/50%2541":            "50%41",
		"/search/il%20padrino":       "il padrino",
		"/search/test%40mail.com%0A": "test@mail.com\n",
		"/search/a%2Fb":              "a/b",
		"/search/plain":              "plain",
	}
	for target, expected := range cases {
		e := echo.New()
		var got string
		e.GET("/search/:query", func(c echo.Context) error {
			got = PathParam(c, "query")
			return c.NoContent(http.StatusNoContent)
		})
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
		if got != expected {
			t.Fatalf("%s: expected %q, got %q", target, expected, got)
		}
	}
}
