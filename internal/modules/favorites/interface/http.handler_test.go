package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"tvGuideBff/internal/modules/favorites/application/usecase"
	"tvGuideBff/internal/modules/favorites/infrastructure"
	"tvGuideBff/internal/platform/upstream"
	"tvGuideBff/internal/shared/events/eventstest"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*echo.Echo, *eventstest.Recorder) {
	t.Helper()
	dataService := httptest.NewServer(handler)
	t.Cleanup(dataService.Close)

	recorder := &eventstest.Recorder{}
	client := upstream.NewClient(dataService.URL, time.Second, nil, nil)
	uc := usecase.NewFavoritesUseCase(client, infrastructure.NewFavoriteParser(nil), recorder)
	e := echo.New()
	RegisterRoutes(e, uc)
	return e, recorder
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListFavorites(t *testing.T) {
	e, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/db/tv-program/favorites/test@mail.com" {
			t.Errorf("unexpected upstream path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":[{"movie_id":8384,"title":"title1"},{"tvshow_id":88829,"title":"title2"}]}`))
	})

	rec := serve(e, http.MethodGet, "/api/db/tv-program/favorites/test%40mail.com%0A", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	expected := `{"data":[{"user_email":"test@mail.com","movie_id":8384,"title":"title1"},{"user_email":"test@mail.com","tvshow_id":88829,"title":"title2"}]}`
	if body := strings.TrimSpace(rec.Body.String()); body != expected {
		t.Fatalf("expected %s, got %s", expected, body)
	}
}

func TestAddFavoriteForwardsBody(t *testing.T) {
	e, recorder := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("expected JSON body: %v", err)
		}
		if body["movie_id"] != float64(12345) {
			t.Errorf("expected numeric movie_id, got %v", body["movie_id"])
		}
		if _, present := body["tvshow_id"]; present {
			t.Errorf("expected tvshow_id omitted, got %v", body)
		}
		_, _ = w.Write([]byte(`{"data":"added"}`))
	})

	rec := serve(e, http.MethodPost, "/api/db/tv-program/favorite", `{"user_email":"test@email.com","movie_id":"12345","title":"Title"}`)

	if body := strings.TrimSpace(rec.Body.String()); body != `{"data":"added"}` {
		t.Fatalf("unexpected body %s", body)
	}
	if len(recorder.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(recorder.Events))
	}
}

func TestFavoriteWriteErrors(t *testing.T) {
	e, recorder := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	tests := []struct {
		method  string
		body    string
		status  int
		message string
	}{
		{method: http.MethodPost, body: `{"user_email":"a@b.c","movie_id":1,"title":"x"}`, status: http.StatusInternalServerError, message: "Error adding favorite"},
		{method: http.MethodDelete, body: `{"user_email":"a@b.c","tvshow_id":1}`, status: http.StatusInternalServerError, message: "Error removing favorite"},
		{method: http.MethodPost, body: `{"user_email":"a@b.c","movie_id":1,"tvshow_id":2,"title":"x"}`, status: http.StatusBadRequest, message: "Invalid Request"},
		{method: http.MethodDelete, body: `{"user_email":"a@b.c"}`, status: http.StatusBadRequest, message: "Invalid Request"},
		{method: http.MethodPost, body: `not json`, status: http.StatusBadRequest, message: "Invalid Request"},
	}
	for _, test := range tests {
		rec := serve(e, test.method, "/api/db/tv-program/favorite", test.body)
		if rec.Code != test.status {
			t.Fatalf("expected %d for %s %s, got %d", test.status, test.method, test.body, rec.Code)
		}
		expected := `{"error":{"message":"` + test.message + `"}}`
		if body := strings.TrimSpace(rec.Body.String()); body != expected {
			t.Fatalf("expected %s, got %s", expected, body)
		}
	}
	if len(recorder.Events) != 0 {
		t.Fatalf("expected no events, got %d", len(recorder.Events))
	}
}
