package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"tvGuideBff/internal/modules/favorites/application/port"
	"tvGuideBff/internal/modules/favorites/domain"
	"tvGuideBff/internal/modules/favorites/infrastructure"
	"tvGuideBff/internal/shared/events/eventstest"
	"tvGuideBff/internal/shared/logging"
	"tvGuideBff/internal/shared/normalization"
)

type fakeDataService struct {
	data    json.RawMessage
	err     error
	paths   []string
	methods []string
	bodies  []any
}

func (f *fakeDataService) Get(_ context.Context, _ string, path string) (json.RawMessage, error) {
	f.paths = append(f.paths, path)
	f.methods = append(f.methods, "GET")
	return f.data, f.err
}

func (f *fakeDataService) Send(_ context.Context, _ string, method, path string, body any) (json.RawMessage, error) {
	f.paths = append(f.paths, path)
	f.methods = append(f.methods, method)
	f.bodies = append(f.bodies, body)
	return f.data, f.err
}

func TestListEscapesUserMail(t *testing.T) {
	data := &fakeDataService{data: json.RawMessage(`[{"movie_id":8384,"title":"title1"}]`)}
	uc := NewFavoritesUseCase(data, infrastructure.NewFavoriteParser(nil), nil)

	favorites, err := uc.List(context.Background(), logging.Discard(), "test@mail.com\n")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if data.paths[0] != "/api/db/tv-program/favorites/test%40mail.com" {
		t.Fatalf("unexpected path %s", data.paths[0])
	}
	if len(favorites) != 1 || favorites[0].UserEmail != "test@mail.com" {
		t.Fatalf("unexpected favorites %+v", favorites)
	}
}

func TestAddPublishesEvent(t *testing.T) {
	data := &fakeDataService{data: json.RawMessage(`"ok"`)}
	recorder := &eventstest.Recorder{}
	uc := NewFavoritesUseCase(data, infrastructure.NewFavoriteParser(nil), recorder)
	favorite := domain.Favorite{UserEmail: " test@email.com ", MovieID: normalization.NewFlexInt(12345), Title: "Title"}

	if _, err := uc.Add(context.Background(), logging.Discard(), favorite); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if data.methods[0] != "POST" || data.paths[0] != "/api/db/tv-program/favorite" {
		t.Fatalf("unexpected call %s %s", data.methods[0], data.paths[0])
	}
	sent, ok := data.bodies[0].(domain.Favorite)
	if !ok || sent.UserEmail != "test@email.com" {
		t.Fatalf("expected normalized favorite body, got %#v", data.bodies[0])
	}
	if len(recorder.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(recorder.Events))
	}
	event := recorder.Events[0]
	if event.Topic() != "favorite.added" || event.ResourceID != "12345" || event.Metadata["user"] != "test@email.com" || event.Metadata["kind"] != "movie" {
		t.Fatalf("unexpected event %+v", event)
	}
	payload, ok := event.Data.(domain.Favorite)
	if !ok || payload.UserEmail != "" || payload.Title != "Title" || payload.MovieID.Value != 12345 {
		t.Fatalf("expected payload without email, got %#v", event.Data)
	}
	if sent.UserEmail != "test@email.com" {
		t.Fatalf("expected request body to keep the email, got %q", sent.UserEmail)
	}
}

func TestRemoveUsesDelete(t *testing.T) {
	data := &fakeDataService{data: json.RawMessage(`null`)}
	recorder := &eventstest.Recorder{}
	uc := NewFavoritesUseCase(data, infrastructure.NewFavoriteParser(nil), recorder)
	favorite := domain.Favorite{UserEmail: "test@email.com", TVShowID: normalization.NewFlexInt(12345)}

	if _, err := uc.Remove(context.Background(), logging.Discard(), favorite); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if data.methods[0] != "DELETE" {
		t.Fatalf("expected DELETE, got %s", data.methods[0])
	}
	if recorder.Events[0].Topic() != "favorite.removed" {
		t.Fatalf("unexpected topic %s", recorder.Events[0].Topic())
	}
}

func TestWritesRejectInvalidBodies(t *testing.T) {
	data := &fakeDataService{}
	uc := NewFavoritesUseCase(data, infrastructure.NewFavoriteParser(nil), nil)
	both := domain.Favorite{UserEmail: "a@b.c", MovieID: normalization.NewFlexInt(1), TVShowID: normalization.NewFlexInt(2), Title: "x"}

	if _, err := uc.Add(context.Background(), logging.Discard(), both); !errors.Is(err, port.ErrInvalidRequest) || !errors.Is(err, domain.ErrAmbiguousTarget) {
		t.Fatalf("expected invalid request wrapping ambiguous target, got %v", err)
	}
	if _, err := uc.Remove(context.Background(), logging.Discard(), domain.Favorite{UserEmail: "a@b.c"}); !errors.Is(err, port.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	if _, err := uc.List(context.Background(), logging.Discard(), "  "); !errors.Is(err, port.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	if len(data.paths) != 0 {
		t.Fatalf("expected no upstream calls, got %v", data.paths)
	}
}

func TestWriteFailureIsNotRetried(t *testing.T) {
	data := &fakeDataService{err: errors.New("timeout")}
	recorder := &eventstest.Recorder{}
	uc := NewFavoritesUseCase(data, infrastructure.NewFavoriteParser(nil), recorder)
	favorite := domain.Favorite{UserEmail: "a@b.c", MovieID: normalization.NewFlexInt(1), Title: "x"}

	if _, err := uc.Add(context.Background(), logging.Discard(), favorite); err == nil {
		t.Fatalf("expected error")
	}
	if len(data.paths) != 1 || len(recorder.Events) != 0 {
		t.Fatalf("expected one attempt and no events, got %d calls %d events", len(data.paths), len(recorder.Events))
	}
}
