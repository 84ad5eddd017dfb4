package infrastructure

import (
	"encoding/json"
	"testing"

	"tvGuideBff/internal/shared/logging"
)

type skipCounter map[string]int

func (s skipCounter) SkippedItem(parser string) { s[parser]++ }

func TestParseFavorites(t *testing.T) {
	skips := skipCounter{}
	parser := NewFavoriteParser(skips)
	raw := `[
	  {"movie_id": 8384, "title": "title1"},
	  {"tvshow_id": "88829", "title": "title2", "user_email": "other@mail.com"},
	  {"movie_id": 1, "tvshow_id": 2, "title": "both"},
	  {"title": "none"},
	  {"movie_id": "abc"},
	  null
	]`

	favorites := parser.ParseFavorites(json.RawMessage(raw), "test@mail.com", logging.Discard())

	if len(favorites) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(favorites))
	}
	if favorites[0].UserEmail != "test@mail.com" || favorites[0].MovieID.Value != 8384 {
		t.Fatalf("unexpected first favorite %+v", favorites[0])
	}
	if favorites[1].UserEmail != "other@mail.com" || favorites[1].TVShowID.Value != 88829 {
		t.Fatalf("unexpected second favorite %+v", favorites[1])
	}
	if skips[parserFavorites] != 4 {
		t.Fatalf("expected 4 skipped rows, got %d", skips[parserFavorites])
	}
}

func TestParseFavoritesAbsent(t *testing.T) {
	parser := NewFavoriteParser(nil)
	for _, raw := range []string{"", "null", `{"count":0}`} {
		if favorites := parser.ParseFavorites(json.RawMessage(raw), "a@b.c", logging.Discard()); favorites == nil || len(favorites) != 0 {
			t.Fatalf("expected empty favorites for %q, got %v", raw, favorites)
		}
	}
}
