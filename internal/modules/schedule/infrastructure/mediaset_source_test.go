package infrastructure

import (
	"encoding/json"
	"testing"

	"tvGuideBff/internal/shared/logging"
)

type skipCounter map[string]int

func (s skipCounter) SkippedItem(parser string) { s[parser]++ }

const mediasetPayload = `[
  {"listings": [
    {
      "mediasetlisting$epgTitle": "Tg5",
      "description": "Notiziario",
      "startTime": 1716400800000,
      "endTime": "1716402600000",
      "program": {
        "mediasetprogram$publishInfo": {"channel": "C5", "description": "Canale 5"},
        "tags": [{"scheme": "genre", "title": "News"}, {"scheme": "category", "title": "Serie TV"}]
      }
    },
    {"mediasetlisting$epgTitle": "Broken", "startTime": {"bad": true}},
    null,
    {
      "startTime": "2024-05-22T19:00:00Z",
      "endTime": "2024-05-22T21:00:00+02:00",
      "program": {"title": "Fallback title", "tags": [{"scheme": "category", "title": "Film"}]}
    },
    {"mediasetlisting$epgTitle": "No end", "startTime": 1716400800000}
  ]},
  "not an entry"
]`

func TestMediasetSourceParse(t *testing.T) {
	skips := skipCounter{}
	source := NewMediasetSource(skips)

	programs := source.Parse(json.RawMessage(mediasetPayload), "", logging.Discard())

	if len(programs) != 2 {
		t.Fatalf("expected 2 programs, got %d", len(programs))
	}
	first := programs[0]
	if first.Title != "Tg5" || first.ChannelID != "C5" || first.Channel != "Canale 5" {
		t.Fatalf("unexpected first program %+v", first)
	}
	if first.Category != "TV Show" {
		t.Fatalf("expected category from the category tag, got %q", first.Category)
	}
	if first.Description == nil || *first.Description != "Notiziario" {
		t.Fatalf("expected description Notiziario, got %v", first.Description)
	}
	if got := first.StartTime.UTC().Format("2006-01-02T15:04:05Z"); got != "2024-05-22T18:00:00Z" {
		t.Fatalf("expected start 2024-05-22T18:00:00Z, got %s", got)
	}
	if got := first.EndTime.UTC().Format("2006-01-02T15:04:05Z"); got != "2024-05-22T18:30:00Z" {
		t.Fatalf("expected end from numeric string, got %s", got)
	}

	second := programs[1]
	if second.Title != "Fallback title" || second.Category != "Film" {
		t.Fatalf("unexpected second program %+v", second)
	}
	if second.Description != nil {
		t.Fatalf("expected nil description, got %q", *second.Description)
	}
	if second.ChannelID != "" {
		t.Fatalf("expected empty channel id, got %q", second.ChannelID)
	}
	if skips["mediaset"] != 4 {
		t.Fatalf("expected 4 skipped items, got %d", skips["mediaset"])
	}
}

func TestMediasetSourceChannelHint(t *testing.T) {
	source := NewMediasetSource(nil)

	programs := source.Parse(json.RawMessage(`{"entries":`+mediasetPayload+`}`), "I1", logging.Discard())

	if len(programs) != 2 {
		t.Fatalf("expected 2 programs, got %d", len(programs))
	}
	for _, program := range programs {
		if program.ChannelID != "I1" {
			t.Fatalf("expected channel hint I1, got %q", program.ChannelID)
		}
	}
}

func TestMediasetSourceAbsentPayload(t *testing.T) {
	source := NewMediasetSource(nil)
	for _, raw := range []string{"", "null", `"text"`, `{"other": 1}`} {
		programs := source.Parse(json.RawMessage(raw), "C5", logging.Discard())
		if programs == nil || len(programs) != 0 {
			t.Fatalf("expected empty non-nil slice for %q, got %v", raw, programs)
		}
	}
}

func TestMediasetSourceDropsListingEndingBeforeStart(t *testing.T) {
	skips := skipCounter{}
	source := NewMediasetSource(skips)
	payload := `{"entries": [{"listings": [
		{"mediasetlisting$epgTitle": "Backwards", "startTime": 1716402600000, "endTime": 1716400800000},
		{"mediasetlisting$epgTitle": "Instant", "startTime": 1716400800000, "endTime": 1716400800000}
	]}]}`

	programs := source.Parse(json.RawMessage(payload), "", logging.Discard())

	if len(programs) != 1 || programs[0].Title != "Instant" {
		t.Fatalf("expected only the well ordered listing, got %+v", programs)
	}
	if skips[source.Provider()] != 1 {
		t.Fatalf("expected 1 skipped listing, got %d", skips[source.Provider()])
	}
}
