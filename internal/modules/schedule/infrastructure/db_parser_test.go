package infrastructure

import (
	"encoding/json"
	"testing"

	"tvGuideBff/internal/shared/logging"
)

func TestStoredParserParsePrograms(t *testing.T) {
	skips := skipCounter{}
	parser := NewStoredParser(skips)
	raw := `[
	  {"id": 305265, "title": "Sogni di gloria", "description": null, "category": "Serie TV", "channel": "", "channel_id": "rai-radio-2", "start_time": "2024-05-22T21:00:00+00:00", "end_time": "2024-05-22T22:00:00+00:00"},
	  {"id": "wrong", "title": "Broken"},
	  null,
	  {"id": 305263, "title": "Back2Back", "category": "RaiRadio2", "channel_id": "rai-radio-2", "start_time": "2024-05-22T19:00:00.481962+00:00", "end_time": null}
	]`

	programs := parser.ParsePrograms(json.RawMessage(raw), logging.Discard())

	if len(programs) != 2 {
		t.Fatalf("expected 2 programs, got %d", len(programs))
	}
	if programs[0].ID.Value != 305265 || programs[0].Category != "TV Show" {
		t.Fatalf("unexpected first program %+v", programs[0])
	}
	if programs[1].Category != "RaiRadio2" || programs[1].EndTime != nil {
		t.Fatalf("unexpected second program %+v", programs[1])
	}
	if skips["stored_programs"] != 2 {
		t.Fatalf("expected 2 skipped rows, got %d", skips["stored_programs"])
	}

	data, err := json.Marshal(programs[0])
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	expected := `{"id":305265,"title":"Sogni di gloria","description":null,"channel_id":"rai-radio-2","category":"TV Show","start_time":"2024-05-22T21:00:00.000Z","end_time":"2024-05-22T22:00:00.000Z"}`
	if string(data) != expected {
		t.Fatalf("expected %s, got %s", expected, data)
	}
}

func TestStoredParserParseChannels(t *testing.T) {
	parser := NewStoredParser(nil)
	raw := `[{"id":"C5","description":"Canale5","company":"Mediaset"},{"id":"I1","description":"Italia1"},{"description":"no id"},7]`

	channels := parser.ParseChannels(json.RawMessage(raw), "Mediaset", logging.Discard())

	if len(channels) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(channels))
	}
	if channels[1].Company != "Mediaset" {
		t.Fatalf("expected company filled from provider, got %q", channels[1].Company)
	}
}

func TestStoredParserAbsentPayload(t *testing.T) {
	parser := NewStoredParser(nil)
	if programs := parser.ParsePrograms(nil, logging.Discard()); programs == nil || len(programs) != 0 {
		t.Fatalf("expected empty programs, got %v", programs)
	}
	if channels := parser.ParseChannels(json.RawMessage(`{"data":1}`), "Rai", logging.Discard()); channels == nil || len(channels) != 0 {
		t.Fatalf("expected empty channels, got %v", channels)
	}
}

func TestSourceRegistryLookup(t *testing.T) {
	registry := NewSourceRegistry(NewRaiSource(nil, nil), NewMediasetSource(nil))

	for _, provider := range []string{"rai", " RAI ", "Mediaset"} {
		if _, ok := registry.Lookup(provider); !ok {
			t.Fatalf("expected provider %q to resolve", provider)
		}
	}
	if _, ok := registry.Lookup("sky"); ok {
		t.Fatalf("expected unknown provider to miss")
	}
}
