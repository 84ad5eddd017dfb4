package normalization

import (
	"encoding/json"
	"testing"
)

func TestNormalizeProvider(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"rai":           "rai",
		" RAI ":         "rai",
		"RaiPlay":       "rai",
		"mediaset":      "mediaset",
		"Mediaset_Play": "mediaset",
		"sky":           "sky",
	}
	for input, expected := range cases {
		if got := NormalizeProvider(input); got != expected {
			t.Fatalf("NormalizeProvider(%q) expected %q got %q", input, expected, got)
		}
	}
	if IsKnownProvider("sky") {
		t.Fatalf("expected sky to be unknown")
	}
	if CompanyName("MEDIASET") != "Mediaset" {
		t.Fatalf("expected Mediaset company")
	}
}

func TestItems(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		keys    []string
		count   int
		wantErr bool
	}{
		{name: "plain list", raw: `[{"a":1},{"a":2}]`, count: 2},
		{name: "wrapped list", raw: `{"events":[1,2,3]}`, keys: []string{"events"}, count: 3},
		{name: "second wrapper key", raw: `{"entries":[1]}`, keys: []string{"events", "entries"}, count: 1},
		{name: "null", raw: `null`, wantErr: true},
		{name: "empty", raw: ``, wantErr: true},
		{name: "scalar", raw: `42`, wantErr: true},
		{name: "object without key", raw: `{"other":[]}`, keys: []string{"events"}, wantErr: true},
		{name: "wrapper not a list", raw: `{"events":{"a":1}}`, keys: []string{"events"}, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			items, err := Items(json.RawMessage(test.raw), test.keys...)
			if test.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d items", len(items))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(items) != test.count {
				t.Fatalf("expected %d items, got %d", test.count, len(items))
			}
		})
	}
}

func TestFlexInt(t *testing.T) {
	var payload struct {
		Movie  FlexInt `json:"movie_id"`
		Show   FlexInt `json:"tvshow_id"`
		Absent FlexInt `json:"absent"`
	}
	if err := json.Unmarshal([]byte(`{"movie_id":"12345","tvshow_id":88829}`), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !payload.Movie.Valid || payload.Movie.Value != 12345 {
		t.Fatalf("expected movie id 12345, got %+v", payload.Movie)
	}
	if !payload.Show.Valid || payload.Show.Value != 88829 {
		t.Fatalf("expected show id 88829, got %+v", payload.Show)
	}
	if payload.Absent.Valid {
		t.Fatalf("expected absent value to be invalid")
	}
	if err := json.Unmarshal([]byte(`{"movie_id":"abc"}`), &payload); err == nil {
		t.Fatalf("expected error for non numeric id")
	}
}

func TestNullableString(t *testing.T) {
	blank := "   "
	value := " Tg5 "
	if NullableString(nil) != nil || NullableString(&blank) != nil {
		t.Fatalf("expected nil for absent or blank values")
	}
	if got := NullableString(&value); got == nil || *got != "Tg5" {
		t.Fatalf("expected trimmed value, got %v", got)
	}
}
