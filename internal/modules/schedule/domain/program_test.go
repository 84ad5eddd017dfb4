package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTimestampJSON(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	start := time.Date(2024, time.May, 28, 21, 30, 0, 0, loc)
	program := TvProgram{Title: "Porta a Porta", ChannelID: "rai-1", StartTime: NewTimestamp(&start)}

	encoded, err := json.Marshal(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := `{"title":"Porta a Porta","description":null,"channel_id":"rai-1","category":"","start_time":"2024-05-28T19:30:00.000Z","end_time":null}`
	if string(encoded) != expected {
		t.Fatalf("expected %s, got %s", expected, encoded)
	}

	var decoded TvProgram
	if err := json.Unmarshal([]byte(`{"id":305265,"start_time":"2024-05-22T21:00:00+00:00"}`), &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.ID.Value != 305265 || decoded.StartTime == nil || decoded.StartTime.Hour() != 21 {
		t.Fatalf("unexpected decoded program %+v", decoded)
	}
}

func TestTvProgramAcceptsStringID(t *testing.T) {
	var decoded TvProgram
	if err := json.Unmarshal([]byte(`{"id":"305265","title":"Tg1"}`), &decoded); err != nil {
		t.Fatalf("expected string id to decode, got %v", err)
	}
	if !decoded.ID.Valid || decoded.ID.Value != 305265 {
		t.Fatalf("expected id 305265, got %+v", decoded.ID)
	}
	encoded, _ := json.Marshal(decoded)
	if !strings.Contains(string(encoded), `"id":305265`) {
		t.Fatalf("expected numeric id in output, got %s", encoded)
	}
}

func TestOverrideChannel(t *testing.T) {
	programs := []TvProgram{{ChannelID: "a"}, {ChannelID: ""}}
	OverrideChannel(programs, "C5")
	for i, program := range programs {
		if program.ChannelID != "C5" {
			t.Fatalf("expected C5 at %d, got %s", i, program.ChannelID)
		}
	}
	OverrideChannel(programs, "")
	if programs[0].ChannelID != "C5" {
		t.Fatalf("expected blank hint to keep ids")
	}
}
