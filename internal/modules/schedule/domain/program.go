package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tvGuideBff/internal/shared/normalization"
)

// TimestampLayout is the UTC ISO-8601 form used for every timestamp leaving the service.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp serializes as UTC ISO-8601 with milliseconds and accepts any RFC 3339 input.
type Timestamp struct {
	time.Time
}

// NewTimestamp returns nil for a nil time so absent values stay JSON null.
func NewTimestamp(t *time.Time) *Timestamp {
	if t == nil {
		return nil
	}
	return &Timestamp{Time: *t}
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.UTC().Format(TimestampLayout) + `"`), nil
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseISOTime(raw)
	if err != nil {
		return err
	}
	ts.Time = parsed
	return nil
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
}

// ParseISOTime parses the ISO-8601 variants emitted by the data service and the providers.
func ParseISOTime(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range isoLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// TvProgram is one scheduled broadcast in canonical form.
type TvProgram struct {
	ID          normalization.FlexInt `json:"id,omitzero"`
	Title       string                `json:"title"`
	Description *string               `json:"description"`
	ChannelID   string                `json:"channel_id"`
	Channel     string                `json:"channel,omitempty"`
	Category    string                `json:"category"`
	StartTime   *Timestamp            `json:"start_time"`
	EndTime     *Timestamp            `json:"end_time"`
}

// TvChannel is one channel of a broadcaster group.
type TvChannel struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Company     string `json:"company"`
}

// OverrideChannel makes hint the channel id of every program. A blank hint keeps the parsed ids.
func OverrideChannel(programs []TvProgram, hint string) {
	if hint == "" {
		return
	}
	for i := range programs {
		programs[i].ChannelID = hint
	}
}
