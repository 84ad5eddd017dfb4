package infrastructure

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tvGuideBff/internal/modules/schedule/domain"
)

// epochTime accepts epoch milliseconds (number or numeric string) or an ISO-8601 string.
type epochTime struct {
	value *time.Time
}

func (e *epochTime) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		e.value = nil
		return nil
	}
	if trimmed[0] != '"' {
		millis, err := strconv.ParseInt(string(trimmed), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid epoch %s: %w", trimmed, err)
		}
		parsed := time.UnixMilli(millis).UTC()
		e.value = &parsed
		return nil
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		e.value = nil
		return nil
	}
	if millis, err := strconv.ParseInt(text, 10, 64); err == nil {
		parsed := time.UnixMilli(millis).UTC()
		e.value = &parsed
		return nil
	}
	parsed, err := domain.ParseISOTime(text)
	if err != nil {
		return err
	}
	e.value = &parsed
	return nil
}
