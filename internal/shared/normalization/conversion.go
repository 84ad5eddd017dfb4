package normalization

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// String dereferences an optional upstream string, trimming whitespace.
func String(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

// NullableString keeps absent and blank values as nil.
func NullableString(value *string) *string {
	trimmed := String(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Int dereferences an optional integer, defaulting to zero.
func Int(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

// Strings returns the non-blank entries of an optional slice, trimmed.
func Strings(values []*string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := String(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// FirstNonEmpty returns the first non-blank value.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// IsAbsent reports whether a raw payload is missing or JSON null.
func IsAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Items splits a JSON array into its raw elements so each one can be decoded on its own.
// When raw is an object, the array stored under one of the wrapper keys is used instead.
func Items(raw json.RawMessage, wrapperKeys ...string) ([]json.RawMessage, error) {
	if IsAbsent(raw) {
		return nil, fmt.Errorf("payload absent")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("payload is neither a list nor an object: %w", err)
	}
	for _, key := range wrapperKeys {
		nested, ok := wrapper[key]
		if !ok || IsAbsent(nested) {
			continue
		}
		if err := json.Unmarshal(nested, &items); err != nil {
			return nil, fmt.Errorf("%s is not a list: %w", key, err)
		}
		return items, nil
	}
	return nil, fmt.Errorf("payload has none of %v", wrapperKeys)
}

// FlexInt decodes integers sent either as JSON numbers or numeric strings.
type FlexInt struct {
	Value int64
	Valid bool
}

func NewFlexInt(value int64) FlexInt {
	return FlexInt{Value: value, Valid: true}
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = FlexInt{}
		return nil
	}
	text := string(trimmed)
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			*f = FlexInt{}
			return nil
		}
	}
	parsed, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q: %w", text, err)
	}
	*f = FlexInt{Value: parsed, Valid: true}
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(f.Value, 10)), nil
}

// IsZero lets encoding/json omitzero skip unset values.
func (f FlexInt) IsZero() bool {
	return !f.Valid
}
