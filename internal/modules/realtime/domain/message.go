package domain

import "time"

// Message is what travels from Kafka (or a local write) to websocket clients.
type Message struct {
	Topic      string            `json:"topic"`
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// TargetUser returns the user a message is restricted to, or "" when it is public.
func (m *Message) TargetUser() string {
	if m == nil || m.Metadata == nil {
		return ""
	}
	return m.Metadata[MetadataUser]
}
