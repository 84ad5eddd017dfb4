package domain

import "strings"

const (
	SystemEntity = "system"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"

	ActionConnected = "connected"
	ActionPong      = "pong"

	// MetadataUser restricts delivery to clients connected with the same user.
	MetadataUser = "user"
)

// CustomTopic returns "<entity>.<action>", or "" when either part is blank.
func CustomTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}

// SplitTopic infers entity and action from a dotted topic name such as "tv-program.updated".
// Prefixed names like "tvguide.favorite.added" keep the last two segments.
func SplitTopic(topic string) (string, string) {
	parts := strings.Split(strings.TrimSpace(topic), ".")
	if len(parts) >= 2 {
		entity := strings.TrimSpace(parts[len(parts)-2])
		action := strings.TrimSpace(parts[len(parts)-1])
		if entity != "" && action != "" {
			return entity, action
		}
	}
	if entity := strings.Trim(topic, ". "); entity != "" {
		return entity, "unknown"
	}
	return "", "unknown"
}

// ParseTopics splits a comma separated topic list, dropping blanks and duplicates.
func ParseTopics(raw string) []string {
	seen := make(map[string]struct{})
	topics := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		topic := strings.TrimSpace(part)
		if topic == "" {
			continue
		}
		if _, ok := seen[topic]; ok {
			continue
		}
		seen[topic] = struct{}{}
		topics = append(topics, topic)
	}
	return topics
}
