package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"tvGuideBff/internal/modules/realtime/domain"
)

// Command is a client-to-server websocket frame.
type Command struct {
	Action  string          `json:"action"`
	Topic   string          `json:"topic,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type CommandHandler func(ctx context.Context, client *Client, cmd Command)

// CommandProcessor dispatches client commands by action: subscribe, unsubscribe and ping.
type CommandProcessor struct {
	hub      *Hub
	handlers map[string]CommandHandler
}

func NewCommandProcessor(hub *Hub) *CommandProcessor {
	processor := &CommandProcessor{
		hub:      hub,
		handlers: make(map[string]CommandHandler),
	}
	processor.Register("subscribe", processor.handleSubscribe)
	processor.Register("unsubscribe", processor.handleUnsubscribe)
	processor.Register("ping", processor.handlePing)
	return processor
}

func (p *CommandProcessor) Register(action string, handler CommandHandler) {
	if handler == nil {
		return
	}
	key := normalizeAction(action)
	if key == "" {
		return
	}
	p.handlers[key] = handler
}

func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil {
		return
	}
	action := normalizeAction(cmd.Action)
	if action == "" {
		return
	}
	handler, ok := p.handlers[action]
	if !ok {
		slog.Debug("ws command ignored", slog.String("user", client.userID), slog.String("sessionId", client.sessionID), slog.String("action", action))
		return
	}
	handler(context.Background(), client, cmd)
}

func (p *CommandProcessor) handleSubscribe(_ context.Context, client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		slog.Debug("ws subscribe ignored empty topic", slog.String("sessionId", client.sessionID))
		return
	}
	p.hub.subscribe(client, topic)
	slog.Debug("ws subscribe", slog.String("user", client.userID), slog.String("sessionId", client.sessionID), slog.String("topic", topic))
}

func (p *CommandProcessor) handleUnsubscribe(_ context.Context, client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		return
	}
	p.hub.unsubscribe(client, topic)
}

func (p *CommandProcessor) handlePing(_ context.Context, client *Client, _ Command) {
	client.SendDomainMessage(&domain.Message{
		Topic:     domain.TopicSystemPong,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionPong,
		Timestamp: time.Now().UTC(),
	})
}

func normalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
