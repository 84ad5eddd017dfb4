package infrastructure

import (
	"context"
	"testing"

	"tvGuideBff/internal/modules/realtime/domain"
)

func TestCommandSubscribeAndUnsubscribe(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil, "", "s1", 4)
	hub.AttachClient(client, nil)

	client.commands.Process(client, Command{Action: " Subscribe ", Topic: "tv-program.updated"})
	if _, ok := client.subscribed["tv-program.updated"]; !ok {
		t.Fatalf("expected subscription to be recorded")
	}
	hub.Broadcast(context.Background(), &domain.Message{Topic: "tv-program.updated"})
	receive(t, client)

	client.commands.Process(client, Command{Action: "unsubscribe", Topic: "tv-program.updated"})
	hub.Broadcast(context.Background(), &domain.Message{Topic: "tv-program.updated"})
	expectSilence(t, client)
}

func TestCommandPingAndUnknown(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil, "", "s1", 4)

	client.commands.Process(client, Command{Action: "ping"})
	if msg := receive(t, client); msg.Topic != domain.TopicSystemPong {
		t.Fatalf("expected %s, got %s", domain.TopicSystemPong, msg.Topic)
	}

	client.commands.Process(client, Command{Action: "dance"})
	client.commands.Process(client, Command{Action: "subscribe", Topic: "  "})
	expectSilence(t, client)
	if len(client.subscribed) != 0 {
		t.Fatalf("expected no subscriptions, got %v", client.subscribed)
	}
}
