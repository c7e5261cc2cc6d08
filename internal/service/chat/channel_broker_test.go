package chat

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func newTestSession(userID int64) *Session {
	return NewSession(nil, userID, "", 16)
}

func mustEvent(t *testing.T, pedidoID int64, destination string, payload any) Event {
	t.Helper()
	event, err := NewEvent(pedidoID, destination, payload)
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	return event
}

// receiveFrame 从会话出站通道取一帧
func receiveFrame(t *testing.T, session *Session, timeout time.Duration) (Frame, bool) {
	t.Helper()
	select {
	case payload := <-session.outbound:
		var frame Frame
		if err := json.Unmarshal(payload, &frame); err != nil {
			t.Fatalf("unmarshal frame: %v", err)
		}
		return frame, true
	case <-time.After(timeout):
		return Frame{}, false
	}
}

func startBroker(t *testing.T) *ChannelBroker {
	t.Helper()
	broker := NewChannelBroker()
	go broker.Start()
	t.Cleanup(broker.Close)
	return broker
}

func TestChannelBrokerFanOutKeepsOrder(t *testing.T) {
	broker := startBroker(t)
	ctx := context.Background()

	a := newTestSession(10)
	b := newTestSession(20)
	broker.Register(a)
	broker.Register(b)
	broker.Subscribe(a, "/topic/messages/42")
	broker.Subscribe(b, "/topic/messages/42")

	// 命令通道是 FIFO 的，订阅一定在发布之前生效
	for _, body := range []string{"um", "dois", "três"} {
		if err := broker.Publish(ctx, mustEvent(t, 42, "/topic/messages/42", body)); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	for _, session := range []*Session{a, b} {
		for _, want := range []string{"um", "dois", "três"} {
			frame, ok := receiveFrame(t, session, time.Second)
			if !ok {
				t.Fatalf("user %d: missing frame %q", session.UserID(), want)
			}
			if frame.Frame != FrameMessage || frame.Destination != "/topic/messages/42" {
				t.Fatalf("unexpected frame: %+v", frame)
			}
			var got string
			if err := json.Unmarshal(frame.Body, &got); err != nil || got != want {
				t.Fatalf("body = %q (%v), want %q", got, err, want)
			}
		}
	}
}

func TestChannelBrokerTopicIsolation(t *testing.T) {
	broker := startBroker(t)
	ctx := context.Background()

	a := newTestSession(10)
	broker.Register(a)
	broker.Subscribe(a, "/topic/messages/42")

	if err := broker.Publish(ctx, mustEvent(t, 7, "/topic/messages/7", "alheio")); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if _, ok := receiveFrame(t, a, 100*time.Millisecond); ok {
		t.Fatal("received event from a topic it never subscribed to")
	}
}

func TestChannelBrokerUnregisterStopsDelivery(t *testing.T) {
	broker := startBroker(t)
	ctx := context.Background()

	a := newTestSession(10)
	broker.Register(a)
	broker.Subscribe(a, "/topic/messages/42")
	broker.Unregister(a)

	if err := broker.Publish(ctx, mustEvent(t, 42, "/topic/messages/42", "tarde demais")); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if _, ok := receiveFrame(t, a, 100*time.Millisecond); ok {
		t.Fatal("unregistered session still received an event")
	}
}

func TestChannelBrokerIgnoresSubscribeWithoutRegister(t *testing.T) {
	broker := startBroker(t)
	ctx := context.Background()

	a := newTestSession(10)
	broker.Subscribe(a, "/topic/messages/42")

	if err := broker.Publish(ctx, mustEvent(t, 42, "/topic/messages/42", "x")); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if _, ok := receiveFrame(t, a, 100*time.Millisecond); ok {
		t.Fatal("unregistered session must not be subscribable")
	}
}
