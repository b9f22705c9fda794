package stream

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func receive(t *testing.T, c *Client, want string) {
	t.Helper()
	select {
	case msg := <-c.Send:
		if string(msg) != want {
			t.Fatalf("expected %q, got %q", want, msg)
		}
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for %q", want)
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(nil, quietLogger(), nil)
	client := hub.Register("session-1")
	defer hub.Unregister(client)
	other := hub.Register("session-2")
	defer hub.Unregister(other)

	hub.Broadcast("session-1", []byte("hello"))
	receive(t, client, "hello")

	select {
	case msg := <-other.Send:
		t.Fatalf("unexpected message for other session: %s", msg)
	default:
	}
}

func TestHubHelpers(t *testing.T) {
	ch := redisChannel("abc")
	if ch != "planner:abc:updates" {
		t.Fatalf("unexpected channel %s", ch)
	}
	if sessionIDFromChannel(ch) != "abc" {
		t.Fatalf("unexpected session id")
	}
	for _, bad := range []string{"bad", "tracking:abc:broadcast", "planner::updates"} {
		if sessionIDFromChannel(bad) != "" {
			t.Fatalf("expected empty session id for %s", bad)
		}
	}
}

func TestUnregisterCloses(t *testing.T) {
	hub := NewHub(nil, quietLogger(), nil)
	client := hub.Register("session-2")
	if hub.Clients("session-2") != 1 {
		t.Fatalf("expected one client")
	}
	hub.Unregister(client)
	hub.Unregister(client)
	if _, ok := <-client.Send; ok {
		t.Fatalf("expected channel closed")
	}
	if hub.Clients("session-2") != 0 {
		t.Fatalf("expected no clients")
	}
}

func TestHubSlowClientDropsMessages(t *testing.T) {
	hub := NewHub(nil, quietLogger(), nil)
	client := hub.Register("slow")
	defer hub.Unregister(client)

	for i := 0; i < cap(client.Send)+10; i++ {
		hub.Broadcast("slow", []byte("x"))
	}
	if len(client.Send) != cap(client.Send) {
		t.Fatalf("expected full buffer")
	}
}

func TestHubRedisBroadcastAndSubscribe(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer rdb.Close()

	hub := NewHub(rdb, quietLogger(), nil)
	defer hub.Close()
	ws := hub.Register("session-redis")
	defer hub.Unregister(ws)

	hub.Broadcast("session-redis", []byte("ping"))
	receive(t, ws, "ping")

	// another instance publishing for the same session
	if err := rdb.Publish(context.Background(), redisChannel("session-redis"), "pong").Err(); err != nil {
		t.Fatalf("publish error: %v", err)
	}
	receive(t, ws, "pong")
}

func TestHubCloseStopsSubscription(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer rdb.Close()

	hub := NewHub(rdb, quietLogger(), nil)
	if err := hub.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := NewHub(nil, quietLogger(), nil).Close(); err != nil {
		t.Fatalf("close without redis: %v", err)
	}
}

func TestHubFallsBackToLocalWithoutRedisServer(t *testing.T) {
	server := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	server.Close()
	defer rdb.Close()

	hub := NewHub(rdb, quietLogger(), nil)
	defer hub.Close()
	client := hub.Register("session-bad")
	defer hub.Unregister(client)

	hub.Broadcast("session-bad", []byte("ping"))
	receive(t, client, "ping")
}
