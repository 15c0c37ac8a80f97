package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T, limit int) (*RateLimitStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRateLimitStore(client, limit, time.Minute, zerolog.Nop()), mr
}

func TestRateLimitStore_AllowsUpToLimit(t *testing.T) {
	store, _ := newTestStore(t, 3)
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	for i := 0; i < 3; i++ {
		ok, err := store.Allow("10.0.0.1")
		if err != nil || !ok {
			t.Fatalf("request %d: expected allow, got %v %v", i, ok, err)
		}
	}
	if ok, _ := store.Allow("10.0.0.1"); ok {
		t.Fatalf("fourth request should be limited")
	}
	if ok, _ := store.Allow("10.0.0.2"); !ok {
		t.Fatalf("other identifiers have their own budget")
	}
}

func TestRateLimitStore_NewWindowResets(t *testing.T) {
	store, mr := newTestStore(t, 1)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if ok, _ := store.Allow("ip"); !ok {
		t.Fatalf("first request should pass")
	}
	if ok, _ := store.Allow("ip"); ok {
		t.Fatalf("second request should be limited")
	}

	key := store.key("ip")
	if ttl := mr.TTL(key); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected counter to expire within the window, ttl=%s", ttl)
	}

	now = now.Add(time.Minute)
	if ok, _ := store.Allow("ip"); !ok {
		t.Fatalf("request in the next window should pass")
	}
}

func TestRateLimitStore_FailsOpen(t *testing.T) {
	store, mr := newTestStore(t, 1)
	mr.Close()

	ok, err := store.Allow("ip")
	if err != nil || !ok {
		t.Fatalf("expected fail-open allow, got %v %v", ok, err)
	}
}
