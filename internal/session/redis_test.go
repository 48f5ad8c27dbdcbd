package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/aadeshbhujbal/healthcare-auth/domain"
)

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, 15*time.Minute), mr
}

func TestRedisStore_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	store, _ := setupRedisStore(t)

	if _, err := store.Session(ctx); !errors.Is(err, domain.ErrSessionAbsent) {
		t.Fatalf("empty store: got %v, want ErrSessionAbsent", err)
	}

	sess := &domain.Session{
		User:      domain.User{ID: "u1", Email: "jo@example.com", Role: domain.RolePatient},
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := store.SetSession(ctx, sess); err != nil {
		t.Fatalf("SetSession: %v", err)
	}

	got, err := store.Session(ctx)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if got.User.Email != "jo@example.com" || got.User.Role != domain.RolePatient {
		t.Errorf("unexpected session %+v", got)
	}

	if err := store.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, err := store.Session(ctx); !errors.Is(err, domain.ErrSessionAbsent) {
		t.Errorf("after invalidate: got %v, want ErrSessionAbsent", err)
	}
}

func TestRedisStore_ExpiredSessionIsAbsent(t *testing.T) {
	ctx := context.Background()
	store, _ := setupRedisStore(t)

	// Write directly with a past expiry; the TTL guard in SetSession would
	// otherwise refuse to persist it long enough to read back.
	stale := &domain.Session{User: domain.User{ID: "u1"}}
	if err := store.SetSession(ctx, stale); err != nil {
		t.Fatal(err)
	}
	stale.ExpiresAt = time.Now().Add(-time.Minute)
	data, _ := json.Marshal(stale)
	if err := store.client.Set(ctx, store.sessionKey(), data, time.Hour).Err(); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Session(ctx); !errors.Is(err, domain.ErrSessionAbsent) {
		t.Errorf("expired session should read as absent, got %v", err)
	}
}

func TestRedisStore_ClearWipesPrefix(t *testing.T) {
	ctx := context.Background()
	store, mr := setupRedisStore(t)

	_ = store.SetSession(ctx, &domain.Session{User: domain.User{ID: "u1"}})
	if err := store.Put(ctx, "appointments", []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	// A key outside the cache prefix must survive.
	mr.Set("someoneelses:key", "keep")

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if _, err := store.Session(ctx); !errors.Is(err, domain.ErrSessionAbsent) {
		t.Error("session survived Clear")
	}
	var out []string
	if err := store.Get(ctx, "appointments", &out); !errors.Is(err, domain.ErrSessionAbsent) {
		t.Error("application entry survived Clear")
	}
	if !mr.Exists("someoneelses:key") {
		t.Error("Clear removed keys outside the cache prefix")
	}
}

func TestRedisStore_SetUsesTokenExpiryAsTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := setupRedisStore(t)

	_ = store.SetSession(ctx, &domain.Session{
		User:      domain.User{ID: "u1"},
		ExpiresAt: time.Now().Add(2 * time.Minute),
	})

	ttl := mr.TTL(store.sessionKey())
	if ttl <= 0 || ttl > 2*time.Minute {
		t.Errorf("session TTL = %v, want within (0, 2m]", ttl)
	}
}
