package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aadeshbhujbal/healthcare-auth/domain"
)

func TestMemoryStore_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Session(ctx); !errors.Is(err, domain.ErrSessionAbsent) {
		t.Fatalf("empty store: got %v, want ErrSessionAbsent", err)
	}

	sess := &domain.Session{
		User:      domain.User{ID: "u1", Email: "jo@example.com", Role: domain.RoleDoctor},
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
	if got.User.ID != "u1" || got.User.Role != domain.RoleDoctor {
		t.Errorf("unexpected session %+v", got)
	}

	if err := store.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, err := store.Session(ctx); !errors.Is(err, domain.ErrSessionAbsent) {
		t.Errorf("after invalidate: got %v, want ErrSessionAbsent", err)
	}
}

func TestMemoryStore_ExpiredSessionIsAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_ = store.SetSession(ctx, &domain.Session{
		User:      domain.User{ID: "u1"},
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	if _, err := store.Session(ctx); !errors.Is(err, domain.ErrSessionAbsent) {
		t.Errorf("expired session should read as absent, got %v", err)
	}
}

func TestMemoryStore_ClearWipesEverything(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_ = store.SetSession(ctx, &domain.Session{User: domain.User{ID: "u1"}})
	store.Put("appointments", []string{"a", "b"})
	store.Put("profile", "cached")

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if _, err := store.Session(ctx); !errors.Is(err, domain.ErrSessionAbsent) {
		t.Error("session survived Clear")
	}
	if store.Len() != 0 {
		t.Errorf("entries survived Clear: %d left", store.Len())
	}
}

func TestMemoryStore_ReadsGetCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_ = store.SetSession(ctx, &domain.Session{User: domain.User{ID: "u1", FirstName: "Jo"}})

	got, err := store.Session(ctx)
	if err != nil {
		t.Fatal(err)
	}
	got.User.FirstName = "mutated"

	again, _ := store.Session(ctx)
	if again.User.FirstName != "Jo" {
		t.Error("reader mutation leaked into the cache")
	}
}

func TestMemoryStore_ConcurrentWritesLastWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.SetSession(ctx, &domain.Session{
				User: domain.User{ID: "user", FirstName: "Jo", Role: domain.RoleDoctor},
			})
		}(i)
	}
	wg.Wait()

	got, err := store.Session(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// Whichever write landed last, the snapshot must be internally consistent.
	if got.User.ID != "user" || got.User.FirstName != "Jo" || got.User.Role != domain.RoleDoctor {
		t.Errorf("corrupted session after concurrent writes: %+v", got)
	}
}
