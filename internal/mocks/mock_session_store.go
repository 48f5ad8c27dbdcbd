package mocks

import (
	"context"

	"github.com/aadeshbhujbal/healthcare-auth/domain"
)

// MockSessionStore implements domain.SessionStore for testing failure paths;
// happy paths are better served by the real memory store.
type MockSessionStore struct {
	SessionFunc    func(ctx context.Context) (*domain.Session, error)
	SetSessionFunc func(ctx context.Context, s *domain.Session) error
	InvalidateFunc func(ctx context.Context) error
	ClearFunc      func(ctx context.Context) error
}

// Session delegates to SessionFunc, defaulting to absent
func (m *MockSessionStore) Session(ctx context.Context) (*domain.Session, error) {
	if m.SessionFunc != nil {
		return m.SessionFunc(ctx)
	}
	return nil, domain.ErrSessionAbsent
}

// SetSession delegates to SetSessionFunc
func (m *MockSessionStore) SetSession(ctx context.Context, s *domain.Session) error {
	if m.SetSessionFunc != nil {
		return m.SetSessionFunc(ctx, s)
	}
	return nil
}

// Invalidate delegates to InvalidateFunc
func (m *MockSessionStore) Invalidate(ctx context.Context) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx)
	}
	return nil
}

// Clear delegates to ClearFunc
func (m *MockSessionStore) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	return nil
}

var _ domain.SessionStore = (*MockSessionStore)(nil)
