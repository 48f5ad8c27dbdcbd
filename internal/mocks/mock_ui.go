package mocks

import (
	"sync"

	"github.com/aadeshbhujbal/healthcare-auth/domain"
)

// Notice is one recorded notification
type Notice struct {
	Level   string
	Message string
}

// MockNotifier records notifications for assertions. Safe for concurrent use.
type MockNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

// NewMockNotifier creates an empty recording notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Success implements domain.Notifier
func (m *MockNotifier) Success(message string) { m.record("success", message) }

// Error implements domain.Notifier
func (m *MockNotifier) Error(message string) { m.record("error", message) }

// Info implements domain.Notifier
func (m *MockNotifier) Info(message string) { m.record("info", message) }

func (m *MockNotifier) record(level, message string) {
	m.mu.Lock()
	m.notices = append(m.notices, Notice{Level: level, Message: message})
	m.mu.Unlock()
}

// Notices returns everything recorded so far
func (m *MockNotifier) Notices() []Notice {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notice, len(m.notices))
	copy(out, m.notices)
	return out
}

// Last returns the most recent notice, or a zero Notice when none exist
func (m *MockNotifier) Last() Notice {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.notices) == 0 {
		return Notice{}
	}
	return m.notices[len(m.notices)-1]
}

// MockNavigator records navigation targets for assertions
type MockNavigator struct {
	mu    sync.Mutex
	paths []string
}

// NewMockNavigator creates an empty recording navigator
func NewMockNavigator() *MockNavigator {
	return &MockNavigator{}
}

// NavigateTo implements domain.Navigator
func (m *MockNavigator) NavigateTo(path string) {
	m.mu.Lock()
	m.paths = append(m.paths, path)
	m.mu.Unlock()
}

// Paths returns every recorded navigation in order
func (m *MockNavigator) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.paths))
	copy(out, m.paths)
	return out
}

// Last returns the most recent navigation target, or "" when none happened
func (m *MockNavigator) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.paths) == 0 {
		return ""
	}
	return m.paths[len(m.paths)-1]
}

// MockTokenInspector implements domain.TokenInspector for testing
type MockTokenInspector struct {
	InspectFunc func(token string) (*domain.TokenClaims, error)
}

// Inspect delegates to InspectFunc, defaulting to empty claims
func (m *MockTokenInspector) Inspect(token string) (*domain.TokenClaims, error) {
	if m.InspectFunc != nil {
		return m.InspectFunc(token)
	}
	return &domain.TokenClaims{}, nil
}

var (
	_ domain.Notifier       = (*MockNotifier)(nil)
	_ domain.Navigator      = (*MockNavigator)(nil)
	_ domain.TokenInspector = (*MockTokenInspector)(nil)
)
