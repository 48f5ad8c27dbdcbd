package domain

import "errors"

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserMissing        = errors.New("no user in authentication response")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

// Session errors
var (
	ErrSessionInvalid = errors.New("session is no longer valid")
	ErrSessionAbsent  = errors.New("no active session")
)

// Binding errors
var (
	ErrNetwork        = errors.New("authentication service unreachable")
	ErrServer         = errors.New("authentication service error")
	ErrNotImplemented = errors.New("operation not implemented")
)

// ErrorKind classifies a failed remote action. The API binding decides the
// kind from the transport outcome; the orchestrator never inspects message
// strings.
type ErrorKind string

const (
	KindNetwork        ErrorKind = "network"
	KindServer         ErrorKind = "server"
	KindSessionInvalid ErrorKind = "session_invalid"
	KindNotImplemented ErrorKind = "not_implemented"
)

// APIError is a failure reported by the identity backend or its transport
type APIError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

// Unwrap exposes the underlying transport cause, if any
func (e *APIError) Unwrap() error { return e.Err }

// Is matches the sentinel for the error kind, so callers can use errors.Is
// without knowing about APIError
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrServer:
		return e.Kind == KindServer
	case ErrSessionInvalid:
		return e.Kind == KindSessionInvalid
	case ErrNotImplemented:
		return e.Kind == KindNotImplemented
	}
	return false
}

// IsSessionInvalid reports whether err means the session was already gone
func IsSessionInvalid(err error) bool {
	return errors.Is(err, ErrSessionInvalid)
}

// IsNotImplemented reports whether err marks a flow the backend does not offer
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

// ErrorMessage extracts a human-readable message for notifications
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
