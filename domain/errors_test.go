package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	withMessage := &APIError{Kind: KindServer, Message: "something broke"}
	if withMessage.Error() != "something broke" {
		t.Errorf("Error() = %q, want message", withMessage.Error())
	}

	withoutMessage := &APIError{Kind: KindNetwork}
	if withoutMessage.Error() != "network" {
		t.Errorf("Error() = %q, want kind fallback", withoutMessage.Error())
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want error
	}{
		{KindNetwork, ErrNetwork},
		{KindServer, ErrServer},
		{KindSessionInvalid, ErrSessionInvalid},
		{KindNotImplemented, ErrNotImplemented},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := &APIError{Kind: tt.kind, Message: "m"}
			if !errors.Is(err, tt.want) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.want)
			}
		})
	}
}

func TestAPIError_UnwrapExplicitCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &APIError{Kind: KindNetwork, Message: "cannot reach backend", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
}

func TestIsSessionInvalid(t *testing.T) {
	direct := &APIError{Kind: KindSessionInvalid, Message: "no session"}
	if !IsSessionInvalid(direct) {
		t.Error("tagged session-invalid error not recognized")
	}

	wrapped := fmt.Errorf("logout: %w", direct)
	if !IsSessionInvalid(wrapped) {
		t.Error("wrapped session-invalid error not recognized")
	}

	other := &APIError{Kind: KindServer, Message: "session storage exploded"}
	if IsSessionInvalid(other) {
		t.Error("server error mentioning sessions must not count as benign")
	}
}

func TestIsNotImplemented(t *testing.T) {
	if !IsNotImplemented(&APIError{Kind: KindNotImplemented}) {
		t.Error("tagged not-implemented error not recognized")
	}
	if IsNotImplemented(ErrServer) {
		t.Error("server error must not count as not-implemented")
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("boom"), "boom"},
		{"api error message", &APIError{Kind: KindServer, Message: "try again later"}, "try again later"},
		{"wrapped api error", fmt.Errorf("login: %w", &APIError{Kind: KindServer, Message: "try again later"}), "try again later"},
		{"api error without message", &APIError{Kind: KindNetwork}, "network"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.want {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
