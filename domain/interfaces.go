package domain

import "context"

// IdentityAPI defines the remote authentication actions. Every method is a
// network call to the identity backend; failures carry a human-readable
// message via APIError.
type IdentityAPI interface {
	Login(ctx context.Context, email, password string, rememberMe bool) (*AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	RegisterWithClinic(ctx context.Context, req ClinicRegisterRequest) (*AuthResponse, error)
	Logout(ctx context.Context) error
	GetServerSession(ctx context.Context) (*Session, error)
	TerminateAllSessions(ctx context.Context) error

	RequestOTP(ctx context.Context, identifier string) (*AuthResponse, error)
	VerifyOTP(ctx context.Context, identifier, code string) (*AuthResponse, error)
	CheckOTPStatus(ctx context.Context, email string) (*OTPStatus, error)
	InvalidateOTP(ctx context.Context, email string) (*AuthResponse, error)

	RequestMagicLink(ctx context.Context, email string) (*AuthResponse, error)
	VerifyMagicLink(ctx context.Context, token string) (*AuthResponse, error)

	SocialLogin(ctx context.Context, provider, accessToken string) (*AuthResponse, error)
	GoogleLogin(ctx context.Context, idToken string) (*AuthResponse, error)
	FacebookLogin(ctx context.Context, accessToken string) (*AuthResponse, error)
	AppleLogin(ctx context.Context, idToken string) (*AuthResponse, error)

	ForgotPassword(ctx context.Context, email string) (*AuthResponse, error)
	ResetPassword(ctx context.Context, token, password string) (*AuthResponse, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) (*AuthResponse, error)
	VerifyEmail(ctx context.Context, token string) (*AuthResponse, error)
}

// SessionStore holds the client-side cache. The orchestrator is its only
// writer; UI readers never mutate it.
type SessionStore interface {
	// Session returns the cached session, or ErrSessionAbsent when none is
	// cached or the cached one has expired.
	Session(ctx context.Context) (*Session, error)
	SetSession(ctx context.Context, s *Session) error
	// Invalidate drops only the session entry, forcing a refetch.
	Invalidate(ctx context.Context) error
	// Clear wipes the entire cache, session and application entries alike.
	Clear(ctx context.Context) error
}

// Navigator moves the UI to a new path after an auth flow completes
type Navigator interface {
	NavigateTo(path string)
}

// Notifier surfaces flow outcomes to the user
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// TokenInspector reads claims off an access token without validating it
type TokenInspector interface {
	Inspect(token string) (*TokenClaims, error)
}
