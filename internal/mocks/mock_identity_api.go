package mocks

import (
	"context"

	"github.com/aadeshbhujbal/healthcare-auth/domain"
)

// MockIdentityAPI implements domain.IdentityAPI for testing. Each method
// delegates to its func field when set and falls back to a benign default.
type MockIdentityAPI struct {
	LoginFunc                func(ctx context.Context, email, password string, rememberMe bool) (*domain.AuthResponse, error)
	RegisterFunc             func(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
	RegisterWithClinicFunc   func(ctx context.Context, req domain.ClinicRegisterRequest) (*domain.AuthResponse, error)
	LogoutFunc               func(ctx context.Context) error
	GetServerSessionFunc     func(ctx context.Context) (*domain.Session, error)
	TerminateAllSessionsFunc func(ctx context.Context) error
	RequestOTPFunc           func(ctx context.Context, identifier string) (*domain.AuthResponse, error)
	VerifyOTPFunc            func(ctx context.Context, identifier, code string) (*domain.AuthResponse, error)
	CheckOTPStatusFunc       func(ctx context.Context, email string) (*domain.OTPStatus, error)
	InvalidateOTPFunc        func(ctx context.Context, email string) (*domain.AuthResponse, error)
	RequestMagicLinkFunc     func(ctx context.Context, email string) (*domain.AuthResponse, error)
	VerifyMagicLinkFunc      func(ctx context.Context, token string) (*domain.AuthResponse, error)
	SocialLoginFunc          func(ctx context.Context, provider, accessToken string) (*domain.AuthResponse, error)
	GoogleLoginFunc          func(ctx context.Context, idToken string) (*domain.AuthResponse, error)
	FacebookLoginFunc        func(ctx context.Context, accessToken string) (*domain.AuthResponse, error)
	AppleLoginFunc           func(ctx context.Context, idToken string) (*domain.AuthResponse, error)
	ForgotPasswordFunc       func(ctx context.Context, email string) (*domain.AuthResponse, error)
	ResetPasswordFunc        func(ctx context.Context, token, password string) (*domain.AuthResponse, error)
	ChangePasswordFunc       func(ctx context.Context, currentPassword, newPassword string) (*domain.AuthResponse, error)
	VerifyEmailFunc          func(ctx context.Context, token string) (*domain.AuthResponse, error)
}

// NewMockIdentityAPI creates a mock with default behaviors
func NewMockIdentityAPI() *MockIdentityAPI {
	return &MockIdentityAPI{}
}

func defaultUser() *domain.User {
	return &domain.User{
		ID:        "user_1",
		Email:     "jo.shah@example.com",
		FirstName: "Jo",
		LastName:  "Shah",
		Role:      domain.RolePatient,
	}
}

// Login authenticates with email and password
func (m *MockIdentityAPI) Login(ctx context.Context, email, password string, rememberMe bool) (*domain.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, rememberMe)
	}
	user := defaultUser()
	user.Email = email
	return &domain.AuthResponse{User: user, Token: "mock_token"}, nil
}

// Register creates an account
func (m *MockIdentityAPI) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return &domain.AuthResponse{Message: "Registration successful. Please check your email."}, nil
}

// RegisterWithClinic creates an account under a clinic tenant
func (m *MockIdentityAPI) RegisterWithClinic(ctx context.Context, req domain.ClinicRegisterRequest) (*domain.AuthResponse, error) {
	if m.RegisterWithClinicFunc != nil {
		return m.RegisterWithClinicFunc(ctx, req)
	}
	return &domain.AuthResponse{Message: "Registration successful."}, nil
}

// Logout ends the current session
func (m *MockIdentityAPI) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

// GetServerSession fetches the current session
func (m *MockIdentityAPI) GetServerSession(ctx context.Context) (*domain.Session, error) {
	if m.GetServerSessionFunc != nil {
		return m.GetServerSessionFunc(ctx)
	}
	return &domain.Session{User: *defaultUser()}, nil
}

// TerminateAllSessions revokes every session
func (m *MockIdentityAPI) TerminateAllSessions(ctx context.Context) error {
	if m.TerminateAllSessionsFunc != nil {
		return m.TerminateAllSessionsFunc(ctx)
	}
	return nil
}

// RequestOTP sends a one-time password
func (m *MockIdentityAPI) RequestOTP(ctx context.Context, identifier string) (*domain.AuthResponse, error) {
	if m.RequestOTPFunc != nil {
		return m.RequestOTPFunc(ctx, identifier)
	}
	return &domain.AuthResponse{Message: "OTP sent."}, nil
}

// VerifyOTP exchanges a code for a session
func (m *MockIdentityAPI) VerifyOTP(ctx context.Context, identifier, code string) (*domain.AuthResponse, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, identifier, code)
	}
	return &domain.AuthResponse{User: defaultUser(), Token: "mock_token"}, nil
}

// CheckOTPStatus reports whether an active code exists
func (m *MockIdentityAPI) CheckOTPStatus(ctx context.Context, email string) (*domain.OTPStatus, error) {
	if m.CheckOTPStatusFunc != nil {
		return m.CheckOTPStatusFunc(ctx, email)
	}
	return &domain.OTPStatus{Active: false}, nil
}

// InvalidateOTP revokes any outstanding code
func (m *MockIdentityAPI) InvalidateOTP(ctx context.Context, email string) (*domain.AuthResponse, error) {
	if m.InvalidateOTPFunc != nil {
		return m.InvalidateOTPFunc(ctx, email)
	}
	return &domain.AuthResponse{Message: "OTP invalidated."}, nil
}

// RequestMagicLink emails a sign-in link
func (m *MockIdentityAPI) RequestMagicLink(ctx context.Context, email string) (*domain.AuthResponse, error) {
	if m.RequestMagicLinkFunc != nil {
		return m.RequestMagicLinkFunc(ctx, email)
	}
	return &domain.AuthResponse{Message: "Magic link sent."}, nil
}

// VerifyMagicLink exchanges an emailed token for a session
func (m *MockIdentityAPI) VerifyMagicLink(ctx context.Context, token string) (*domain.AuthResponse, error) {
	if m.VerifyMagicLinkFunc != nil {
		return m.VerifyMagicLinkFunc(ctx, token)
	}
	return &domain.AuthResponse{User: defaultUser(), Token: "mock_token"}, nil
}

// SocialLogin signs in through a provider token exchange
func (m *MockIdentityAPI) SocialLogin(ctx context.Context, provider, accessToken string) (*domain.AuthResponse, error) {
	if m.SocialLoginFunc != nil {
		return m.SocialLoginFunc(ctx, provider, accessToken)
	}
	return &domain.AuthResponse{User: defaultUser(), Token: "mock_token"}, nil
}

// GoogleLogin signs in with a Google ID token
func (m *MockIdentityAPI) GoogleLogin(ctx context.Context, idToken string) (*domain.AuthResponse, error) {
	if m.GoogleLoginFunc != nil {
		return m.GoogleLoginFunc(ctx, idToken)
	}
	return m.SocialLogin(ctx, "google", idToken)
}

// FacebookLogin signs in with a Facebook access token
func (m *MockIdentityAPI) FacebookLogin(ctx context.Context, accessToken string) (*domain.AuthResponse, error) {
	if m.FacebookLoginFunc != nil {
		return m.FacebookLoginFunc(ctx, accessToken)
	}
	return m.SocialLogin(ctx, "facebook", accessToken)
}

// AppleLogin mirrors the real binding: not implemented unless overridden
func (m *MockIdentityAPI) AppleLogin(ctx context.Context, idToken string) (*domain.AuthResponse, error) {
	if m.AppleLoginFunc != nil {
		return m.AppleLoginFunc(ctx, idToken)
	}
	return nil, &domain.APIError{Kind: domain.KindNotImplemented, Message: "Apple sign-in is not available yet"}
}

// ForgotPassword starts a reset flow
func (m *MockIdentityAPI) ForgotPassword(ctx context.Context, email string) (*domain.AuthResponse, error) {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return &domain.AuthResponse{Message: "Reset instructions sent."}, nil
}

// ResetPassword completes a reset flow
func (m *MockIdentityAPI) ResetPassword(ctx context.Context, token, password string) (*domain.AuthResponse, error) {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, token, password)
	}
	return &domain.AuthResponse{Message: "Password reset."}, nil
}

// ChangePassword rotates the current password
func (m *MockIdentityAPI) ChangePassword(ctx context.Context, currentPassword, newPassword string) (*domain.AuthResponse, error) {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, currentPassword, newPassword)
	}
	return &domain.AuthResponse{Message: "Password changed."}, nil
}

// VerifyEmail confirms an email address
func (m *MockIdentityAPI) VerifyEmail(ctx context.Context, token string) (*domain.AuthResponse, error) {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, token)
	}
	return &domain.AuthResponse{Message: "Email verified."}, nil
}

var _ domain.IdentityAPI = (*MockIdentityAPI)(nil)
