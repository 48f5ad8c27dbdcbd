// Package api is the HTTP implementation of the remote authentication
// actions. It speaks the identity backend's JSON envelope and turns
// transport outcomes into tagged domain errors; nothing above this layer
// looks at status codes or error strings.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/aadeshbhujbal/healthcare-auth/domain"
)

// Client calls the identity backend over HTTP. Session affinity rides on
// the cookie jar, the way a browser would carry it; SetToken adds a bearer
// header for token-based deployments.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates an identity API client
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}, nil
}

// SetToken attaches a bearer token to subsequent requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// envelope is the backend's response wrapper
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// sessionPayload is the wire shape of the current-session endpoint
type sessionPayload struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt time.Time    `json:"expiresAt,omitempty"`
}

// do performs one request and decodes the data envelope into out.
// sessionScoped marks endpoints where a 401 means "session already gone"
// rather than "bad credentials".
func (c *Client) do(ctx context.Context, method, path string, body, out any, sessionScoped bool) error {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.APIError{
			Kind:    domain.KindNetwork,
			Message: "cannot reach the authentication service",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	var env envelope
	// A body that fails to decode on an error status still maps to a tagged
	// error below, so the decode result only matters on success.
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode >= 400 {
		return c.statusError(resp.StatusCode, env.Error, sessionScoped)
	}
	if decodeErr != nil {
		return &domain.APIError{
			Kind:    domain.KindServer,
			Message: "malformed response from the authentication service",
			Err:     decodeErr,
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &domain.APIError{
				Kind:    domain.KindServer,
				Message: "malformed response from the authentication service",
				Err:     err,
			}
		}
	}
	return nil
}

func (c *Client) statusError(status int, message string, sessionScoped bool) error {
	if message == "" {
		message = http.StatusText(status)
	}

	switch {
	case status == http.StatusNotImplemented:
		return &domain.APIError{Kind: domain.KindNotImplemented, Message: message}
	case sessionScoped && (status == http.StatusUnauthorized || status == http.StatusNotFound):
		return &domain.APIError{Kind: domain.KindSessionInvalid, Message: message}
	default:
		return &domain.APIError{Kind: domain.KindServer, Message: message}
	}
}

// Login implements domain.IdentityAPI
func (c *Client) Login(ctx context.Context, email, password string, rememberMe bool) (*domain.AuthResponse, error) {
	payload := map[string]any{
		"email":      email,
		"password":   password,
		"rememberMe": rememberMe,
	}
	var out domain.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register implements domain.IdentityAPI
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterWithClinic implements domain.IdentityAPI
func (c *Client) RegisterWithClinic(ctx context.Context, req domain.ClinicRegisterRequest) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register/clinic", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout implements domain.IdentityAPI
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, true)
}

// GetServerSession implements domain.IdentityAPI
func (c *Client) GetServerSession(ctx context.Context) (*domain.Session, error) {
	var out sessionPayload
	if err := c.do(ctx, http.MethodGet, "/auth/session", nil, &out, true); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, &domain.APIError{Kind: domain.KindSessionInvalid, Message: "no active session"}
	}
	return &domain.Session{User: *out.User, Token: out.Token, ExpiresAt: out.ExpiresAt}, nil
}

// TerminateAllSessions implements domain.IdentityAPI
func (c *Client) TerminateAllSessions(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/sessions/terminate", nil, nil, true)
}

// RequestOTP implements domain.IdentityAPI
func (c *Client) RequestOTP(ctx context.Context, identifier string) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	payload := map[string]string{"identifier": identifier}
	if err := c.do(ctx, http.MethodPost, "/auth/otp/request", payload, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP implements domain.IdentityAPI
func (c *Client) VerifyOTP(ctx context.Context, identifier, code string) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	payload := map[string]string{"identifier": identifier, "code": code}
	if err := c.do(ctx, http.MethodPost, "/auth/otp/verify", payload, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckOTPStatus implements domain.IdentityAPI
func (c *Client) CheckOTPStatus(ctx context.Context, email string) (*domain.OTPStatus, error) {
	var out domain.OTPStatus
	path := "/auth/otp/status?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// InvalidateOTP implements domain.IdentityAPI
func (c *Client) InvalidateOTP(ctx context.Context, email string) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	payload := map[string]string{"email": email}
	if err := c.do(ctx, http.MethodPost, "/auth/otp/invalidate", payload, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestMagicLink implements domain.IdentityAPI
func (c *Client) RequestMagicLink(ctx context.Context, email string) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	payload := map[string]string{"email": email}
	if err := c.do(ctx, http.MethodPost, "/auth/magic-link/request", payload, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyMagicLink implements domain.IdentityAPI
func (c *Client) VerifyMagicLink(ctx context.Context, token string) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	payload := map[string]string{"token": token}
	if err := c.do(ctx, http.MethodPost, "/auth/magic-link/verify", payload, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// SocialLogin implements domain.IdentityAPI
func (c *Client) SocialLogin(ctx context.Context, provider, accessToken string) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	payload := map[string]string{"token": accessToken}
	path := "/auth/social/" + url.PathEscape(provider)
	if err := c.do(ctx, http.MethodPost, path, payload, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// GoogleLogin implements domain.IdentityAPI
func (c *Client) GoogleLogin(ctx context.Context, idToken string) (*domain.AuthResponse, error) {
	return c.SocialLogin(ctx, "google", idToken)
}

// FacebookLogin implements domain.IdentityAPI
func (c *Client) FacebookLogin(ctx context.Context, accessToken string) (*domain.AuthResponse, error) {
	return c.SocialLogin(ctx, "facebook", accessToken)
}

// AppleLogin implements domain.IdentityAPI. The backend does not offer the
// flow yet; callers get an explicit not-implemented error instead of a
// silently succeeding no-op.
func (c *Client) AppleLogin(ctx context.Context, idToken string) (*domain.AuthResponse, error) {
	return nil, &domain.APIError{
		Kind:    domain.KindNotImplemented,
		Message: "Apple sign-in is not available yet",
	}
}

// ForgotPassword implements domain.IdentityAPI
func (c *Client) ForgotPassword(ctx context.Context, email string) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	payload := map[string]string{"email": email}
	if err := c.do(ctx, http.MethodPost, "/auth/password/forgot", payload, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword implements domain.IdentityAPI
func (c *Client) ResetPassword(ctx context.Context, token, password string) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	payload := map[string]string{"token": token, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/password/reset", payload, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword implements domain.IdentityAPI
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	payload := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	if err := c.do(ctx, http.MethodPost, "/auth/password/change", payload, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyEmail implements domain.IdentityAPI
func (c *Client) VerifyEmail(ctx context.Context, token string) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	payload := map[string]string{"token": token}
	if err := c.do(ctx, http.MethodPost, "/auth/email/verify", payload, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

var _ domain.IdentityAPI = (*Client)(nil)
