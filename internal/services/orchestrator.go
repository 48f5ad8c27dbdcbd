// Package services holds the session/auth orchestrator: one operation per
// authentication flow, each wrapping a remote action with cache, redirect,
// and notification side effects.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/aadeshbhujbal/healthcare-auth/domain"
	"github.com/aadeshbhujbal/healthcare-auth/internal/infrastructure/token"
	"github.com/aadeshbhujbal/healthcare-auth/internal/redirect"
)

// Orchestrator drives every authentication flow. It is the single writer of
// the session store; any failure crossing an operation boundary is turned
// into a notification before it is returned, so callers may ignore errors
// without losing the outcome.
type Orchestrator struct {
	api        domain.IdentityAPI
	store      domain.SessionStore
	navigator  domain.Navigator
	notifier   domain.Notifier
	resolver   *redirect.Resolver
	inspector  domain.TokenInspector
	sessionTTL time.Duration

	registeredLoginPath string
}

// NewOrchestrator wires an orchestrator. inspector may be nil when the
// backend issues opaque tokens; sessions then expire after sessionTTL.
func NewOrchestrator(
	api domain.IdentityAPI,
	store domain.SessionStore,
	navigator domain.Navigator,
	notifier domain.Notifier,
	resolver *redirect.Resolver,
	inspector domain.TokenInspector,
	sessionTTL time.Duration,
	registeredLoginPath string,
) *Orchestrator {
	return &Orchestrator{
		api:                 api,
		store:               store,
		navigator:           navigator,
		notifier:            notifier,
		resolver:            resolver,
		inspector:           inspector,
		sessionTTL:          sessionTTL,
		registeredLoginPath: registeredLoginPath,
	}
}

// fail is the uniform error boundary: every remote failure becomes a
// user-visible notification before the caller sees it.
func (o *Orchestrator) fail(err error) error {
	o.notifier.Error(domain.ErrorMessage(err))
	return err
}

// buildSession turns an auth response into a cacheable session snapshot
func (o *Orchestrator) buildSession(user domain.User, accessToken string) *domain.Session {
	user.Normalize()

	expiresAt := time.Now().Add(o.sessionTTL)
	if accessToken != "" && o.inspector != nil {
		if claims, err := o.inspector.Inspect(accessToken); err == nil {
			if exp := token.Expiry(claims); !exp.IsZero() {
				expiresAt = exp
			}
		}
	}

	return &domain.Session{User: user, Token: accessToken, ExpiresAt: expiresAt}
}

// GetSession returns the cached session, falling through to the backend on
// a miss and writing the result back. Absence of a session is not an error.
func (o *Orchestrator) GetSession(ctx context.Context) (*domain.Session, error) {
	if cached, err := o.store.Session(ctx); err == nil {
		return cached, nil
	} else if !errors.Is(err, domain.ErrSessionAbsent) {
		return nil, err
	}

	sess, err := o.api.GetServerSession(ctx)
	if err != nil {
		if domain.IsSessionInvalid(err) {
			return nil, nil
		}
		return nil, err
	}

	sess.User.Normalize()
	if sess.ExpiresAt.IsZero() {
		sess.ExpiresAt = time.Now().Add(o.sessionTTL)
	}
	if err := o.store.SetSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Login performs the password login flow
func (o *Orchestrator) Login(ctx context.Context, email, password string, rememberMe bool) error {
	resp, err := o.api.Login(ctx, email, password, rememberMe)
	if err != nil {
		return o.fail(err)
	}
	if resp.User == nil {
		return o.fail(domain.ErrUserMissing)
	}

	sess := o.buildSession(*resp.User, resp.Token)
	if err := o.store.SetSession(ctx, sess); err != nil {
		return o.fail(err)
	}

	o.navigator.NavigateTo(o.resolver.Resolve(&sess.User, resp.RedirectURL))
	o.notifier.Success("Welcome back, " + sess.User.DisplayName() + "!")
	return nil
}

// Register creates an account. Registration does not log the user in; it
// sends them to the login page to verify their email first.
func (o *Orchestrator) Register(ctx context.Context, req domain.RegisterRequest) error {
	resp, err := o.api.Register(ctx, req)
	if err != nil {
		return o.fail(err)
	}

	o.navigator.NavigateTo(o.resolver.LoginPath())
	o.notifier.Success(messageOr(resp, "Registration successful. Please check your email to verify your account."))
	return nil
}

// RegisterWithClinic registers a patient under a clinic tenant. The
// navigation target is the returned user's dashboard, then the returned
// redirect, then the registered-login page.
func (o *Orchestrator) RegisterWithClinic(ctx context.Context, req domain.ClinicRegisterRequest) error {
	resp, err := o.api.RegisterWithClinic(ctx, req)
	if err != nil {
		return o.fail(err)
	}

	if err := o.store.Invalidate(ctx); err != nil {
		return o.fail(err)
	}

	switch {
	case resp.User != nil && resp.User.Role.Valid():
		o.navigator.NavigateTo(o.resolver.Dashboard(resp.User.Role))
	case resp.RedirectURL != "":
		o.navigator.NavigateTo(o.resolver.Resolve(resp.User, resp.RedirectURL))
	default:
		o.navigator.NavigateTo(o.registeredLoginPath)
	}

	o.notifier.Success(messageOr(resp, "Registration successful."))
	return nil
}

// Logout ends the current session. A backend report that the session is
// already gone counts as success. A genuine backend failure still clears
// the local cache and navigates away; only the notification differs.
func (o *Orchestrator) Logout(ctx context.Context) error {
	err := o.api.Logout(ctx)

	clearErr := o.store.Clear(ctx)
	o.navigator.NavigateTo(o.resolver.LoginPath())

	switch {
	case err == nil || domain.IsSessionInvalid(err):
		o.notifier.Success("You have been logged out.")
	default:
		o.notifier.Info("You have been logged out on this device, but the server could not complete the logout.")
	}
	return clearErr
}

// TerminateAllSessions revokes every session for the account. Client state
// is cleared even when the server call fails.
func (o *Orchestrator) TerminateAllSessions(ctx context.Context) error {
	err := o.api.TerminateAllSessions(ctx)

	clearErr := o.store.Clear(ctx)
	o.navigator.NavigateTo(o.resolver.LoginPath())

	switch {
	case err == nil || domain.IsSessionInvalid(err):
		o.notifier.Success("All sessions have been terminated.")
	default:
		o.notifier.Info("Sessions were cleared on this device, but the server could not terminate them everywhere.")
	}
	return clearErr
}

// completeSignIn finishes any flow that establishes a session from an
// AuthResponse: refresh the cache, resolve the redirect, notify.
func (o *Orchestrator) completeSignIn(ctx context.Context, resp *domain.AuthResponse, defaultMessage string) error {
	if resp.User != nil {
		sess := o.buildSession(*resp.User, resp.Token)
		if err := o.store.SetSession(ctx, sess); err != nil {
			return o.fail(err)
		}
	} else if err := o.store.Invalidate(ctx); err != nil {
		return o.fail(err)
	}

	o.navigator.NavigateTo(o.resolver.Resolve(resp.User, resp.RedirectURL))
	o.notifier.Success(messageOr(resp, defaultMessage))
	return nil
}

// VerifyOTP exchanges a one-time password for a session
func (o *Orchestrator) VerifyOTP(ctx context.Context, identifier, code string) error {
	resp, err := o.api.VerifyOTP(ctx, identifier, code)
	if err != nil {
		return o.fail(err)
	}
	return o.completeSignIn(ctx, resp, "Signed in successfully.")
}

// VerifyMagicLink exchanges an emailed token for a session
func (o *Orchestrator) VerifyMagicLink(ctx context.Context, linkToken string) error {
	resp, err := o.api.VerifyMagicLink(ctx, linkToken)
	if err != nil {
		return o.fail(err)
	}
	return o.completeSignIn(ctx, resp, "Signed in successfully.")
}

// SocialLogin signs in through a social provider token exchange
func (o *Orchestrator) SocialLogin(ctx context.Context, provider, accessToken string) error {
	resp, err := o.api.SocialLogin(ctx, provider, accessToken)
	if err != nil {
		return o.fail(err)
	}
	return o.completeSignIn(ctx, resp, "Signed in successfully.")
}

// GoogleLogin signs in with a Google ID token
func (o *Orchestrator) GoogleLogin(ctx context.Context, idToken string) error {
	resp, err := o.api.GoogleLogin(ctx, idToken)
	if err != nil {
		return o.fail(err)
	}
	return o.completeSignIn(ctx, resp, "Signed in with Google.")
}

// FacebookLogin signs in with a Facebook access token
func (o *Orchestrator) FacebookLogin(ctx context.Context, accessToken string) error {
	resp, err := o.api.FacebookLogin(ctx, accessToken)
	if err != nil {
		return o.fail(err)
	}
	return o.completeSignIn(ctx, resp, "Signed in with Facebook.")
}

// AppleLogin is not offered by the backend yet; the caller gets the
// explicit not-implemented error after the user is told.
func (o *Orchestrator) AppleLogin(ctx context.Context, idToken string) error {
	resp, err := o.api.AppleLogin(ctx, idToken)
	if err != nil {
		return o.fail(err)
	}
	return o.completeSignIn(ctx, resp, "Signed in with Apple.")
}

// RequestOTP asks the backend to send a one-time password
func (o *Orchestrator) RequestOTP(ctx context.Context, identifier string) error {
	resp, err := o.api.RequestOTP(ctx, identifier)
	if err != nil {
		return o.fail(err)
	}
	o.notifier.Success(messageOr(resp, "A one-time password has been sent."))
	return nil
}

// RequestMagicLink asks the backend to email a sign-in link
func (o *Orchestrator) RequestMagicLink(ctx context.Context, email string) error {
	resp, err := o.api.RequestMagicLink(ctx, email)
	if err != nil {
		return o.fail(err)
	}
	o.notifier.Success(messageOr(resp, "A sign-in link has been sent to your email."))
	return nil
}

// ForgotPassword starts the password reset flow
func (o *Orchestrator) ForgotPassword(ctx context.Context, email string) error {
	resp, err := o.api.ForgotPassword(ctx, email)
	if err != nil {
		return o.fail(err)
	}
	o.notifier.Success(messageOr(resp, "Password reset instructions have been sent."))
	return nil
}

// CheckOTPStatus reports whether an active one-time password exists
func (o *Orchestrator) CheckOTPStatus(ctx context.Context, email string) (bool, error) {
	status, err := o.api.CheckOTPStatus(ctx, email)
	if err != nil {
		return false, o.fail(err)
	}
	return status.Active, nil
}

// InvalidateOTP revokes any outstanding one-time password
func (o *Orchestrator) InvalidateOTP(ctx context.Context, email string) error {
	resp, err := o.api.InvalidateOTP(ctx, email)
	if err != nil {
		return o.fail(err)
	}
	o.notifier.Success(messageOr(resp, "One-time password invalidated."))
	return nil
}

// VerifyEmail confirms an email address, then sends the user to sign in
// against their refreshed account state
func (o *Orchestrator) VerifyEmail(ctx context.Context, verifyToken string) error {
	resp, err := o.api.VerifyEmail(ctx, verifyToken)
	if err != nil {
		return o.fail(err)
	}

	if err := o.store.Invalidate(ctx); err != nil {
		return o.fail(err)
	}
	o.navigator.NavigateTo(o.resolver.LoginPath())
	o.notifier.Success(messageOr(resp, "Email verified. Please sign in."))
	return nil
}

// ResetPassword completes a password reset with an emailed token
func (o *Orchestrator) ResetPassword(ctx context.Context, resetToken, password string) error {
	resp, err := o.api.ResetPassword(ctx, resetToken, password)
	if err != nil {
		return o.fail(err)
	}

	o.navigator.NavigateTo(o.resolver.LoginPath())
	o.notifier.Success(messageOr(resp, "Password reset. Please sign in with your new password."))
	return nil
}

// ChangePassword rotates the password of the signed-in user. The cached
// session is invalidated so the next read refetches fresh account state.
func (o *Orchestrator) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	resp, err := o.api.ChangePassword(ctx, currentPassword, newPassword)
	if err != nil {
		return o.fail(err)
	}

	if err := o.store.Invalidate(ctx); err != nil {
		return o.fail(err)
	}
	o.notifier.Success(messageOr(resp, "Password changed successfully."))
	return nil
}

func messageOr(resp *domain.AuthResponse, fallback string) string {
	if resp != nil && resp.Message != "" {
		return resp.Message
	}
	return fallback
}
