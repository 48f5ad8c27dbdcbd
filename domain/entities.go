package domain

import (
	"strings"
	"time"
)

// Role identifies the account type a user holds on the platform
type Role string

const (
	RoleSuperAdmin   Role = "SUPER_ADMIN"
	RoleClinicAdmin  Role = "CLINIC_ADMIN"
	RoleDoctor       Role = "DOCTOR"
	RoleReceptionist Role = "RECEPTIONIST"
	RolePatient      Role = "PATIENT"
)

// Roles lists every role the platform knows about
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleClinicAdmin, RoleDoctor, RoleReceptionist, RolePatient}
}

// Valid reports whether r belongs to the closed role set
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleClinicAdmin, RoleDoctor, RoleReceptionist, RolePatient:
		return true
	}
	return false
}

// Gender values accepted by the registration form
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Valid reports whether g belongs to the accepted gender set
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// User is the authenticated user snapshot returned by the identity backend
type User struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Role            Role   `json:"role"`
	Phone           string `json:"phone"`
	DateOfBirth     string `json:"dateOfBirth"`
	Gender          Gender `json:"gender"`
	Address         string `json:"address"`
	ProfileComplete bool   `json:"profileComplete"`
}

// Normalize fills derivable fields so cached users always carry a display name
func (u *User) Normalize() {
	if u.Name == "" {
		u.Name = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
}

// DisplayName returns the friendliest name available for notifications
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Session is the client's cached view of the currently authenticated user
type Session struct {
	User      User      `json:"user"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the cached session has outlived its token
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(time.Now())
}

// AuthResponse is the result of a mutating identity action
type AuthResponse struct {
	User        *User  `json:"user,omitempty"`
	Token       string `json:"token,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
	Message     string `json:"message,omitempty"`
}

// OTPStatus reports whether an active one-time password exists for an account
type OTPStatus struct {
	Active  bool   `json:"active"`
	Message string `json:"message,omitempty"`
}

// RegisterRequest is the normalized registration payload sent to the backend
type RegisterRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	Role        Role   `json:"role"`
	Gender      Gender `json:"gender"`
	Age         int    `json:"age"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Address     string `json:"address,omitempty"`
}

// ClinicRegisterRequest registers a patient under a specific clinic tenant
type ClinicRegisterRequest struct {
	RegisterRequest
	ClinicID string `json:"clinicId"`
	AppName  string `json:"appName,omitempty"`
}

// TokenClaims are the claims this layer reads off an access token.
// The token is never validated here; signature checks belong to the backend.
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Role      Role   `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
