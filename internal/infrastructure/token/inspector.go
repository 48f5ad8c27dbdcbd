// Package token reads claims off access tokens the backend hands out.
// Signature verification stays server-side; this layer only needs the
// expiry and role claims to size its cache.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aadeshbhujbal/healthcare-auth/domain"
)

// Inspector implements domain.TokenInspector over JWT access tokens
type Inspector struct {
	parser *jwt.Parser
}

// NewInspector creates a claims inspector
func NewInspector() *Inspector {
	return &Inspector{parser: jwt.NewParser()}
}

// Inspect implements domain.TokenInspector
func (i *Inspector) Inspect(tokenString string) (*domain.TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	out := &domain.TokenClaims{}
	if userID, ok := claims["user_id"].(string); ok {
		out.UserID = userID
	} else if sub, ok := claims["sub"].(string); ok {
		out.UserID = sub
	}
	if role, ok := claims["role"].(string); ok {
		out.Role = domain.Role(role)
	}
	if sessionID, ok := claims["session_id"].(string); ok {
		out.SessionID = sessionID
	}
	if iat, ok := claims["iat"].(float64); ok {
		out.IssuedAt = int64(iat)
	}
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = int64(exp)
	}

	return out, nil
}

// Expiry converts the exp claim to a time, zero when the token has none
func Expiry(claims *domain.TokenClaims) time.Time {
	if claims == nil || claims.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(claims.ExpiresAt, 0)
}
