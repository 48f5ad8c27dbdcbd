package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aadeshbhujbal/healthcare-auth/domain"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestInspector_Inspect(t *testing.T) {
	now := time.Now()
	tokenString := signedToken(t, jwt.MapClaims{
		"user_id":    "u42",
		"role":       "DOCTOR",
		"session_id": "sess_1",
		"iat":        now.Unix(),
		"exp":        now.Add(15 * time.Minute).Unix(),
	})

	claims, err := NewInspector().Inspect(tokenString)
	require.NoError(t, err)

	assert.Equal(t, "u42", claims.UserID)
	assert.Equal(t, domain.RoleDoctor, claims.Role)
	assert.Equal(t, "sess_1", claims.SessionID)
	assert.Equal(t, now.Add(15*time.Minute).Unix(), claims.ExpiresAt)
}

func TestInspector_SubFallback(t *testing.T) {
	tokenString := signedToken(t, jwt.MapClaims{"sub": "u7"})

	claims, err := NewInspector().Inspect(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "u7", claims.UserID)
}

func TestInspector_RejectsOpaqueToken(t *testing.T) {
	_, err := NewInspector().Inspect("not-a-jwt")
	assert.Error(t, err)
}

func TestExpiry(t *testing.T) {
	assert.True(t, Expiry(nil).IsZero())
	assert.True(t, Expiry(&domain.TokenClaims{}).IsZero())

	at := time.Now().Add(time.Hour).Unix()
	got := Expiry(&domain.TokenClaims{ExpiresAt: at})
	assert.Equal(t, at, got.Unix())
}
