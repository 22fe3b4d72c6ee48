package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-with-at-least-32-characters"

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, 30*time.Minute)

	token, err := m.GenerateAdminToken("admin", "00000000000")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "00000000000", claims.CPF)
	assert.Equal(t, TokenTypeAdminSession, claims.Type)
	assert.Equal(t, []string{"ADMIN"}, claims.Roles)
}

func TestTokenManager_Expired(t *testing.T) {
	issued := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	current := issued
	m := newTokenManager(testSecret, time.Minute, func() time.Time { return current })

	token, err := m.GenerateAdminToken("admin", "")
	require.NoError(t, err)

	current = issued.Add(2 * time.Minute)
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager(testSecret, time.Hour).GenerateAdminToken("admin", "")
	require.NoError(t, err)

	_, err = NewTokenManager("another-secret-with-at-least-32-characters", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongType(t *testing.T) {
	claims := SessionClaims{
		Username: "admin",
		Type:     "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Audience:  jwt.ClaimStrings{"report-api"},
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestTokenManager_Garbage(t *testing.T) {
	_, err := NewTokenManager(testSecret, time.Hour).ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
