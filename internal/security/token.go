package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type for this endpoint")
)

type TokenType string

const (
	TokenTypeAdminSession TokenType = "admin_session"
)

// SessionClaims defines the claims carried by an admin session token
type SessionClaims struct {
	Username string    `json:"username"`
	CPF      string    `json:"cpf,omitempty"`
	Type     TokenType `json:"type"`
	Roles    []string  `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateAdminToken(username, cpf string) (string, error)
	ValidateToken(tokenString string) (*SessionClaims, error)
}

type tokenManager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenManager creates an HS256 token manager; expiry <= 0 falls back to one hour
func NewTokenManager(secret string, expiry time.Duration) TokenManager {
	return newTokenManager(secret, expiry, time.Now)
}

func newTokenManager(secret string, expiry time.Duration, now func() time.Time) *tokenManager {
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &tokenManager{
		secret: []byte(secret),
		expiry: expiry,
		now:    now,
	}
}

func (m *tokenManager) GenerateAdminToken(username, cpf string) (string, error) {
	now := m.now()
	claims := SessionClaims{
		Username: username,
		CPF:      cpf,
		Type:     TokenTypeAdminSession,
		Roles:    []string{"ADMIN"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "avrental",
			Audience:  jwt.ClaimStrings{"report-api"},
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithAudience("report-api"))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != TokenTypeAdminSession {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
