package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"avrental-backend/internal/config"
	"avrental-backend/internal/logger"
	"avrental-backend/internal/security"

	"github.com/gorilla/mux"
)

type contextKey string

const adminUsernameKey contextKey = "admin-username"

// AdminUsernameFromContext returns the admin that authorized the request
func AdminUsernameFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(adminUsernameKey).(string)
	return v, ok
}

type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

// Handler authenticates requests according to the route's security level
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		level := config.GetSecurityLevel(route)

		// Public endpoint - skip auth
		if level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := extractToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authorization token is not provided")
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, security.ErrWrongTokenType) {
				status = http.StatusForbidden
			}
			logger.Warn("Rejected report API request", "route", route, "error", err)
			writeError(w, status, "invalid token: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), adminUsernameKey, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) (string, bool) {
	token := r.Header.Get("Authorization")
	if token == "" {
		return "", false
	}
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	return token, token != ""
}
