package middleware

import (
	"context"
	"net/http"
	"strings"

	"diario-server/pkg/jwt"
	"diario-server/pkg/response"
)

type contextKey string

const subjectKey contextKey = "subject"

// AuthMiddleware gates a subrouter behind a bearer token issued at login.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwt.ValidateToken(parts[1], jwtSecret)
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubject returns the authenticated principal, or "" outside the gate.
func GetSubject(r *http.Request) string {
	subject, ok := r.Context().Value(subjectKey).(string)
	if !ok {
		return ""
	}
	return subject
}
