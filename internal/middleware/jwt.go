package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/utils"
)

type ctxKey string

const sessionKey ctxKey = "session"

// WithSession stores the authenticated caller in ctx.
func WithSession(ctx context.Context, s models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFrom returns the caller stored by Auth.
func SessionFrom(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(sessionKey).(models.Session)
	return s, ok
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Auth rejects requests without a valid access token and pushes the verified
// session into the request context. Role claims supplied any other way are
// ignored.
func Auth(issuer *utils.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				utils.JSONError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := issuer.Verify(token)
			if err != nil {
				utils.JSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), claims.Session())))
		})
	}
}

// OptionalAuth attaches a session when a valid token is present and passes
// the request through untouched otherwise.
func OptionalAuth(issuer *utils.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := BearerToken(r); token != "" {
				if claims, err := issuer.Verify(token); err == nil {
					r = r.WithContext(WithSession(r.Context(), claims.Session()))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole lets only sessions with the given role through.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := SessionFrom(r.Context())
			if !ok {
				utils.JSONError(w, http.StatusUnauthorized, "not authorized")
				return
			}
			if s.Role != role {
				utils.JSONError(w, http.StatusForbidden, "forbidden: "+string(role)+" role required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
