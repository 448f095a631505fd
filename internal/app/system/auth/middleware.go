package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
)

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Require rejects requests without a valid bearer token. On success the
// caller identity is attached to the request context.
func (m *Manager) Require(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				httpjson.WriteError(w, log, apperr.E(apperr.Unauthenticated, "missing bearer token"))
				return
			}
			id, _, err := m.Verify(r.Context(), raw)
			if err != nil {
				httpjson.WriteError(w, log, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// Optional attaches the caller identity when a valid bearer token is
// present and otherwise lets the request through anonymously. Requests
// carrying an invalid token are still rejected.
func (m *Manager) Optional(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			id, _, err := m.Verify(r.Context(), raw)
			if err != nil {
				httpjson.WriteError(w, log, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAdmin rejects callers without the application admin role.
// It must run after Require.
func RequireAdmin(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := CurrentIdentity(r.Context())
			if !ok {
				httpjson.WriteError(w, log, apperr.E(apperr.Unauthenticated, "authentication required"))
				return
			}
			if !id.IsAdmin() {
				httpjson.WriteError(w, log, apperr.E(apperr.Forbidden, "admin role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
