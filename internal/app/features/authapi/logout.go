// internal/app/features/authapi/logout.go
package authapi

import (
	"net/http"
	"strings"

	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
)

// HandleLogout handles POST /auth/logout. The presented token's ID is
// recorded in the revocation collection, where it outlives the process and
// is pruned by TTL once the token itself expires. The claims are parsed
// without the revocation check so logging out twice (say, from two tabs)
// succeeds both times.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "missing bearer token"))
		return
	}

	claims, err := h.Tokens.ParseClaims(parts[1])
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "logout")
	defer cancel()

	if err := h.Revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusNoContent, nil)
}
