// internal/app/features/groups/join.go
package groups

import (
	"crypto/subtle"
	"errors"
	"net/http"

	membershipstore "github.com/dalemusser/pindrop/internal/app/store/memberships"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

type joinRequest struct {
	InviteToken string `json:"invite_token"`
}

// HandleJoin handles POST /groups/{id}/join. Possession of the current
// invite token is what authorizes the join. Joining a group the caller
// already belongs to is a no-op success.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentIdentity(r.Context())
	if !ok {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "authentication required"))
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	var req joinRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if req.InviteToken == "" {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "invite_token is required"))
		return
	}

	group, err := h.loadGroup(r, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.InviteToken), []byte(group.InviteToken)) != 1 {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Forbidden, "invalid invite token"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "join group")
	defer cancel()

	err = h.Members.Add(ctx, id, caller.UserID, models.MembershipMember)
	if err != nil && !errors.Is(err, membershipstore.ErrDuplicateMembership) {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, group)
}
