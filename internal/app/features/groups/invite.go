// internal/app/features/groups/invite.go
package groups

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/pindrop/internal/app/policy/grouppolicy"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
)

type inviteResponse struct {
	GroupID     primitive.ObjectID `json:"group_id"`
	InviteToken string             `json:"invite_token"`
}

// requireMember returns the caller if they are a member of the group, or an
// error otherwise. Any member may read or rotate the invite token; admin
// standing is not needed for invites.
func (h *Handler) requireMember(r *http.Request, groupID primitive.ObjectID) (auth.Identity, error) {
	caller, ok := auth.CurrentIdentity(r.Context())
	if !ok {
		return auth.Identity{}, apperr.E(apperr.Unauthenticated, "authentication required")
	}
	member, err := grouppolicy.IsMember(r.Context(), h.DB, groupID, caller.UserID)
	if err != nil {
		return auth.Identity{}, err
	}
	if !member {
		return auth.Identity{}, apperr.E(apperr.Forbidden, "group membership required")
	}
	return caller, nil
}

// HandleGetInvite handles GET /groups/{id}/invite.
func (h *Handler) HandleGetInvite(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	group, err := h.loadGroup(r, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if _, err := h.requireMember(r, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, inviteResponse{GroupID: id, InviteToken: group.InviteToken})
}

// HandleRegenerateInvite handles POST /groups/{id}/invite. The previous
// token stops working immediately.
func (h *Handler) HandleRegenerateInvite(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if _, err := h.loadGroup(r, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if _, err := h.requireMember(r, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "regenerate invite token")
	defer cancel()

	token, err := h.Groups.RegenerateInviteToken(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, inviteResponse{GroupID: id, InviteToken: token})
}
