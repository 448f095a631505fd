// internal/app/features/groups/get.go
package groups

import (
	"net/http"

	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

// HandleGet handles GET /groups/{id}. The invite token is never part of the
// group body; members fetch it through the invite endpoint.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
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

	httpjson.Write(w, http.StatusOK, group)
}

// HandleList handles GET /groups: the caller's groups. App admins get the
// full directory for moderation.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentIdentity(r.Context())
	if !ok {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "authentication required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list groups")
	defer cancel()

	if caller.IsAdmin() {
		groups, err := h.Groups.List(ctx)
		if err != nil {
			httpjson.WriteError(w, h.Log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, groups)
		return
	}

	ids, err := h.Members.GroupIDsForUser(ctx, caller.UserID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	groups, err := h.Groups.GetByIDs(ctx, ids)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if groups == nil {
		groups = []models.Group{}
	}

	httpjson.Write(w, http.StatusOK, groups)
}
