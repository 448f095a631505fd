// internal/app/features/groups/update.go
package groups

import (
	"net/http"

	"github.com/dalemusser/pindrop/internal/app/policy/grouppolicy"
	groupstore "github.com/dalemusser/pindrop/internal/app/store/groups"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/sanitize"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
)

type updateGroupRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// HandleUpdate handles PATCH /groups/{id}. Group admins and app admins only.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req updateGroupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update group")
	defer cancel()

	if _, err := h.loadGroup(r, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	allowed, err := grouppolicy.CanManage(ctx, h.DB, &caller, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if !allowed {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Forbidden, "group admin access required"))
		return
	}

	upd := groupstore.Update{}
	if req.Name != nil {
		name := sanitize.Plain(*req.Name)
		if name == "" {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "name cannot be empty"))
			return
		}
		upd.Name = &name
	}
	if req.Description != nil {
		desc := sanitize.Rich(*req.Description)
		upd.Description = &desc
	}

	updated, err := h.Groups.Apply(ctx, id, upd)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, updated)
}
