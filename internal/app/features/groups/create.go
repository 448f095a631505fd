// internal/app/features/groups/create.go
package groups

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/sanitize"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

type createGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// HandleCreate handles POST /groups. The creator becomes the group's sole
// admin member.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentIdentity(r.Context())
	if !ok {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "authentication required"))
		return
	}

	var req createGroupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	name := sanitize.Plain(req.Name)
	if name == "" {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "name is required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create group")
	defer cancel()

	group, err := h.Groups.Create(ctx, models.Group{
		Name:        name,
		Description: sanitize.Rich(req.Description),
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if err := h.Members.Add(ctx, group.ID, caller.UserID, models.MembershipAdmin); err != nil {
		// The group exists but its creator could not be seated; undo.
		if delErr := h.Groups.Delete(ctx, group.ID); delErr != nil {
			h.Log.Error("orphaned group after failed creator membership",
				zap.String("group_id", group.ID.Hex()), zap.Error(delErr))
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, group)
}
