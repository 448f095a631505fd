// internal/app/features/groups/delete.go
package groups

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/policy/grouppolicy"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

// HandleDelete handles DELETE /groups/{id}. The group's pins are removed
// with it, along with their comments and reactions, then all memberships.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	if _, err := h.loadGroup(r, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "delete group")
	defer cancel()

	allowed, err := grouppolicy.CanManage(ctx, h.DB, &caller, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if !allowed {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Forbidden, "group admin access required"))
		return
	}

	pinIDs, err := h.Pins.IDsByGroup(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	for _, pinID := range pinIDs {
		commentIDs, err := h.Comments.IDsByPin(ctx, pinID)
		if err != nil {
			httpjson.WriteError(w, h.Log, err)
			return
		}
		if err := h.Reactions.DeleteByTargets(ctx, models.TargetComment, commentIDs); err != nil {
			httpjson.WriteError(w, h.Log, err)
			return
		}
	}
	if err := h.Reactions.DeleteByTargets(ctx, models.TargetPin, pinIDs); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if err := h.Comments.DeleteByPins(ctx, pinIDs); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if err := h.Pins.DeleteByIDs(ctx, pinIDs); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if err := h.Members.RemoveAllForGroup(ctx, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if err := h.Groups.Delete(ctx, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("group deleted",
		zap.String("group_id", id.Hex()),
		zap.Int("pins_removed", len(pinIDs)),
		zap.String("deleted_by", caller.UserID.Hex()))
	httpjson.Write(w, http.StatusNoContent, nil)
}
