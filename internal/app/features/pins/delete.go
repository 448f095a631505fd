// internal/app/features/pins/delete.go
package pins

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/policy/pinpolicy"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

// HandleDelete handles DELETE /pins/{id}. Deleting a pin also removes its
// comments and every reaction on the pin or those comments.
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

	pin, err := h.loadPin(r, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if !pinpolicy.CanDelete(pin, &caller) {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Forbidden, "not authorized to delete this pin"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "delete pin")
	defer cancel()

	commentIDs, err := h.Comments.IDsByPin(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if err := h.Reactions.DeleteByTargets(ctx, models.TargetComment, commentIDs); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if err := h.Reactions.DeleteByTarget(ctx, models.TargetPin, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if err := h.Comments.DeleteByPin(ctx, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if err := h.Pins.Delete(ctx, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("pin deleted",
		zap.String("pin_id", id.Hex()),
		zap.String("deleted_by", caller.UserID.Hex()))
	httpjson.Write(w, http.StatusNoContent, nil)
}
