// internal/app/features/reactions/unreact.go
package reactions

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
)

// HandleUnreact handles DELETE /reactions?target_type=...&target_id=...
// Only the caller's own reaction is removable; there is nothing to
// authorize beyond identity because the filter includes the caller.
func (h *Handler) HandleUnreact(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentIdentity(r.Context())
	if !ok {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "authentication required"))
		return
	}

	q := r.URL.Query()
	tgt, err := parseTarget(q.Get("target_type"), q.Get("target_id"))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "remove reaction")
	defer cancel()

	if err := h.Reactions.Remove(ctx, caller.UserID, tgt.Type, tgt.ID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.NotFound, "no reaction to remove"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusNoContent, nil)
}

// HandleMine handles GET /reactions/me?target_type=...&target_id=...
func (h *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentIdentity(r.Context())
	if !ok {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "authentication required"))
		return
	}

	q := r.URL.Query()
	tgt, err := parseTarget(q.Get("target_type"), q.Get("target_id"))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get own reaction")
	defer cancel()

	reaction, err := h.Reactions.GetByUserAndTarget(ctx, caller.UserID, tgt.Type, tgt.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.NotFound, "no reaction for this target"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, reaction)
}
