// internal/app/features/reactions/react.go
package reactions

import (
	"errors"
	"net/http"

	"github.com/dalemusser/pindrop/internal/app/policy/pinpolicy"
	reactionstore "github.com/dalemusser/pindrop/internal/app/store/reactions"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

type reactRequest struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Type       string `json:"type"`
}

// HandleReact handles POST /reactions. Reacting again with the same type is
// a no-op; with the other type it switches the reaction in place.
func (h *Handler) HandleReact(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentIdentity(r.Context())
	if !ok {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "authentication required"))
		return
	}

	var req reactRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	tgt, err := parseTarget(req.TargetType, req.TargetID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if !models.ValidReactionType(req.Type) {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, `type must be "like" or "dislike"`))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "react")
	defer cancel()

	pin, err := h.resolvePin(ctx, tgt)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	allowed, err := pinpolicy.CanView(ctx, h.DB, pin, &caller)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if !allowed {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Forbidden, "not authorized to react to this content"))
		return
	}

	reaction, err := h.Reactions.React(ctx, caller.UserID, tgt.Type, tgt.ID, req.Type)
	if err != nil {
		if errors.Is(err, reactionstore.ErrConcurrentReaction) {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.Conflict, "reaction already exists for this target"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, reaction)
}
