// internal/app/features/reactions/tally.go
package reactions

import (
	"net/http"

	"github.com/dalemusser/pindrop/internal/app/policy/pinpolicy"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
)

// HandleTally handles GET /reactions/tally?target_type=...&target_id=...
// Visible to whoever can view the target's pin, anonymous callers included.
func (h *Handler) HandleTally(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tgt, err := parseTarget(q.Get("target_type"), q.Get("target_id"))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "tally reactions")
	defer cancel()

	pin, err := h.resolvePin(ctx, tgt)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	allowed, err := pinpolicy.CanView(ctx, h.DB, pin, auth.Caller(r.Context()))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if !allowed {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Forbidden, "not authorized to view this content"))
		return
	}

	tally, err := h.Reactions.Tally(ctx, tgt.Type, tgt.ID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, tally)
}
