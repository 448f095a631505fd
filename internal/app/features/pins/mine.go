// internal/app/features/pins/mine.go
package pins

import (
	"net/http"

	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
)

// HandleMine handles GET /pins/me: every pin the caller owns, regardless
// of privacy tier.
func (h *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentIdentity(r.Context())
	if !ok {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "authentication required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list own pins")
	defer cancel()

	pins, err := h.Pins.ListByOwner(ctx, caller.UserID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, h.decorateList(ctx, pins))
}
