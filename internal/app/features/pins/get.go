// internal/app/features/pins/get.go
package pins

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/pindrop/internal/app/policy/pinpolicy"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

// decorate attaches owner and group summaries to a pin.
func (h *Handler) decorate(ctx context.Context, pin models.Pin) pinResponse {
	resp := pinResponse{Pin: pin}

	if sums, err := h.Users.SummariesByIDs(ctx, []primitive.ObjectID{pin.OwnerID}); err == nil {
		if s, ok := sums[pin.OwnerID]; ok {
			resp.Owner = &s
		}
	}
	if pin.GroupID != nil {
		if g, err := h.Groups.GetByID(ctx, *pin.GroupID); err == nil {
			s := g.Summary()
			resp.Group = &s
		}
	}
	return resp
}

// HandleGet handles GET /pins/{id}. Anonymous callers reach public pins;
// everything else goes through the view rule.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get pin")
	defer cancel()

	pin, err := h.loadPin(r, id)
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
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Forbidden, "not authorized to view this pin"))
		return
	}

	httpjson.Write(w, http.StatusOK, h.decorate(ctx, *pin))
}
