// internal/app/features/pins/update.go
package pins

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/pindrop/internal/app/policy/grouppolicy"
	"github.com/dalemusser/pindrop/internal/app/policy/pinpolicy"
	pinstore "github.com/dalemusser/pindrop/internal/app/store/pins"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/sanitize"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

type updatePinRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	Privacy     *string  `json:"privacy,omitempty"`
	GroupID     *string  `json:"group_id,omitempty"`
}

// HandleUpdate handles PATCH /pins/{id}. The mutate rule differs by tier:
// group pins are collectively editable by members, everything else is
// owner-or-admin.
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

	var req updatePinRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update pin")
	defer cancel()

	pin, err := h.loadPin(r, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	allowed, err := pinpolicy.CanMutate(ctx, h.DB, pin, &caller)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if !allowed {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Forbidden, "not authorized to edit this pin"))
		return
	}

	upd := pinstore.Update{}

	if req.Title != nil {
		title := sanitize.Plain(*req.Title)
		if title == "" {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "title cannot be empty"))
			return
		}
		upd.Title = &title
	}
	if req.Description != nil {
		desc := sanitize.Rich(*req.Description)
		upd.Description = &desc
	}

	// Coordinates move together.
	if (req.Lat == nil) != (req.Lng == nil) {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "lat and lng must be updated together"))
		return
	}
	if req.Lat != nil {
		if err := validateCoords(*req.Lat, *req.Lng); err != nil {
			httpjson.WriteError(w, h.Log, err)
			return
		}
		upd.Location = &models.Location{Lat: *req.Lat, Lng: *req.Lng}
	}

	// Privacy transitions keep the groupId-iff-group invariant intact.
	if req.Privacy != nil {
		privacy := *req.Privacy
		if !models.ValidPrivacy(privacy) {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "privacy must be public, private, or group"))
			return
		}
		upd.Privacy = &privacy

		if privacy == models.PrivacyGroup {
			gidHex := ""
			if req.GroupID != nil {
				gidHex = *req.GroupID
			}
			if gidHex == "" {
				httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "group_id is required for group pins"))
				return
			}
			gid, err := primitive.ObjectIDFromHex(gidHex)
			if err != nil {
				httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "invalid group_id"))
				return
			}
			if _, err := h.Groups.GetByID(ctx, gid); err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					httpjson.WriteError(w, h.Log, apperr.E(apperr.NotFound, "group not found"))
					return
				}
				httpjson.WriteError(w, h.Log, err)
				return
			}
			canPin, err := grouppolicy.CanCreatePin(ctx, h.DB, &caller, gid)
			if err != nil {
				httpjson.WriteError(w, h.Log, err)
				return
			}
			if !canPin {
				httpjson.WriteError(w, h.Log, apperr.E(apperr.Forbidden, "must be a group member to pin here"))
				return
			}
			upd.GroupID = &gid
		} else {
			if req.GroupID != nil {
				httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "group_id is only valid for group pins"))
				return
			}
			upd.ClearGroup = true
		}
	} else if req.GroupID != nil {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "group_id can only change together with privacy"))
		return
	}

	updated, err := h.Pins.Apply(ctx, id, upd)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, h.decorate(ctx, *updated))
}
