// internal/app/features/pins/create.go
package pins

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/pindrop/internal/app/policy/grouppolicy"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/sanitize"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

type createPinRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Privacy     string  `json:"privacy"`
	GroupID     string  `json:"group_id,omitempty"`
}

func validateCoords(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return apperr.E(apperr.Validation, "lat must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return apperr.E(apperr.Validation, "lng must be between -180 and 180")
	}
	return nil
}

// HandleCreate handles POST /pins.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentIdentity(r.Context())
	if !ok {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "authentication required"))
		return
	}

	var req createPinRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	title := sanitize.Plain(req.Title)
	if title == "" {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "title is required"))
		return
	}
	if err := validateCoords(req.Lat, req.Lng); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if !models.ValidPrivacy(req.Privacy) {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "privacy must be public, private, or group"))
		return
	}

	// group_id travels with privacy=group and only with it.
	var groupID *primitive.ObjectID
	switch {
	case req.Privacy == models.PrivacyGroup && req.GroupID == "":
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "group_id is required for group pins"))
		return
	case req.Privacy != models.PrivacyGroup && req.GroupID != "":
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "group_id is only valid for group pins"))
		return
	case req.GroupID != "":
		gid, err := primitive.ObjectIDFromHex(req.GroupID)
		if err != nil {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "invalid group_id"))
			return
		}
		groupID = &gid
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create pin")
	defer cancel()

	if groupID != nil {
		if _, err := h.Groups.GetByID(ctx, *groupID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				httpjson.WriteError(w, h.Log, apperr.E(apperr.NotFound, "group not found"))
				return
			}
			httpjson.WriteError(w, h.Log, err)
			return
		}
		allowed, err := grouppolicy.CanCreatePin(ctx, h.DB, &caller, *groupID)
		if err != nil {
			httpjson.WriteError(w, h.Log, err)
			return
		}
		if !allowed {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.Forbidden, "must be a group member to pin here"))
			return
		}
	}

	pin, err := h.Pins.Create(ctx, models.Pin{
		OwnerID:     caller.UserID,
		Title:       title,
		Description: sanitize.Rich(req.Description),
		Location:    models.Location{Lat: req.Lat, Lng: req.Lng},
		Privacy:     req.Privacy,
		GroupID:     groupID,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, pin)
}
