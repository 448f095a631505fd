// Package pins implements pin CRUD, the visibility-filtered feed, and
// media attachment.
package pins

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	commentstore "github.com/dalemusser/pindrop/internal/app/store/comments"
	groupstore "github.com/dalemusser/pindrop/internal/app/store/groups"
	membershipstore "github.com/dalemusser/pindrop/internal/app/store/memberships"
	pinstore "github.com/dalemusser/pindrop/internal/app/store/pins"
	reactionstore "github.com/dalemusser/pindrop/internal/app/store/reactions"
	userstore "github.com/dalemusser/pindrop/internal/app/store/users"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/media"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

// Handler is the shared dependency container for the pins feature.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Pins      *pinstore.Store
	Groups    *groupstore.Store
	Members   *membershipstore.Store
	Comments  *commentstore.Store
	Reactions *reactionstore.Store
	Users     *userstore.Store
	Media     *media.Store
}

// NewHandler constructs a pins Handler. media may be nil when object
// storage is not configured; media endpoints then report an error.
func NewHandler(db *mongo.Database, logger *zap.Logger, mediaStore *media.Store) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		Pins:      pinstore.New(db),
		Groups:    groupstore.New(db),
		Members:   membershipstore.New(db),
		Comments:  commentstore.New(db),
		Reactions: reactionstore.New(db),
		Users:     userstore.New(db),
		Media:     mediaStore,
	}
}

// pinResponse decorates a pin with owner and group display summaries.
type pinResponse struct {
	models.Pin
	Owner *models.UserSummary  `json:"owner,omitempty"`
	Group *models.GroupSummary `json:"group,omitempty"`
}

// urlID parses the {id} URL parameter as an ObjectID.
func urlID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apperr.E(apperr.Validation, "invalid "+name)
	}
	return id, nil
}

// loadPin fetches a pin, mapping a missing document to NotFound.
func (h *Handler) loadPin(r *http.Request, id primitive.ObjectID) (*models.Pin, error) {
	pin, err := h.Pins.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.E(apperr.NotFound, "pin not found")
		}
		return nil, err
	}
	return pin, nil
}
