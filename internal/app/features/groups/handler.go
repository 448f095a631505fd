// Package groups implements group CRUD, invite-token joins, and membership
// management.
package groups

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

// Handler is the shared dependency container for the groups feature.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Groups    *groupstore.Store
	Members   *membershipstore.Store
	Pins      *pinstore.Store
	Comments  *commentstore.Store
	Reactions *reactionstore.Store
	Users     *userstore.Store
	Media     *media.Store
}

// NewHandler constructs a groups Handler. media may be nil when object
// storage is not configured.
func NewHandler(db *mongo.Database, logger *zap.Logger, mediaStore *media.Store) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		Groups:    groupstore.New(db),
		Members:   membershipstore.New(db),
		Pins:      pinstore.New(db),
		Comments:  commentstore.New(db),
		Reactions: reactionstore.New(db),
		Users:     userstore.New(db),
		Media:     mediaStore,
	}
}

func urlID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apperr.E(apperr.Validation, "invalid "+name)
	}
	return id, nil
}

// loadGroup fetches a group, mapping a missing document to NotFound.
func (h *Handler) loadGroup(r *http.Request, id primitive.ObjectID) (*models.Group, error) {
	g, err := h.Groups.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.E(apperr.NotFound, "group not found")
		}
		return nil, err
	}
	return g, nil
}
