// Package comments implements commenting on pins. Creating and listing
// inherit the parent pin's visibility; editing and deleting are author-only.
package comments

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	commentstore "github.com/dalemusser/pindrop/internal/app/store/comments"
	pinstore "github.com/dalemusser/pindrop/internal/app/store/pins"
	reactionstore "github.com/dalemusser/pindrop/internal/app/store/reactions"
	userstore "github.com/dalemusser/pindrop/internal/app/store/users"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

// Handler is the shared dependency container for the comments feature.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Comments  *commentstore.Store
	Pins      *pinstore.Store
	Reactions *reactionstore.Store
	Users     *userstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		Comments:  commentstore.New(db),
		Pins:      pinstore.New(db),
		Reactions: reactionstore.New(db),
		Users:     userstore.New(db),
	}
}

// commentResponse decorates a comment with its author's display summary.
type commentResponse struct {
	models.Comment
	Author *models.UserSummary `json:"author,omitempty"`
}

func urlID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apperr.E(apperr.Validation, "invalid "+name)
	}
	return id, nil
}

// loadPin fetches the parent pin, mapping a missing document to NotFound.
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

// loadComment fetches a comment, mapping a missing document to NotFound.
func (h *Handler) loadComment(r *http.Request, id primitive.ObjectID) (*models.Comment, error) {
	c, err := h.Comments.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.E(apperr.NotFound, "comment not found")
		}
		return nil, err
	}
	return c, nil
}
