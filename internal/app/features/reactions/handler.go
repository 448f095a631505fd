// Package reactions implements like/dislike reactions on pins and comments.
// At most one reaction per user per target; reacting again with the other
// type switches the existing reaction in place.
package reactions

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	commentstore "github.com/dalemusser/pindrop/internal/app/store/comments"
	pinstore "github.com/dalemusser/pindrop/internal/app/store/pins"
	reactionstore "github.com/dalemusser/pindrop/internal/app/store/reactions"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

// Handler is the shared dependency container for the reactions feature.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Reactions *reactionstore.Store
	Pins      *pinstore.Store
	Comments  *commentstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		Reactions: reactionstore.New(db),
		Pins:      pinstore.New(db),
		Comments:  commentstore.New(db),
	}
}

// target identifies a reactable entity from request input.
type target struct {
	Type string
	ID   primitive.ObjectID
}

func parseTarget(targetType, targetID string) (target, error) {
	if !models.ValidTargetType(targetType) {
		return target{}, apperr.E(apperr.Validation, `target_type must be "pin" or "comment"`)
	}
	id, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return target{}, apperr.E(apperr.Validation, "invalid target_id")
	}
	return target{Type: targetType, ID: id}, nil
}

// resolvePin walks from a target to its governing pin: the pin itself, or a
// comment's parent pin. The pin's view rule gates every reaction operation.
func (h *Handler) resolvePin(ctx context.Context, tgt target) (*models.Pin, error) {
	pinID := tgt.ID
	if tgt.Type == models.TargetComment {
		comment, err := h.Comments.GetByID(ctx, tgt.ID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, apperr.E(apperr.NotFound, "comment not found")
			}
			return nil, err
		}
		pinID = comment.PinID
	}

	pin, err := h.Pins.GetByID(ctx, pinID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.E(apperr.NotFound, "pin not found")
		}
		return nil, err
	}
	return pin, nil
}
