package reactionstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/pindrop/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("reactions")}
}

// ErrConcurrentReaction is returned when two reacts for the same
// (user, target) race on the unique index.
var ErrConcurrentReaction = errors.New("concurrent reaction for the same target")

// React records the user's reaction to a target. A repeat of the same
// reaction type is a no-op; a different type replaces the existing
// reaction in place, keeping at most one reaction per (user, target).
func (s *Store) React(ctx context.Context, userID primitive.ObjectID, targetType string, targetID primitive.ObjectID, reactionType string) (models.Reaction, error) {
	key := bson.M{
		"user_id":     userID,
		"target_type": targetType,
		"target_id":   targetID,
	}

	var existing models.Reaction
	err := s.c.FindOne(ctx, key).Decode(&existing)
	switch {
	case err == nil:
		if existing.Type == reactionType {
			return existing, nil
		}
		var updated models.Reaction
		err := s.c.FindOneAndUpdate(ctx, key,
			bson.M{"$set": bson.M{"type": reactionType, "updated_at": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			return models.Reaction{}, err
		}
		return updated, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		// fall through to insert
	default:
		return models.Reaction{}, err
	}

	now := time.Now()
	r := models.Reaction{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
		Type:       reactionType,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			// Lost the race against another insert for the same target.
			return models.Reaction{}, ErrConcurrentReaction
		}
		return models.Reaction{}, err
	}
	return r, nil
}

// GetByUserAndTarget returns the user's reaction to a target.
// Returns mongo.ErrNoDocuments when the user has not reacted.
func (s *Store) GetByUserAndTarget(ctx context.Context, userID primitive.ObjectID, targetType string, targetID primitive.ObjectID) (*models.Reaction, error) {
	var r models.Reaction
	err := s.c.FindOne(ctx, bson.M{
		"user_id":     userID,
		"target_type": targetType,
		"target_id":   targetID,
	}).Decode(&r)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Remove deletes the user's reaction to a target. Returns
// mongo.ErrNoDocuments when no reaction exists.
func (s *Store) Remove(ctx context.Context, userID primitive.ObjectID, targetType string, targetID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{
		"user_id":     userID,
		"target_type": targetType,
		"target_id":   targetID,
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Tally counts likes and dislikes for a target.
func (s *Store) Tally(ctx context.Context, targetType string, targetID primitive.ObjectID) (models.Tally, error) {
	likes, err := s.c.CountDocuments(ctx, bson.M{
		"target_type": targetType,
		"target_id":   targetID,
		"type":        models.ReactionLike,
	})
	if err != nil {
		return models.Tally{}, err
	}
	dislikes, err := s.c.CountDocuments(ctx, bson.M{
		"target_type": targetType,
		"target_id":   targetID,
		"type":        models.ReactionDislike,
	})
	if err != nil {
		return models.Tally{}, err
	}
	return models.Tally{Likes: int(likes), Dislikes: int(dislikes)}, nil
}

// DeleteByTarget removes every reaction on one target. Used when the
// target itself is deleted.
func (s *Store) DeleteByTarget(ctx context.Context, targetType string, targetID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"target_type": targetType, "target_id": targetID})
	return err
}

// DeleteByTargets removes every reaction on a batch of targets of one type.
func (s *Store) DeleteByTargets(ctx context.Context, targetType string, targetIDs []primitive.ObjectID) error {
	if len(targetIDs) == 0 {
		return nil
	}
	_, err := s.c.DeleteMany(ctx, bson.M{
		"target_type": targetType,
		"target_id":   bson.M{"$in": targetIDs},
	})
	return err
}
