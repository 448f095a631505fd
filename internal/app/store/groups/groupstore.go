package groupstore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
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
	return &Store{c: db.Collection("groups")}
}

// ErrDuplicateInviteToken is returned on the vanishingly rare token collision.
var ErrDuplicateInviteToken = errors.New("invite token already in use")

// newInviteToken generates a 32-char hex join credential.
func newInviteToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate invite token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Create inserts a new group with a fresh invite token.
// Membership records are managed separately.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	token, err := newInviteToken()
	if err != nil {
		return models.Group{}, err
	}

	g.ID = primitive.NewObjectID()
	g.Name = strings.TrimSpace(g.Name)
	g.InviteToken = token

	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateInviteToken
		}
		return models.Group{}, err
	}
	return g, nil
}

// GetByID loads a group by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// GetByIDs loads multiple groups, preserving no particular order.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Group, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// List returns all groups, newest first.
func (s *Store) List(ctx context.Context) ([]models.Group, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Update holds the mutable group fields. Nil fields are left untouched.
type Update struct {
	Name        *string
	Description *string
	Avatar      *string
}

// Apply performs a partial update and returns the updated group.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Group, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Name != nil {
		set["name"] = strings.TrimSpace(*upd.Name)
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Avatar != nil {
		set["avatar"] = *upd.Avatar
	}

	var g models.Group
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&g)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// RegenerateInviteToken replaces the group's invite token, invalidating
// previously shared invites, and returns the new token.
func (s *Store) RegenerateInviteToken(ctx context.Context, id primitive.ObjectID) (string, error) {
	token, err := newInviteToken()
	if err != nil {
		return "", err
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"invite_token": token, "updated_at": time.Now()}},
	)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return "", ErrDuplicateInviteToken
		}
		return "", err
	}
	if res.MatchedCount == 0 {
		return "", mongo.ErrNoDocuments
	}
	return token, nil
}

// Delete removes a group record. Memberships and group pins are cleaned up
// by the caller.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
