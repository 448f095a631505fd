// Package revokedtokenstore persists revoked token IDs so logout survives
// process restarts. A TTL index clears records once the token itself has
// expired.
package revokedtokenstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/pindrop/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("revoked_tokens")}
}

// Revoke records a token ID. Revoking an already-revoked token is a no-op.
func (s *Store) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	rec := models.RevokedToken{
		JTI:       jti,
		ExpiresAt: expiresAt,
	}
	if _, err := s.c.InsertOne(ctx, rec); err != nil {
		if wafflemongo.IsDup(err) {
			return nil
		}
		return err
	}
	return nil
}

// IsRevoked reports whether a token ID has been revoked.
func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"jti": jti}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}
