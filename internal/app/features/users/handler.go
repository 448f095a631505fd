// Package users implements profile management plus the admin user
// directory.
package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/dalemusser/pindrop/internal/app/store/users"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/media"
)

// Handler is the shared dependency container for the users feature.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Users *userstore.Store
	Media *media.Store
}

// NewHandler constructs a users Handler. media may be nil when object
// storage is not configured.
func NewHandler(db *mongo.Database, logger *zap.Logger, mediaStore *media.Store) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		Users: userstore.New(db),
		Media: mediaStore,
	}
}

func urlID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apperr.E(apperr.Validation, "invalid "+name)
	}
	return id, nil
}
