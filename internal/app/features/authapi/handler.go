// Package authapi implements signup, login, and logout.
package authapi

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	revokedtokenstore "github.com/dalemusser/pindrop/internal/app/store/revokedtokens"
	userstore "github.com/dalemusser/pindrop/internal/app/store/users"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/ratelimit"
)

// Handler is the shared dependency container for the auth feature.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Users   *userstore.Store
	Tokens  *auth.Manager
	Revoked *revokedtokenstore.Store
	Logins  *ratelimit.LoginLimiter
}

// NewHandler constructs an auth Handler. Called from bootstrap where the
// database, logger, and token manager are already initialized.
func NewHandler(db *mongo.Database, logger *zap.Logger, tokens *auth.Manager) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		Users:   userstore.New(db),
		Tokens:  tokens,
		Revoked: revokedtokenstore.New(db),
		Logins:  ratelimit.NewLoginLimiter(),
	}
}
