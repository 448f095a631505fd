// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. Pindrop
// applies any configured timeout overrides and promotes the configured admin
// account.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Ping:   appCfg.TimeoutPing,
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
		Upload: appCfg.TimeoutUpload,
	})

	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
			return err
		}
	}

	return nil
}

// ensureAdmin promotes the user with the given email to the admin role.
//
// Accounts are created through signup, so there is no user to create here:
// when the email has no account yet, the promotion is logged and retried on
// the next startup. This keeps a fresh deployment from needing a hand-edited
// database to get its first admin.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	users := deps.MongoDatabase.Collection("users")

	var u models.User
	err := users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		logger.Info("admin account not found yet; will promote after signup",
			zap.String("email", email))
		return nil
	}
	if err != nil {
		return err
	}

	if u.Role == models.RoleAdmin {
		return nil
	}

	_, err = users.UpdateOne(ctx,
		bson.M{"_id": u.ID},
		bson.M{"$set": bson.M{"role": models.RoleAdmin, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}

	logger.Info("promoted user to admin", zap.String("email", email))
	return nil
}
