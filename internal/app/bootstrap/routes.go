// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authfeature "github.com/dalemusser/pindrop/internal/app/features/authapi"
	commentsfeature "github.com/dalemusser/pindrop/internal/app/features/comments"
	groupsfeature "github.com/dalemusser/pindrop/internal/app/features/groups"
	healthfeature "github.com/dalemusser/pindrop/internal/app/features/health"
	pinsfeature "github.com/dalemusser/pindrop/internal/app/features/pins"
	reactionsfeature "github.com/dalemusser/pindrop/internal/app/features/reactions"
	reportsfeature "github.com/dalemusser/pindrop/internal/app/features/reports"
	usersfeature "github.com/dalemusser/pindrop/internal/app/features/users"
	revokedtokenstore "github.com/dalemusser/pindrop/internal/app/store/revokedtokens"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/media"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Pindrop builds the token manager and media store, then mounts the JSON API
// feature routers: auth, pins, groups, comments, reactions, reports, and
// users, plus the health endpoint for load balancers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Token verification consults the revocation list so logout takes
	// effect immediately.
	tokens := auth.NewManager(appCfg.JWTSecret, appCfg.JWTTTL, revokedtokenstore.New(db))

	// Media storage is optional: without a bucket the upload endpoints
	// report that media is not configured.
	var mediaStore *media.Store
	if appCfg.MediaBucket != "" {
		var err error
		mediaStore, err = media.New(context.Background(), media.Config{
			Region:    appCfg.MediaRegion,
			Bucket:    appCfg.MediaBucket,
			AccessKey: appCfg.MediaAccessKey,
			SecretKey: appCfg.MediaSecretKey,
			Endpoint:  appCfg.MediaEndpoint,
			BaseURL:   appCfg.MediaBaseURL,
		})
		if err != nil {
			logger.Error("media store init failed", zap.Error(err))
			return nil, err
		}
		logger.Info("media storage enabled", zap.String("bucket", appCfg.MediaBucket))
	} else {
		logger.Info("media storage disabled (no media_bucket configured)")
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication: signup, login, logout
	authHandler := authfeature.NewHandler(db, logger, tokens)
	r.Mount("/auth", authfeature.Routes(authHandler))

	// Pins, with privacy-aware visibility
	pinsHandler := pinsfeature.NewHandler(db, logger, mediaStore)
	r.Mount("/pins", pinsfeature.Routes(pinsHandler, tokens, logger))

	// Groups, memberships, and invites
	groupsHandler := groupsfeature.NewHandler(db, logger, mediaStore)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler, tokens, logger))

	// Comment threads on pins
	commentsHandler := commentsfeature.NewHandler(db, logger)
	r.Mount("/comments", commentsfeature.Routes(commentsHandler, tokens, logger))

	// Like/dislike reactions on pins and comments
	reactionsHandler := reactionsfeature.NewHandler(db, logger)
	r.Mount("/reactions", reactionsfeature.Routes(reactionsHandler, tokens, logger))

	// Content reports and the admin moderation queue
	reportsHandler := reportsfeature.NewHandler(db, logger)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler, tokens, logger))

	// Profiles and admin user management
	usersHandler := usersfeature.NewHandler(db, logger, mediaStore)
	r.Mount("/users", usersfeature.Routes(usersHandler, tokens, logger))

	return r, nil
}
