// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const devJWTSecret = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for Pindrop.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: PINDROP_MONGO_URI, PINDROP_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "pindrop", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Bearer tokens
	{Name: "jwt_secret", Default: devJWTSecret, Desc: "JWT signing secret (must be strong in production)"},
	{Name: "jwt_ttl", Default: "24h", Desc: "Lifetime of issued bearer tokens (e.g., 24h, 90m)"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email of the admin user (promoted on startup)"},

	// S3-compatible object storage for pin media and avatars
	{Name: "media_region", Default: "", Desc: "AWS region for media storage"},
	{Name: "media_bucket", Default: "", Desc: "S3 bucket for media (blank disables uploads)"},
	{Name: "media_access_key", Default: "", Desc: "Access key for media storage (blank uses default AWS chain)"},
	{Name: "media_secret_key", Default: "", Desc: "Secret key for media storage"},
	{Name: "media_endpoint", Default: "", Desc: "Custom S3 endpoint for S3-compatible stores (blank means AWS)"},
	{Name: "media_base_url", Default: "", Desc: "Public URL prefix for stored media (blank uses the S3 URL)"},

	// Handler operation timeouts (blank keeps the built-in defaults)
	{Name: "timeout_ping", Default: "", Desc: "Health check timeout (e.g., 2s)"},
	{Name: "timeout_short", Default: "", Desc: "Single-document read timeout (e.g., 5s)"},
	{Name: "timeout_medium", Default: "", Desc: "List query and moderate write timeout (e.g., 10s)"},
	{Name: "timeout_long", Default: "", Desc: "Cascading delete timeout (e.g., 30s)"},
	{Name: "timeout_upload", Default: "", Desc: "Media upload timeout (e.g., 60s)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, PINDROP_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "PINDROP", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		JWTTTL:    appValues.Duration("jwt_ttl", 24*time.Hour),

		AdminEmail: appValues.String("admin_email"),

		MediaRegion:    appValues.String("media_region"),
		MediaBucket:    appValues.String("media_bucket"),
		MediaAccessKey: appValues.String("media_access_key"),
		MediaSecretKey: appValues.String("media_secret_key"),
		MediaEndpoint:  appValues.String("media_endpoint"),
		MediaBaseURL:   appValues.String("media_base_url"),

		TimeoutPing:   appValues.Duration("timeout_ping", 0),
		TimeoutShort:  appValues.Duration("timeout_short", 0),
		TimeoutMedium: appValues.Duration("timeout_medium", 0),
		TimeoutLong:   appValues.Duration("timeout_long", 0),
		TimeoutUpload: appValues.Duration("timeout_upload", 0),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
//
// Pindrop validates the MongoDB URI format to catch configuration errors
// early, and refuses to start in production with the development JWT secret.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" && appCfg.JWTSecret == devJWTSecret {
		return fmt.Errorf("jwt_secret must be changed from the development default in production")
	}
	if appCfg.JWTTTL <= 0 {
		return fmt.Errorf("jwt_ttl must be a positive duration")
	}

	// Media storage is optional, but when a bucket is configured the
	// region must come with it.
	if appCfg.MediaBucket != "" && appCfg.MediaRegion == "" {
		return fmt.Errorf("media_region is required when media_bucket is set")
	}

	return nil
}
