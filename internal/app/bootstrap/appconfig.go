// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds Pindrop-specific configuration loaded by LoadConfig.
// Core settings (ports, env, TLS, logging) live in WAFFLE's CoreConfig.
type AppConfig struct {
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer token settings
	JWTSecret string
	JWTTTL    time.Duration

	// Admin bootstrap: the user with this email is promoted to the
	// admin role on startup.
	AdminEmail string

	// Object storage for pin media and avatars. Media uploads are
	// disabled when MediaBucket is empty.
	MediaRegion    string
	MediaBucket    string
	MediaAccessKey string
	MediaSecretKey string
	MediaEndpoint  string
	MediaBaseURL   string

	// Handler operation timeouts. Zero values keep the built-in defaults.
	TimeoutPing   time.Duration
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
	TimeoutUpload time.Duration
}
