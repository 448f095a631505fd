// internal/domain/models/revokedtoken.go
package models

import "time"

// RevokedToken records a logged-out token's JTI until the token itself
// expires. A TTL index on expires_at prunes the collection; nothing in the
// process keeps revocation state in memory.
type RevokedToken struct {
	JTI       string    `bson:"jti" json:"jti"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}
