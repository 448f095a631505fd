// Package auth issues and verifies the bearer tokens that authenticate
// API requests, and carries the verified identity in the request context.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	UserID primitive.ObjectID
	Role   string
}

// IsAdmin reports whether the caller holds the application admin role.
func (id Identity) IsAdmin() bool { return id.Role == models.RoleAdmin }

type ctxKey struct{}

// WithIdentity returns a context carrying the given identity.
// Middleware uses it after token verification; tests use it directly.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// CurrentIdentity returns the identity stored in ctx, if any.
func CurrentIdentity(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// Caller returns a pointer to the context identity, or nil for anonymous
// requests. Policy functions take the pointer form.
func Caller(ctx context.Context) *Identity {
	if id, ok := CurrentIdentity(ctx); ok {
		return &id
	}
	return nil
}

// RevocationChecker reports whether a token ID has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Claims is the JWT payload for issued tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies bearer tokens.
type Manager struct {
	secret  []byte
	ttl     time.Duration
	revoked RevocationChecker
}

// NewManager builds a token manager. revoked may be nil, in which case
// verification skips the revocation check.
func NewManager(secret string, ttl time.Duration, revoked RevocationChecker) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, revoked: revoked}
}

// Token is an issued bearer token with its revocation handle.
type Token struct {
	Value     string
	JTI       string
	ExpiresAt time.Time
}

// Issue signs a token for the given user.
func (m *Manager) Issue(userID primitive.ObjectID, role string) (Token, error) {
	now := time.Now()
	exp := now.Add(m.ttl)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.Hex(),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{Value: signed, JTI: claims.ID, ExpiresAt: exp}, nil
}

// ParseClaims validates a token's signature and expiry and returns its
// claims without consulting the revocation list. Logout revokes from these
// claims, so revoking an already-revoked token stays a no-op instead of
// failing verification.
func (m *Manager) ParseClaims(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Claims{}, apperr.Wrap(apperr.Unauthenticated, "invalid token", err)
	}
	return claims, nil
}

// Verify parses and validates a bearer token, including its revocation
// status, and returns the caller identity and the token claims.
func (m *Manager) Verify(ctx context.Context, raw string) (Identity, Claims, error) {
	claims, err := m.ParseClaims(raw)
	if err != nil {
		return Identity{}, Claims{}, err
	}

	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return Identity{}, Claims{}, apperr.E(apperr.Unauthenticated, "invalid token subject")
	}

	if m.revoked != nil && claims.ID != "" {
		revoked, err := m.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return Identity{}, Claims{}, fmt.Errorf("check token revocation: %w", err)
		}
		if revoked {
			return Identity{}, Claims{}, apperr.E(apperr.Unauthenticated, "token revoked")
		}
	}

	return Identity{UserID: userID, Role: claims.Role}, claims, nil
}
