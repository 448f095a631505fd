package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/pindrop/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: "$2a$10$test-hash-not-a-real-credential",
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates a test user with the application admin role.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleAdmin)
}

// CreateGroup creates a test group with a unique invite token.
// No memberships are created; pair with CreateMembership.
func (f *Fixtures) CreateGroup(ctx context.Context, name string) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: "Test group description",
		InviteToken: "test-invite-" + primitive.NewObjectID().Hex(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreateMembership creates a membership record linking a user to a group.
func (f *Fixtures) CreateMembership(ctx context.Context, userID, groupID primitive.ObjectID, role string) models.GroupMembership {
	f.t.Helper()

	membership := models.GroupMembership{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		GroupID:   groupID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("group_memberships").InsertOne(ctx, membership); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return membership
}

// CreatePin creates a test pin. groupID may be nil for public/private pins.
func (f *Fixtures) CreatePin(ctx context.Context, ownerID primitive.ObjectID, title, privacy string, groupID *primitive.ObjectID) models.Pin {
	f.t.Helper()

	now := time.Now().UTC()
	pin := models.Pin{
		ID:          primitive.NewObjectID(),
		OwnerID:     ownerID,
		Title:       title,
		Description: "Test pin description",
		Location:    models.Location{Lat: 37.7749, Lng: -122.4194},
		Privacy:     privacy,
		GroupID:     groupID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("pins").InsertOne(ctx, pin); err != nil {
		f.t.Fatalf("failed to create test pin: %v", err)
	}
	return pin
}

// CreateComment creates a test comment on a pin.
func (f *Fixtures) CreateComment(ctx context.Context, authorID, pinID primitive.ObjectID, content string) models.Comment {
	f.t.Helper()

	now := time.Now().UTC()
	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		AuthorID:  authorID,
		PinID:     pinID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("comments").InsertOne(ctx, comment); err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}
	return comment
}

// CreateReaction creates a test reaction on a pin or comment.
func (f *Fixtures) CreateReaction(ctx context.Context, userID primitive.ObjectID, targetType string, targetID primitive.ObjectID, reactionType string) models.Reaction {
	f.t.Helper()

	now := time.Now().UTC()
	reaction := models.Reaction{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
		Type:       reactionType,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("reactions").InsertOne(ctx, reaction); err != nil {
		f.t.Fatalf("failed to create test reaction: %v", err)
	}
	return reaction
}

// CreateReport creates a test report in open status.
func (f *Fixtures) CreateReport(ctx context.Context, reporterID primitive.ObjectID, targetType string, targetID primitive.ObjectID, reason string) models.Report {
	f.t.Helper()

	now := time.Now().UTC()
	report := models.Report{
		ID:         primitive.NewObjectID(),
		ReporterID: reporterID,
		TargetType: targetType,
		TargetID:   targetID,
		Reason:     reason,
		Status:     models.ReportOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("reports").InsertOne(ctx, report); err != nil {
		f.t.Fatalf("failed to create test report: %v", err)
	}
	return report
}
