package groupstore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	groupstore "github.com/dalemusser/pindrop/internal/app/store/groups"
	"github.com/dalemusser/pindrop/internal/domain/models"
	"github.com/dalemusser/pindrop/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Group{
		Name:        "  Hiking Club  ",
		Description: "Weekend hikes",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Name != "Hiking Club" {
		t.Errorf("Name not trimmed: %q", created.Name)
	}
	if len(created.InviteToken) != 32 {
		t.Errorf("expected 32-char invite token, got %q", created.InviteToken)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_UniqueTokens(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := store.Create(ctx, models.Group{Name: "A"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b, err := store.Create(ctx, models.Group{Name: "B"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if a.InviteToken == b.InviteToken {
		t.Error("two groups received the same invite token")
	}
}

func TestStore_Apply(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Group{Name: "Before", Description: "old"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	name := "After"
	updated, err := store.Apply(ctx, created.ID, groupstore.Update{Name: &name})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if updated.Name != "After" {
		t.Errorf("Name: got %q", updated.Name)
	}
	if updated.Description != "old" {
		t.Errorf("Description changed unexpectedly: %q", updated.Description)
	}
	if updated.InviteToken != created.InviteToken {
		t.Error("Apply must not touch the invite token")
	}
}

func TestStore_RegenerateInviteToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Group{Name: "Tokened"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	token, err := store.RegenerateInviteToken(ctx, created.ID)
	if err != nil {
		t.Fatalf("RegenerateInviteToken failed: %v", err)
	}
	if token == created.InviteToken {
		t.Error("expected a fresh invite token")
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.InviteToken != token {
		t.Error("stored token does not match returned token")
	}

	_, err = store.RegenerateInviteToken(ctx, primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected mongo.ErrNoDocuments for missing group, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Group{Name: "Doomed"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, created.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected mongo.ErrNoDocuments after delete, got %v", err)
	}
}

func TestStore_GetByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := store.Create(ctx, models.Group{Name: "A"})
	b, _ := store.Create(ctx, models.Group{Name: "B"})
	store.Create(ctx, models.Group{Name: "C"})

	groups, err := store.GetByIDs(ctx, []primitive.ObjectID{a.ID, b.ID})
	if err != nil {
		t.Fatalf("GetByIDs failed: %v", err)
	}
	if len(groups) != 2 {
		t.Errorf("expected 2 groups, got %d", len(groups))
	}
}
