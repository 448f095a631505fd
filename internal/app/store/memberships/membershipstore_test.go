package membershipstore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	membershipstore "github.com/dalemusser/pindrop/internal/app/store/memberships"
	"github.com/dalemusser/pindrop/internal/domain/models"
	"github.com/dalemusser/pindrop/internal/testutil"
)

func TestStore_Add(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RoleUser)
	group := fx.CreateGroup(ctx, "Hiking Club")

	if err := store.Add(ctx, group.ID, user.ID, models.MembershipAdmin); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	isMember, err := store.IsMember(ctx, group.ID, user.ID)
	if err != nil {
		t.Fatalf("IsMember failed: %v", err)
	}
	if !isMember {
		t.Error("expected user to be a member after Add")
	}

	isAdmin, err := store.IsAdmin(ctx, group.ID, user.ID)
	if err != nil {
		t.Fatalf("IsAdmin failed: %v", err)
	}
	if !isAdmin {
		t.Error("expected user to be a group admin")
	}
}

func TestStore_Add_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Bob", "bob@example.com", models.RoleUser)
	group := fx.CreateGroup(ctx, "Book Club")

	if err := store.Add(ctx, group.ID, user.ID, models.MembershipMember); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}

	err := store.Add(ctx, group.ID, user.ID, models.MembershipMember)
	if !errors.Is(err, membershipstore.ErrDuplicateMembership) {
		t.Errorf("expected ErrDuplicateMembership, got %v", err)
	}
}

func TestStore_Add_BadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Carol", "carol@example.com", models.RoleUser)
	group := fx.CreateGroup(ctx, "Chess Club")

	if err := store.Add(ctx, group.ID, user.ID, "owner"); err == nil {
		t.Error("expected error for invalid role")
	}
}

func TestStore_Promote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Dave", "dave@example.com", models.RoleUser)
	group := fx.CreateGroup(ctx, "Run Club")
	fx.CreateMembership(ctx, user.ID, group.ID, models.MembershipMember)

	if err := store.Promote(ctx, group.ID, user.ID); err != nil {
		t.Fatalf("Promote failed: %v", err)
	}

	isAdmin, err := store.IsAdmin(ctx, group.ID, user.ID)
	if err != nil {
		t.Fatalf("IsAdmin failed: %v", err)
	}
	if !isAdmin {
		t.Error("expected user to be admin after Promote")
	}

	// Promoting an admin again is a no-op, not an error.
	if err := store.Promote(ctx, group.ID, user.ID); err != nil {
		t.Errorf("second Promote failed: %v", err)
	}
}

func TestStore_Promote_NotMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Eve", "eve@example.com", models.RoleUser)
	group := fx.CreateGroup(ctx, "Swim Club")

	err := store.Promote(ctx, group.ID, user.ID)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_Remove(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Frank", "frank@example.com", models.RoleUser)
	group := fx.CreateGroup(ctx, "Film Club")
	fx.CreateMembership(ctx, user.ID, group.ID, models.MembershipMember)

	if err := store.Remove(ctx, group.ID, user.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	isMember, err := store.IsMember(ctx, group.ID, user.ID)
	if err != nil {
		t.Fatalf("IsMember failed: %v", err)
	}
	if isMember {
		t.Error("expected user to no longer be a member")
	}

	// Removing again reports not found.
	err = store.Remove(ctx, group.ID, user.ID)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_GroupIDsForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Grace", "grace@example.com", models.RoleUser)
	g1 := fx.CreateGroup(ctx, "Group One")
	g2 := fx.CreateGroup(ctx, "Group Two")
	fx.CreateGroup(ctx, "Group Three") // not joined
	fx.CreateMembership(ctx, user.ID, g1.ID, models.MembershipAdmin)
	fx.CreateMembership(ctx, user.ID, g2.ID, models.MembershipMember)

	ids, err := store.GroupIDsForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GroupIDsForUser failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 group IDs, got %d", len(ids))
	}

	want := map[string]bool{g1.ID.Hex(): true, g2.ID.Hex(): true}
	for _, id := range ids {
		if !want[id.Hex()] {
			t.Errorf("unexpected group ID %s", id.Hex())
		}
	}
}

func TestStore_ListByGroup_AdminsFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	group := fx.CreateGroup(ctx, "Ordered Club")
	member := fx.CreateUser(ctx, "Member", "m@example.com", models.RoleUser)
	admin := fx.CreateUser(ctx, "Admin", "a@example.com", models.RoleUser)
	fx.CreateMembership(ctx, member.ID, group.ID, models.MembershipMember)
	fx.CreateMembership(ctx, admin.ID, group.ID, models.MembershipAdmin)

	ms, err := store.ListByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if len(ms) != 2 {
		t.Fatalf("expected 2 memberships, got %d", len(ms))
	}
	if ms[0].Role != models.MembershipAdmin {
		t.Errorf("expected admin first, got role %q", ms[0].Role)
	}
}

func TestStore_CountAdmins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	group := fx.CreateGroup(ctx, "Counted Club")
	a := fx.CreateUser(ctx, "A", "a2@example.com", models.RoleUser)
	b := fx.CreateUser(ctx, "B", "b2@example.com", models.RoleUser)
	fx.CreateMembership(ctx, a.ID, group.ID, models.MembershipAdmin)
	fx.CreateMembership(ctx, b.ID, group.ID, models.MembershipMember)

	n, err := store.CountAdmins(ctx, group.ID)
	if err != nil {
		t.Fatalf("CountAdmins failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 admin, got %d", n)
	}
}

func TestStore_RemoveAllForGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	group := fx.CreateGroup(ctx, "Doomed Club")
	other := fx.CreateGroup(ctx, "Surviving Club")
	a := fx.CreateUser(ctx, "A", "a3@example.com", models.RoleUser)
	b := fx.CreateUser(ctx, "B", "b3@example.com", models.RoleUser)
	fx.CreateMembership(ctx, a.ID, group.ID, models.MembershipAdmin)
	fx.CreateMembership(ctx, b.ID, group.ID, models.MembershipMember)
	fx.CreateMembership(ctx, a.ID, other.ID, models.MembershipMember)

	if err := store.RemoveAllForGroup(ctx, group.ID); err != nil {
		t.Fatalf("RemoveAllForGroup failed: %v", err)
	}

	ms, err := store.ListByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if len(ms) != 0 {
		t.Errorf("expected no memberships left, got %d", len(ms))
	}

	// Other group untouched.
	stillMember, err := store.IsMember(ctx, other.ID, a.ID)
	if err != nil {
		t.Fatalf("IsMember failed: %v", err)
	}
	if !stillMember {
		t.Error("membership in other group should survive")
	}
}
