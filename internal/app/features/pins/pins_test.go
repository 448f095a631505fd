package pins_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/features/pins"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/domain/models"
	"github.com/dalemusser/pindrop/internal/testutil"
)

func newTestHandler(t *testing.T) (*pins.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return pins.NewHandler(db, zap.NewNop(), nil), testutil.NewFixtures(t, db)
}

func createPin(t *testing.T, h *pins.Handler, id auth.Identity, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/pins", body)
	req = testutil.WithIdentity(req, id)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)
	return rec
}

func getPin(t *testing.T, h *pins.Handler, pinID string, id *auth.Identity) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/pins/"+pinID, nil)
	req = testutil.WithChiURLParam(req, "id", pinID)
	if id != nil {
		req = testutil.WithIdentity(req, *id)
	}
	rec := httptest.NewRecorder()
	h.HandleGet(rec, req)
	return rec
}

func TestHandleCreate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RoleUser)

	rec := createPin(t, h, testutil.IdentityFor(user), map[string]any{
		"title":       "Golden Gate Overlook",
		"description": "Great <b>view</b> at sunset",
		"lat":         37.8324,
		"lng":         -122.4795,
		"privacy":     models.PrivacyPublic,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}

	var pin models.Pin
	testutil.DecodeJSON(t, rec, &pin)
	if pin.OwnerID != user.ID {
		t.Errorf("OwnerID: got %s, want %s", pin.OwnerID.Hex(), user.ID.Hex())
	}
	if pin.Privacy != models.PrivacyPublic {
		t.Errorf("Privacy: got %q", pin.Privacy)
	}
	if pin.Description != "Great <b>view</b> at sunset" {
		t.Errorf("Description: got %q", pin.Description)
	}
}

func TestHandleCreate_Validation(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RoleUser)
	group := fx.CreateGroup(ctx, "Hikers")
	id := testutil.IdentityFor(user)

	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{"missing title", map[string]any{
			"lat": 1.0, "lng": 1.0, "privacy": models.PrivacyPublic,
		}, http.StatusBadRequest},
		{"lat out of range", map[string]any{
			"title": "T", "lat": 91.0, "lng": 1.0, "privacy": models.PrivacyPublic,
		}, http.StatusBadRequest},
		{"bad privacy", map[string]any{
			"title": "T", "lat": 1.0, "lng": 1.0, "privacy": "friends",
		}, http.StatusBadRequest},
		{"group pin without group_id", map[string]any{
			"title": "T", "lat": 1.0, "lng": 1.0, "privacy": models.PrivacyGroup,
		}, http.StatusBadRequest},
		{"group_id on public pin", map[string]any{
			"title": "T", "lat": 1.0, "lng": 1.0, "privacy": models.PrivacyPublic,
			"group_id": group.ID.Hex(),
		}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := createPin(t, h, id, tc.body)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestHandleCreate_GroupMembership(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fx.CreateUser(ctx, "Member", "member@example.com", models.RoleUser)
	outsider := fx.CreateUser(ctx, "Outsider", "outsider@example.com", models.RoleUser)
	admin := fx.CreateAdmin(ctx, "Admin", "admin@example.com")
	group := fx.CreateGroup(ctx, "Hikers")
	fx.CreateMembership(ctx, member.ID, group.ID, models.MembershipMember)

	body := map[string]any{
		"title": "Trailhead", "lat": 1.0, "lng": 1.0,
		"privacy": models.PrivacyGroup, "group_id": group.ID.Hex(),
	}

	if rec := createPin(t, h, testutil.IdentityFor(member), body); rec.Code != http.StatusCreated {
		t.Errorf("member: status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}
	if rec := createPin(t, h, testutil.IdentityFor(outsider), body); rec.Code != http.StatusForbidden {
		t.Errorf("outsider: status = %d, want 403", rec.Code)
	}
	// App admins get no shortcut into groups they have not joined.
	if rec := createPin(t, h, testutil.IdentityFor(admin), body); rec.Code != http.StatusForbidden {
		t.Errorf("non-member admin: status = %d, want 403", rec.Code)
	}
}

func TestHandleGet_Visibility(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Owner", "owner@example.com", models.RoleUser)
	member := fx.CreateUser(ctx, "Member", "member@example.com", models.RoleUser)
	stranger := fx.CreateUser(ctx, "Stranger", "stranger@example.com", models.RoleUser)
	admin := fx.CreateAdmin(ctx, "Admin", "admin@example.com")
	group := fx.CreateGroup(ctx, "Hikers")
	fx.CreateMembership(ctx, owner.ID, group.ID, models.MembershipAdmin)
	fx.CreateMembership(ctx, member.ID, group.ID, models.MembershipMember)

	public := fx.CreatePin(ctx, owner.ID, "Public", models.PrivacyPublic, nil)
	private := fx.CreatePin(ctx, owner.ID, "Private", models.PrivacyPrivate, nil)
	grouped := fx.CreatePin(ctx, owner.ID, "Grouped", models.PrivacyGroup, &group.ID)

	ownerID := testutil.IdentityFor(owner)
	memberID := testutil.IdentityFor(member)
	strangerID := testutil.IdentityFor(stranger)
	adminID := testutil.IdentityFor(admin)

	cases := []struct {
		name   string
		pinID  string
		caller *auth.Identity
		want   int
	}{
		{"public anonymous", public.ID.Hex(), nil, http.StatusOK},
		{"private anonymous", private.ID.Hex(), nil, http.StatusForbidden},
		{"private owner", private.ID.Hex(), &ownerID, http.StatusOK},
		{"private stranger", private.ID.Hex(), &strangerID, http.StatusForbidden},
		{"private admin", private.ID.Hex(), &adminID, http.StatusOK},
		{"group member", grouped.ID.Hex(), &memberID, http.StatusOK},
		{"group stranger", grouped.ID.Hex(), &strangerID, http.StatusForbidden},
		{"group non-member admin", grouped.ID.Hex(), &adminID, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := getPin(t, h, tc.pinID, tc.caller)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestHandleGet_DecoratesOwner(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Owner", "owner@example.com", models.RoleUser)
	pin := fx.CreatePin(ctx, owner.ID, "Public", models.PrivacyPublic, nil)

	rec := getPin(t, h, pin.ID.Hex(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		models.Pin
		Owner *models.UserSummary `json:"owner"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Owner == nil || resp.Owner.Name != "Owner" {
		t.Errorf("Owner summary: got %+v", resp.Owner)
	}
}

func TestHandleList(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Owner", "owner@example.com", models.RoleUser)
	member := fx.CreateUser(ctx, "Member", "member@example.com", models.RoleUser)
	group := fx.CreateGroup(ctx, "Hikers")
	fx.CreateMembership(ctx, owner.ID, group.ID, models.MembershipAdmin)
	fx.CreateMembership(ctx, member.ID, group.ID, models.MembershipMember)

	fx.CreatePin(ctx, owner.ID, "Public", models.PrivacyPublic, nil)
	fx.CreatePin(ctx, owner.ID, "Private", models.PrivacyPrivate, nil)
	fx.CreatePin(ctx, owner.ID, "Grouped", models.PrivacyGroup, &group.ID)

	list := func(caller *auth.Identity, query string) []models.Pin {
		req := httptest.NewRequest(http.MethodGet, "/pins"+query, nil)
		if caller != nil {
			req = testutil.WithIdentity(req, *caller)
		}
		rec := httptest.NewRecorder()
		h.HandleList(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
		}
		var out []models.Pin
		testutil.DecodeJSON(t, rec, &out)
		return out
	}

	if got := list(nil, ""); len(got) != 1 || got[0].Title != "Public" {
		t.Errorf("anonymous feed: got %d pins", len(got))
	}

	memberID := testutil.IdentityFor(member)
	if got := list(&memberID, ""); len(got) != 2 {
		t.Errorf("member feed: got %d pins, want 2", len(got))
	}

	ownerID := testutil.IdentityFor(owner)
	if got := list(&ownerID, ""); len(got) != 3 {
		t.Errorf("owner feed: got %d pins, want 3", len(got))
	}
	if got := list(&ownerID, "?privacy=private"); len(got) != 1 || got[0].Title != "Private" {
		t.Errorf("privacy filter: got %d pins", len(got))
	}

	req := httptest.NewRequest(http.MethodGet, "/pins?limit=bogus", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit: status = %d, want 400", rec.Code)
	}
}

func TestHandleMine(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Owner", "owner@example.com", models.RoleUser)
	other := fx.CreateUser(ctx, "Other", "other@example.com", models.RoleUser)
	fx.CreatePin(ctx, owner.ID, "Mine Public", models.PrivacyPublic, nil)
	fx.CreatePin(ctx, owner.ID, "Mine Private", models.PrivacyPrivate, nil)
	fx.CreatePin(ctx, other.ID, "Theirs", models.PrivacyPublic, nil)

	req := httptest.NewRequest(http.MethodGet, "/pins/me", nil)
	req = testutil.WithIdentity(req, testutil.IdentityFor(owner))
	rec := httptest.NewRecorder()
	h.HandleMine(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	var out []models.Pin
	testutil.DecodeJSON(t, rec, &out)
	if len(out) != 2 {
		t.Fatalf("got %d pins, want 2", len(out))
	}
	for _, p := range out {
		if p.OwnerID != owner.ID {
			t.Errorf("pin %q owned by %s", p.Title, p.OwnerID.Hex())
		}
	}
}

func patchPin(t *testing.T, h *pins.Handler, pinID string, id auth.Identity, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPatch, "/pins/"+pinID, body)
	req = testutil.WithChiURLParam(req, "id", pinID)
	req = testutil.WithIdentity(req, id)
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)
	return rec
}

func TestHandleUpdate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Owner", "owner@example.com", models.RoleUser)
	member := fx.CreateUser(ctx, "Member", "member@example.com", models.RoleUser)
	stranger := fx.CreateUser(ctx, "Stranger", "stranger@example.com", models.RoleUser)
	group := fx.CreateGroup(ctx, "Hikers")
	fx.CreateMembership(ctx, owner.ID, group.ID, models.MembershipAdmin)
	fx.CreateMembership(ctx, member.ID, group.ID, models.MembershipMember)

	t.Run("owner edits title", func(t *testing.T) {
		pin := fx.CreatePin(ctx, owner.ID, "Before", models.PrivacyPublic, nil)
		rec := patchPin(t, h, pin.ID.Hex(), testutil.IdentityFor(owner), map[string]any{
			"title": "After",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
		}
		var updated models.Pin
		testutil.DecodeJSON(t, rec, &updated)
		if updated.Title != "After" {
			t.Errorf("Title: got %q", updated.Title)
		}
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		pin := fx.CreatePin(ctx, owner.ID, "Keep", models.PrivacyPublic, nil)
		rec := patchPin(t, h, pin.ID.Hex(), testutil.IdentityFor(stranger), map[string]any{
			"title": "Hijacked",
		})
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("any member edits a group pin", func(t *testing.T) {
		pin := fx.CreatePin(ctx, owner.ID, "Shared", models.PrivacyGroup, &group.ID)
		rec := patchPin(t, h, pin.ID.Hex(), testutil.IdentityFor(member), map[string]any{
			"description": "Updated by another member",
		})
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
		}
	})

	t.Run("group to public clears group", func(t *testing.T) {
		pin := fx.CreatePin(ctx, owner.ID, "Was Grouped", models.PrivacyGroup, &group.ID)
		rec := patchPin(t, h, pin.ID.Hex(), testutil.IdentityFor(owner), map[string]any{
			"privacy": models.PrivacyPublic,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
		}
		var updated models.Pin
		testutil.DecodeJSON(t, rec, &updated)
		if updated.Privacy != models.PrivacyPublic || updated.GroupID != nil {
			t.Errorf("got privacy=%q group=%v", updated.Privacy, updated.GroupID)
		}
	})

	t.Run("public to group requires membership", func(t *testing.T) {
		pin := fx.CreatePin(ctx, stranger.ID, "Loner", models.PrivacyPublic, nil)
		rec := patchPin(t, h, pin.ID.Hex(), testutil.IdentityFor(stranger), map[string]any{
			"privacy":  models.PrivacyGroup,
			"group_id": group.ID.Hex(),
		})
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("lat without lng rejected", func(t *testing.T) {
		pin := fx.CreatePin(ctx, owner.ID, "Coords", models.PrivacyPublic, nil)
		rec := patchPin(t, h, pin.ID.Hex(), testutil.IdentityFor(owner), map[string]any{
			"lat": 10.0,
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func deletePin(t *testing.T, h *pins.Handler, pinID string, id auth.Identity) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, "/pins/"+pinID, nil)
	req = testutil.WithChiURLParam(req, "id", pinID)
	req = testutil.WithIdentity(req, id)
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)
	return rec
}

func TestHandleDelete(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Owner", "owner@example.com", models.RoleUser)
	stranger := fx.CreateUser(ctx, "Stranger", "stranger@example.com", models.RoleUser)
	admin := fx.CreateAdmin(ctx, "Admin", "admin@example.com")

	t.Run("stranger forbidden", func(t *testing.T) {
		pin := fx.CreatePin(ctx, owner.ID, "Safe", models.PrivacyPublic, nil)
		if rec := deletePin(t, h, pin.ID.Hex(), testutil.IdentityFor(stranger)); rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("owner delete cascades", func(t *testing.T) {
		pin := fx.CreatePin(ctx, owner.ID, "Doomed", models.PrivacyPublic, nil)
		comment := fx.CreateComment(ctx, stranger.ID, pin.ID, "So long")
		fx.CreateReaction(ctx, stranger.ID, models.TargetPin, pin.ID, models.ReactionLike)
		fx.CreateReaction(ctx, stranger.ID, models.TargetComment, comment.ID, models.ReactionLike)

		rec := deletePin(t, h, pin.ID.Hex(), testutil.IdentityFor(owner))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204 (body: %s)", rec.Code, rec.Body.String())
		}

		db := fx.DB()
		for _, coll := range []string{"pins", "comments", "reactions"} {
			n, err := db.Collection(coll).CountDocuments(context.Background(), bson.M{})
			if err != nil {
				t.Fatalf("count %s: %v", coll, err)
			}
			if n != 0 {
				t.Errorf("%s: %d documents left after delete", coll, n)
			}
		}
	})

	t.Run("admin deletes someone else's pin", func(t *testing.T) {
		pin := fx.CreatePin(ctx, owner.ID, "Moderated", models.PrivacyPrivate, nil)
		if rec := deletePin(t, h, pin.ID.Hex(), testutil.IdentityFor(admin)); rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204 (body: %s)", rec.Code, rec.Body.String())
		}
	})

	t.Run("missing pin", func(t *testing.T) {
		if rec := deletePin(t, h, "aaaaaaaaaaaaaaaaaaaaaaaa", testutil.IdentityFor(owner)); rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandleUploadMedia_NotConfigured(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "Owner", "owner@example.com", models.RoleUser)
	pin := fx.CreatePin(ctx, owner.ID, "Photogenic", models.PrivacyPublic, nil)

	req := httptest.NewRequest(http.MethodPost, "/pins/"+pin.ID.Hex()+"/media", nil)
	req = testutil.WithChiURLParam(req, "id", pin.ID.Hex())
	req = testutil.WithIdentity(req, testutil.IdentityFor(owner))
	rec := httptest.NewRecorder()
	h.HandleUploadMedia(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
