package users_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/features/users"
	"github.com/dalemusser/pindrop/internal/domain/models"
	"github.com/dalemusser/pindrop/internal/testutil"
)

func newTestHandler(t *testing.T) (*users.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return users.NewHandler(db, zap.NewNop(), nil), testutil.NewFixtures(t, db)
}

func TestHandleMe(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req = testutil.WithIdentity(req, testutil.IdentityFor(user))
	rec := httptest.NewRecorder()
	h.HandleMe(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	var raw map[string]any
	testutil.DecodeJSON(t, rec, &raw)
	if raw["email"] != "alice@example.com" {
		t.Errorf("email: got %v", raw["email"])
	}
	if _, ok := raw["password_hash"]; ok {
		t.Error("password hash must not appear in profile responses")
	}
}

func TestHandleUpdateMe(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Alice", "alice@example.com", models.RoleUser)

	req := testutil.NewJSONRequest(t, http.MethodPatch, "/users/me", map[string]string{
		"name": "  Alice B  ",
	})
	req = testutil.WithIdentity(req, testutil.IdentityFor(user))
	rec := httptest.NewRecorder()
	h.HandleUpdateMe(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	var updated models.User
	testutil.DecodeJSON(t, rec, &updated)
	if updated.Name != "Alice B" {
		t.Errorf("Name: got %q", updated.Name)
	}

	// Blank names are refused.
	req = testutil.NewJSONRequest(t, http.MethodPatch, "/users/me", map[string]string{"name": "  "})
	req = testutil.WithIdentity(req, testutil.IdentityFor(user))
	rec = httptest.NewRecorder()
	h.HandleUpdateMe(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank name: status = %d, want 400", rec.Code)
	}
}

func TestHandleList(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateUser(ctx, "Alice", "alice@example.com", models.RoleUser)
	fx.CreateUser(ctx, "Bob", "bob@example.com", models.RoleUser)
	admin := fx.CreateAdmin(ctx, "Admin", "admin@example.com")

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req = testutil.WithIdentity(req, testutil.IdentityFor(admin))
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	var out []models.User
	testutil.DecodeJSON(t, rec, &out)
	if len(out) != 3 {
		t.Errorf("got %d users, want 3", len(out))
	}
}

func TestHandleDeleteMe(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Leaver", "leaver@example.com", models.RoleUser)

	del := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/users/me", nil)
		req = testutil.WithIdentity(req, testutil.IdentityFor(user))
		rec := httptest.NewRecorder()
		h.HandleDeleteMe(rec, req)
		return rec
	}

	if rec := del(); rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204 (body: %s)", rec.Code, rec.Body.String())
	}
	if rec := del(); rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", rec.Code)
	}
}

func TestHandleDelete(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	target := fx.CreateUser(ctx, "Target", "target@example.com", models.RoleUser)
	admin := fx.CreateAdmin(ctx, "Admin", "admin@example.com")

	del := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/users/"+id, nil)
		req = testutil.WithChiURLParam(req, "id", id)
		req = testutil.WithIdentity(req, testutil.IdentityFor(admin))
		rec := httptest.NewRecorder()
		h.HandleDelete(rec, req)
		return rec
	}

	if rec := del(admin.ID.Hex()); rec.Code != http.StatusBadRequest {
		t.Errorf("self-delete: status = %d, want 400", rec.Code)
	}
	if rec := del(target.ID.Hex()); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d, want 204 (body: %s)", rec.Code, rec.Body.String())
	}
	if rec := del(target.ID.Hex()); rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", rec.Code)
	}
}
