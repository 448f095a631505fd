package authapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/features/authapi"
	revokedtokenstore "github.com/dalemusser/pindrop/internal/app/store/revokedtokens"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/domain/models"
	"github.com/dalemusser/pindrop/internal/testutil"
)

func newTestHandler(t *testing.T) *authapi.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tokens := auth.NewManager("test-secret", time.Hour, revokedtokenstore.New(db))
	return authapi.NewHandler(db, zap.NewNop(), tokens)
}

func signup(t *testing.T, h *authapi.Handler, email, password, name string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/signup", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	})
	rec := httptest.NewRecorder()
	h.HandleSignup(rec, req)
	return rec
}

func TestSignup(t *testing.T) {
	h := newTestHandler(t)

	rec := signup(t, h, "alice@example.com", "hunter2hunter2", "Alice")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Token == "" {
		t.Error("expected a bearer token")
	}
	if resp.User.Email != "alice@example.com" {
		t.Errorf("Email: got %q", resp.User.Email)
	}
	if resp.User.Role != models.RoleUser {
		t.Errorf("Role: got %q", resp.User.Role)
	}
}

func TestSignup_Validation(t *testing.T) {
	h := newTestHandler(t)

	cases := []struct {
		name     string
		email    string
		password string
		userName string
	}{
		{"bad email", "not-an-email", "hunter2hunter2", "Alice"},
		{"short password", "alice@example.com", "short", "Alice"},
		{"missing name", "alice@example.com", "hunter2hunter2", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := signup(t, h, tc.email, tc.password, tc.userName)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	h := newTestHandler(t)

	if rec := signup(t, h, "dup@example.com", "hunter2hunter2", "First"); rec.Code != http.StatusCreated {
		t.Fatalf("first signup failed: %d", rec.Code)
	}
	rec := signup(t, h, "dup@example.com", "hunter2hunter2", "Second")
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	h := newTestHandler(t)
	signup(t, h, "bob@example.com", "correct-horse-battery", "Bob")

	t.Run("valid credentials", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "bob@example.com",
			"password": "correct-horse-battery",
		})
		rec := httptest.NewRecorder()
		h.HandleLogin(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
		}
		var resp struct {
			Token string `json:"token"`
		}
		testutil.DecodeJSON(t, rec, &resp)
		if resp.Token == "" {
			t.Error("expected a bearer token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "bob@example.com",
			"password": "wrong",
		})
		rec := httptest.NewRecorder()
		h.HandleLogin(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "whatever",
		})
		rec := httptest.NewRecorder()
		h.HandleLogin(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestLogin_RateLimited(t *testing.T) {
	h := newTestHandler(t)
	signup(t, h, "victim@example.com", "correct-horse-battery", "Victim")

	attempt := func() *httptest.ResponseRecorder {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "victim@example.com",
			"password": "wrong",
		})
		rec := httptest.NewRecorder()
		h.HandleLogin(rec, req)
		return rec
	}

	// The per-email window allows five attempts before blocking.
	for i := 0; i < 5; i++ {
		if rec := attempt(); rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status = %d, want 401", i+1, rec.Code)
		}
	}
	if rec := attempt(); rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	h := newTestHandler(t)

	rec := signup(t, h, "carol@example.com", "hunter2hunter2", "Carol")
	var resp struct {
		Token string `json:"token"`
	}
	testutil.DecodeJSON(t, rec, &resp)

	// Token works before logout.
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if _, _, err := h.Tokens.Verify(ctx, resp.Token); err != nil {
		t.Fatalf("Verify before logout: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	out := httptest.NewRecorder()
	h.HandleLogout(out, req)
	if out.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204 (body: %s)", out.Code, out.Body.String())
	}

	// Token is dead after logout.
	if _, _, err := h.Tokens.Verify(ctx, resp.Token); err == nil {
		t.Error("expected Verify to fail after logout")
	}

	// Logging out again (say, from a second tab) is a no-op success.
	out2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req2.Header.Set("Authorization", "Bearer "+resp.Token)
	h.HandleLogout(out2, req2)
	if out2.Code != http.StatusNoContent {
		t.Errorf("second logout status = %d, want 204", out2.Code)
	}
}
