package revokedtokenstore_test

import (
	"testing"
	"time"

	revokedtokenstore "github.com/dalemusser/pindrop/internal/app/store/revokedtokens"
	"github.com/dalemusser/pindrop/internal/testutil"
)

func TestStore_RevokeAndCheck(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := revokedtokenstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	jti := "token-abc"

	revoked, err := store.IsRevoked(ctx, jti)
	if err != nil {
		t.Fatalf("IsRevoked failed: %v", err)
	}
	if revoked {
		t.Error("token should not be revoked yet")
	}

	if err := store.Revoke(ctx, jti, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	revoked, err = store.IsRevoked(ctx, jti)
	if err != nil {
		t.Fatalf("IsRevoked failed: %v", err)
	}
	if !revoked {
		t.Error("token should be revoked")
	}

	// Revoking again is a no-op.
	if err := store.Revoke(ctx, jti, time.Now().Add(time.Hour)); err != nil {
		t.Errorf("second Revoke failed: %v", err)
	}
}

func TestStore_IsRevoked_OtherToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := revokedtokenstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Revoke(ctx, "revoked-one", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	revoked, err := store.IsRevoked(ctx, "someone-else")
	if err != nil {
		t.Fatalf("IsRevoked failed: %v", err)
	}
	if revoked {
		t.Error("unrelated token must not read as revoked")
	}
}
