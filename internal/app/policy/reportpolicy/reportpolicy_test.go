package reportpolicy_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/pindrop/internal/app/policy/reportpolicy"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

func TestCanCreate(t *testing.T) {
	if reportpolicy.CanCreate(nil) {
		t.Error("anonymous callers must not file reports")
	}
	user := &auth.Identity{UserID: primitive.NewObjectID(), Role: models.RoleUser}
	if !reportpolicy.CanCreate(user) {
		t.Error("any authenticated user may file a report")
	}
}

func TestCanModerate(t *testing.T) {
	if reportpolicy.CanModerate(nil) {
		t.Error("anonymous callers must not moderate")
	}
	user := &auth.Identity{UserID: primitive.NewObjectID(), Role: models.RoleUser}
	if reportpolicy.CanModerate(user) {
		t.Error("regular users must not moderate")
	}
	admin := &auth.Identity{UserID: primitive.NewObjectID(), Role: models.RoleAdmin}
	if !reportpolicy.CanModerate(admin) {
		t.Error("admins moderate reports")
	}
}
