// internal/app/policy/grouppolicy.go
package grouppolicy

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

// IsMember reports whether the user belongs to the group in any role,
// according to the authoritative group_memberships collection.
func IsMember(ctx context.Context, db *mongo.Database, groupID, userID primitive.ObjectID) (bool, error) {
	n, err := db.Collection("group_memberships").CountDocuments(ctx, bson.M{
		"group_id": groupID,
		"user_id":  userID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IsGroupAdmin reports whether the user holds the group admin role in the
// group. Group admin is a per-group role and independent of the
// application admin role.
func IsGroupAdmin(ctx context.Context, db *mongo.Database, groupID, userID primitive.ObjectID) (bool, error) {
	n, err := db.Collection("group_memberships").CountDocuments(ctx, bson.M{
		"group_id": groupID,
		"user_id":  userID,
		"role":     models.MembershipAdmin,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CanManage reports whether the caller may update the group, regenerate
// its invite token, kick or promote members, or delete it:
//   - application admins always can
//   - otherwise the caller must be a group admin of this group
//
// Returns an error if the membership lookup fails, allowing callers to
// distinguish "not authorized" (false, nil) from "database error".
func CanManage(ctx context.Context, db *mongo.Database, caller *auth.Identity, groupID primitive.ObjectID) (bool, error) {
	if caller == nil {
		return false, nil
	}
	if caller.IsAdmin() {
		return true, nil
	}
	return IsGroupAdmin(ctx, db, groupID, caller.UserID)
}

// CanCreatePin reports whether the caller may create a pin scoped to the
// group. Membership is required; the application admin role grants
// nothing here.
func CanCreatePin(ctx context.Context, db *mongo.Database, caller *auth.Identity, groupID primitive.ObjectID) (bool, error) {
	if caller == nil {
		return false, nil
	}
	return IsMember(ctx, db, groupID, caller.UserID)
}
