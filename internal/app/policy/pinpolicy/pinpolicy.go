// internal/app/policy/pinpolicy.go
package pinpolicy

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

// isMember consults the authoritative group_memberships collection.
func isMember(ctx context.Context, db *mongo.Database, groupID, userID primitive.ObjectID) (bool, error) {
	n, err := db.Collection("group_memberships").CountDocuments(ctx, bson.M{
		"group_id": groupID,
		"user_id":  userID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CanView reports whether the caller may read the pin. caller is nil for
// anonymous requests.
//
//   - public: anyone, including anonymous callers
//   - private: the owner or an application admin
//   - group: group members only; the application admin role grants
//     nothing here without membership
//
// Returns an error only when the membership lookup fails, so callers can
// distinguish "not authorized" (false, nil) from "database error".
func CanView(ctx context.Context, db *mongo.Database, pin *models.Pin, caller *auth.Identity) (bool, error) {
	switch pin.Privacy {
	case models.PrivacyPublic:
		return true, nil
	case models.PrivacyPrivate:
		if caller == nil {
			return false, nil
		}
		return caller.UserID == pin.OwnerID || caller.IsAdmin(), nil
	case models.PrivacyGroup:
		if caller == nil || pin.GroupID == nil {
			return false, nil
		}
		return isMember(ctx, db, *pin.GroupID, caller.UserID)
	default:
		return false, nil
	}
}

// MutatePolicy selects who may edit a group pin.
type MutatePolicy int

const (
	// MutateAnyMember lets every member of the pin's group edit it.
	MutateAnyMember MutatePolicy = iota
	// MutateOwnerOnly restricts group-pin edits to the pin's owner.
	MutateOwnerOnly
)

// Mutation is the group-pin edit policy consulted by CanMutate.
var Mutation = MutateAnyMember

// CanMutate reports whether the caller may update the pin's fields.
// Public and private pins follow owner-or-admin; group pins follow the
// Mutation policy (any group member by default).
func CanMutate(ctx context.Context, db *mongo.Database, pin *models.Pin, caller *auth.Identity) (bool, error) {
	if caller == nil {
		return false, nil
	}
	if pin.Privacy == models.PrivacyGroup {
		if pin.GroupID == nil {
			return false, nil
		}
		if Mutation == MutateOwnerOnly {
			return caller.UserID == pin.OwnerID, nil
		}
		return isMember(ctx, db, *pin.GroupID, caller.UserID)
	}
	return caller.UserID == pin.OwnerID || caller.IsAdmin(), nil
}

// CanDelete reports whether the caller may delete the pin. Deletion is
// owner-or-admin across every privacy tier: an admin may remove a group
// pin they cannot read.
func CanDelete(pin *models.Pin, caller *auth.Identity) bool {
	if caller == nil {
		return false
	}
	return caller.UserID == pin.OwnerID || caller.IsAdmin()
}
