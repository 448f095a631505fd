// internal/domain/models/groupmembership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership roles within a group. An admin membership is also a member for
// every membership test, so the admins-are-a-subset-of-members invariant is
// structural: there is exactly one doc per (user, group) and its role says
// which standing the user holds.
const (
	MembershipMember = "member"
	MembershipAdmin  = "admin"
)

// GroupMembership is the authoritative join between users and groups.
// Exactly one document per (user_id, group_id); role is a scalar
// ("admin"|"member") and promoting updates the doc in place.
type GroupMembership struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID   primitive.ObjectID `bson:"group_id" json:"group_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
