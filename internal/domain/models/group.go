// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a named collection of users with an invite mechanism.
//
// NOTE:
//   - Admin/member lists are not embedded on Group.
//     All membership is stored in the group_memberships collection.
//   - InviteToken is an opaque secret; possessing a current token is what
//     authorizes a join. It is regenerated on demand and never listed in
//     group responses except to members requesting an invite.
type Group struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Avatar      string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	InviteToken string             `bson:"invite_token" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// GroupSummary is the display form embedded in pin responses.
type GroupSummary struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

// Summary reduces a Group to its display form.
func (g Group) Summary() GroupSummary {
	return GroupSummary{ID: g.ID, Name: g.Name, Avatar: g.Avatar}
}
