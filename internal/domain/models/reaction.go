// internal/domain/models/reaction.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reaction targets.
const (
	TargetPin     = "pin"
	TargetComment = "comment"
)

// Reaction types.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// ValidTargetType reports whether t names a reactable/reportable entity.
func ValidTargetType(t string) bool {
	return t == TargetPin || t == TargetComment
}

// ValidReactionType reports whether t is "like" or "dislike".
func ValidReactionType(t string) bool {
	return t == ReactionLike || t == ReactionDislike
}

// Reaction is a like/dislike on a pin or comment.
// Invariant: unique per (user_id, target_type, target_id) — switching type
// overwrites the document in place rather than creating a second record.
type Reaction struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	TargetType string             `bson:"target_type" json:"target_type"` // "pin" | "comment"
	TargetID   primitive.ObjectID `bson:"target_id" json:"target_id"`
	Type       string             `bson:"type" json:"type"` // "like" | "dislike"

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Tally is the aggregate reaction count for one target.
type Tally struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}
