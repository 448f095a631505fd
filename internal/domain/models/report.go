// internal/domain/models/report.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report statuses. Reports are append/update-only: they open, they resolve,
// they are never deleted.
const (
	ReportOpen     = "open"
	ReportResolved = "resolved"
)

// Report is a user-filed complaint about a pin or comment.
type Report struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReporterID       primitive.ObjectID `bson:"reporter_id" json:"reporter_id"`
	TargetType       string             `bson:"target_type" json:"target_type"` // "pin" | "comment"
	TargetID         primitive.ObjectID `bson:"target_id" json:"target_id"`
	Reason           string             `bson:"reason" json:"reason"`
	Status           string             `bson:"status" json:"status"` // "open" | "resolved"
	ResolutionReason string             `bson:"resolution_reason,omitempty" json:"resolution_reason,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
