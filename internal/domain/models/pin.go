// internal/domain/models/pin.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Privacy tiers for a pin.
const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
	PrivacyGroup   = "group"
)

// MaxPinImages caps the ordered image list on a pin.
const MaxPinImages = 10

// ValidPrivacy reports whether p is one of the three privacy tiers.
func ValidPrivacy(p string) bool {
	return p == PrivacyPublic || p == PrivacyPrivate || p == PrivacyGroup
}

// Location is a WGS84 point.
type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Media holds the uploaded asset URLs for a pin. Images keep upload order.
type Media struct {
	Images []string `bson:"images,omitempty" json:"images"`
	Video  string   `bson:"video,omitempty" json:"video,omitempty"`
}

// Pin is a geo-located post with an optional media set and a privacy tier.
// Invariant: GroupID is set iff Privacy == "group"; len(Media.Images) <= 10.
type Pin struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	OwnerID     primitive.ObjectID  `bson:"owner_id" json:"owner_id"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Location    Location            `bson:"location" json:"location"`
	Privacy     string              `bson:"privacy" json:"privacy"`
	GroupID     *primitive.ObjectID `bson:"group_id,omitempty" json:"group_id,omitempty"`
	Media       Media               `bson:"media" json:"media"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
