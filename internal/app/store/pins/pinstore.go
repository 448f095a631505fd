package pinstore

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/pindrop/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("pins")}
}

// Create inserts a new pin. Validation happens in the feature layer.
func (s *Store) Create(ctx context.Context, p models.Pin) (models.Pin, error) {
	p.ID = primitive.NewObjectID()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Pin{}, err
	}
	return p, nil
}

// GetByID loads a pin by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Pin, error) {
	var p models.Pin
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Viewer describes who is asking for a pin feed. The zero value is an
// anonymous caller.
type Viewer struct {
	UserID   primitive.ObjectID
	IsAdmin  bool
	GroupIDs []primitive.ObjectID
}

// Anonymous reports whether the viewer is unauthenticated.
func (v Viewer) Anonymous() bool { return v.UserID.IsZero() }

// visibilityFilter builds the single query matching every pin the viewer
// may see. Membership is resolved once by the caller and passed in as
// GroupIDs, so one query covers the whole feed.
func visibilityFilter(v Viewer) bson.M {
	if v.Anonymous() {
		return bson.M{"privacy": models.PrivacyPublic}
	}

	or := []bson.M{
		{"privacy": models.PrivacyPublic},
	}
	if v.IsAdmin {
		// Admins see every private pin, but group pins still require
		// membership.
		or = append(or, bson.M{"privacy": models.PrivacyPrivate})
	} else {
		or = append(or, bson.M{"privacy": models.PrivacyPrivate, "owner_id": v.UserID})
	}
	if len(v.GroupIDs) > 0 {
		or = append(or, bson.M{
			"privacy":  models.PrivacyGroup,
			"group_id": bson.M{"$in": v.GroupIDs},
		})
	}
	return bson.M{"$or": or}
}

// ListOptions narrows and pages a pin feed.
type ListOptions struct {
	// Privacy restricts the feed to one privacy tier when non-empty.
	Privacy string
	// GroupID restricts the feed to one group's pins when non-nil.
	GroupID *primitive.ObjectID
	// Search matches pin titles case-insensitively when non-empty.
	Search string
	Limit  int64
	Offset int64
}

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// ListVisible returns the pins the viewer may see, newest first.
func (s *Store) ListVisible(ctx context.Context, v Viewer, opts ListOptions) ([]models.Pin, error) {
	filter := visibilityFilter(v)
	if opts.Privacy != "" {
		filter = bson.M{"$and": []bson.M{filter, {"privacy": opts.Privacy}}}
	}
	if opts.GroupID != nil {
		filter = bson.M{"$and": []bson.M{filter, {"group_id": *opts.GroupID}}}
	}
	if opts.Search != "" {
		filter = bson.M{"$and": []bson.M{filter, {"title": primitive.Regex{
			Pattern: regexp.QuoteMeta(opts.Search),
			Options: "i",
		}}}}
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	cur, err := s.c.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var pins []models.Pin
	if err := cur.All(ctx, &pins); err != nil {
		return nil, err
	}
	return pins, nil
}

// ListByOwner returns all of one user's pins, newest first.
func (s *Store) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Pin, error) {
	cur, err := s.c.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var pins []models.Pin
	if err := cur.All(ctx, &pins); err != nil {
		return nil, err
	}
	return pins, nil
}

// Update holds the mutable pin fields. Nil fields are left untouched.
// AddImages are appended to the existing image list, capped at
// models.MaxPinImages.
type Update struct {
	Title       *string
	Description *string
	Location    *models.Location
	Privacy     *string
	GroupID     *primitive.ObjectID
	ClearGroup  bool
	AddImages   []string
	Video       *string
}

// Apply performs a partial update and returns the updated pin.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Pin, error) {
	set := bson.M{"updated_at": time.Now()}
	unset := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Privacy != nil {
		set["privacy"] = *upd.Privacy
	}
	if upd.GroupID != nil {
		set["group_id"] = *upd.GroupID
	} else if upd.ClearGroup {
		unset["group_id"] = ""
	}
	if upd.Video != nil {
		set["media.video"] = *upd.Video
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if len(upd.AddImages) > 0 {
		update["$push"] = bson.M{"media.images": bson.M{
			"$each":  upd.AddImages,
			"$slice": models.MaxPinImages,
		}}
	}

	var p models.Pin
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a pin record. Comments and reactions on the pin are
// cleaned up by the caller.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IDsByGroup returns the IDs of every pin belonging to a group. Used for
// cascading cleanup when a group is deleted.
func (s *Store) IDsByGroup(ctx context.Context, groupID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}

// DeleteByIDs removes a batch of pins.
func (s *Store) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}
