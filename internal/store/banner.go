// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"courseadmin/internal/models"
)

// BannerCollection is the MongoDB collection holding banners.
const BannerCollection = "banners"

var (
	// ErrBannerNotFound is returned when a mutation targets a missing banner.
	ErrBannerNotFound = errors.New("banner not found")
	// ErrInvalidID is returned for ids that are not valid ObjectIDs.
	ErrInvalidID = errors.New("invalid banner id")
)

// BannerStore handles banner persistence in MongoDB.
type BannerStore struct {
	coll *mongo.Collection
}

// NewBannerStore creates a new BannerStore on db's banners collection.
func NewBannerStore(db *mongo.Database) *BannerStore {
	return &BannerStore{coll: db.Collection(BannerCollection)}
}

// EnsureIndexes creates the index backing the newest-first listing.
func (s *BannerStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create banner index: %w", err)
	}
	return nil
}

// ParseID converts a hex string into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// List returns every banner, newest first.
func (s *BannerStore) List(ctx context.Context) ([]models.Banner, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find banners: %w", err)
	}
	defer cur.Close(ctx)

	banners := []models.Banner{}
	if err := cur.All(ctx, &banners); err != nil {
		return nil, fmt.Errorf("decode banners: %w", err)
	}
	return banners, nil
}

// Count returns the number of stored banners without loading them.
func (s *BannerStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count banners: %w", err)
	}
	return n, nil
}

// FindByID retrieves a banner by its hex id. Returns nil, nil if not found.
func (s *BannerStore) FindByID(ctx context.Context, id string) (*models.Banner, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var b models.Banner
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find banner: %w", err)
	}
	return &b, nil
}

// Create inserts a banner and fills in its id and timestamps.
func (s *BannerStore) Create(ctx context.Context, b *models.Banner) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	b.ID = primitive.NewObjectID()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("insert banner: %w", err)
	}
	return nil
}

// Update replaces a banner's editable fields.
func (s *BannerStore) Update(ctx context.Context, b *models.Banner) error {
	b.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	set := bson.M{
		"title":       b.Title,
		"description": b.Description,
		"link":        b.Link,
		"image":       b.Image,
		"thumbnail":   b.Thumbnail,
		"status":      b.Status,
		"updatedAt":   b.UpdatedAt,
	}
	return s.updateByID(ctx, b.ID, set)
}

// SetStatus toggles a banner's visibility.
func (s *BannerStore) SetStatus(ctx context.Context, id string, status bool) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	return s.updateByID(ctx, oid, bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
	})
}

func (s *BannerStore) updateByID(ctx context.Context, oid primitive.ObjectID, set bson.M) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update banner: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrBannerNotFound
	}
	return nil
}

// Delete removes a banner by its hex id.
func (s *BannerStore) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrBannerNotFound
	}
	return nil
}
