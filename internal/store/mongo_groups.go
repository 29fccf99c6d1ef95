package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DevanshiArora1/learnlink/internal/domain"
)

type MongoGroups struct {
	coll *mongo.Collection
}

func NewMongoGroups(db *mongo.Database) *MongoGroups {
	return &MongoGroups{coll: db.Collection("groups")}
}

func (s *MongoGroups) Insert(ctx context.Context, g *domain.Group) error {
	if _, err := s.coll.InsertOne(ctx, g); err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

func (s *MongoGroups) FindByID(ctx context.Context, id domain.GroupID) (*domain.Group, error) {
	var g domain.Group
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find group: %w", err)
	}
	return &g, nil
}

func (s *MongoGroups) FindAll(ctx context.Context) ([]*domain.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer cur.Close(ctx)

	groups := []*domain.Group{}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("decode groups: %w", err)
	}
	return groups, nil
}

// AddMember uses $addToSet so concurrent joins cannot duplicate an entry.
func (s *MongoGroups) AddMember(ctx context.Context, id domain.GroupID, uid domain.UserID) (*domain.Group, error) {
	return s.updateMembership(ctx, id, bson.M{
		"$addToSet": bson.M{"joinedUsers": uid},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (s *MongoGroups) RemoveMember(ctx context.Context, id domain.GroupID, uid domain.UserID) (*domain.Group, error) {
	return s.updateMembership(ctx, id, bson.M{
		"$pull": bson.M{"joinedUsers": uid},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (s *MongoGroups) updateMembership(ctx context.Context, id domain.GroupID, update bson.M) (*domain.Group, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var g domain.Group
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update membership: %w", err)
	}
	return &g, nil
}

func (s *MongoGroups) Delete(ctx context.Context, id domain.GroupID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
