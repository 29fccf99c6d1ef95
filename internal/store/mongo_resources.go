package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DevanshiArora1/learnlink/internal/domain"
)

type MongoResources struct {
	coll *mongo.Collection
}

func NewMongoResources(db *mongo.Database) *MongoResources {
	return &MongoResources{coll: db.Collection("resources")}
}

func (s *MongoResources) Insert(ctx context.Context, r *domain.Resource) error {
	if _, err := s.coll.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

func (s *MongoResources) FindByID(ctx context.Context, id domain.ResourceID) (*domain.Resource, error) {
	var r domain.Resource
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find resource: %w", err)
	}
	return &r, nil
}

func (s *MongoResources) FindAll(ctx context.Context) ([]*domain.Resource, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer cur.Close(ctx)

	resources := []*domain.Resource{}
	if err := cur.All(ctx, &resources); err != nil {
		return nil, fmt.Errorf("decode resources: %w", err)
	}
	return resources, nil
}

func (s *MongoResources) Like(ctx context.Context, id domain.ResourceID) (*domain.Resource, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var r domain.Resource
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"likes": 1}}, opts).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("like resource: %w", err)
	}
	return &r, nil
}

func (s *MongoResources) Delete(ctx context.Context, id domain.ResourceID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
