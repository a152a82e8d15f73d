package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"estate-cms-backend/internal/models"
)

func (c *Client) CreateService(ctx context.Context, s *models.Service) (*models.Service, error) {
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	res, err := c.collection(colServices).InsertOne(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	return s, nil
}

func (c *Client) GetService(ctx context.Context, id primitive.ObjectID) (*models.Service, error) {
	var s models.Service
	err := c.collection(colServices).FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func (c *Client) UpdateService(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Service, error) {
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var s models.Service
	err := c.collection(colServices).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&s)
	if err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func (c *Client) DeleteService(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.collection(colServices).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *Client) ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "displayOrder", Value: 1},
		{Key: "createdAt", Value: -1},
	})
	cur, err := c.collection(colServices).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cur.Close(ctx)

	services := []models.Service{}
	if err := cur.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}
