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

func (c *Client) CreateTestimonial(ctx context.Context, t *models.Testimonial) (*models.Testimonial, error) {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	res, err := c.collection(colTestimonials).InsertOne(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to create testimonial: %w", err)
	}
	t.ID = res.InsertedID.(primitive.ObjectID)
	return t, nil
}

func (c *Client) UpdateTestimonial(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Testimonial, error) {
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Testimonial
	err := c.collection(colTestimonials).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&t)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (c *Client) DeleteTestimonial(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.collection(colTestimonials).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *Client) ListTestimonials(ctx context.Context, activeOnly bool) ([]models.Testimonial, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := c.collection(colTestimonials).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	defer cur.Close(ctx)

	testimonials := []models.Testimonial{}
	if err := cur.All(ctx, &testimonials); err != nil {
		return nil, fmt.Errorf("failed to decode testimonials: %w", err)
	}
	return testimonials, nil
}
