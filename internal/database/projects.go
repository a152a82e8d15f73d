package database

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"estate-cms-backend/internal/models"
)

func (c *Client) CreateProject(ctx context.Context, p *models.Project) (*models.Project, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Gallery == nil {
		p.Gallery = []string{}
	}

	res, err := c.collection(colProjects).InsertOne(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return p, nil
}

func (c *Client) GetProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	err := c.collection(colProjects).FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

// UpdateProject applies a partial $set and returns the updated
// document.
func (c *Client) UpdateProject(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Project, error) {
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Project
	err := c.collection(colProjects).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&p)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (c *Client) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.collection(colProjects).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListProjects returns one page of active projects matching the
// filter, newest first, plus the total match count.
func (c *Client) ListProjects(ctx context.Context, f models.ProjectFilter) ([]models.Project, int64, error) {
	filter := bson.M{"isActive": true}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.PropertyType != "" {
		filter["propertyType"] = f.PropertyType
	}
	if f.Featured != nil {
		filter["featured"] = *f.Featured
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if f.Search != "" {
		field := fmt.Sprintf("translations.%s.title", f.Lang)
		filter[field] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
	}

	coll := c.collection(colProjects)
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	defer cur.Close(ctx)

	projects := []models.Project{}
	if err := cur.All(ctx, &projects); err != nil {
		return nil, 0, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, total, nil
}
