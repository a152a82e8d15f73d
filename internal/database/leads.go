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

func (c *Client) CreateLead(ctx context.Context, l *models.Lead) (*models.Lead, error) {
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	l.Status = models.LeadStatusNew

	res, err := c.collection(colLeads).InsertOne(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	l.ID = res.InsertedID.(primitive.ObjectID)
	return l, nil
}

func (c *Client) UpdateLeadStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Lead, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var l models.Lead
	err := c.collection(colLeads).
		FindOneAndUpdate(ctx, bson.M{"_id": id},
			bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}, opts).
		Decode(&l)
	if err != nil {
		return nil, mapErr(err)
	}
	return &l, nil
}

func (c *Client) ListLeads(ctx context.Context, page, limit int) ([]models.Lead, int64, error) {
	coll := c.collection(colLeads)
	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count leads: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cur, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leads: %w", err)
	}
	defer cur.Close(ctx)

	leads := []models.Lead{}
	if err := cur.All(ctx, &leads); err != nil {
		return nil, 0, fmt.Errorf("failed to decode leads: %w", err)
	}
	return leads, total, nil
}
