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

func (c *Client) CreateTeamMember(ctx context.Context, m *models.TeamMember) (*models.TeamMember, error) {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	res, err := c.collection(colTeam).InsertOne(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}
	m.ID = res.InsertedID.(primitive.ObjectID)
	return m, nil
}

func (c *Client) GetTeamMember(ctx context.Context, id primitive.ObjectID) (*models.TeamMember, error) {
	var m models.TeamMember
	err := c.collection(colTeam).FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		return nil, mapErr(err)
	}
	return &m, nil
}

func (c *Client) UpdateTeamMember(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.TeamMember, error) {
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m models.TeamMember
	err := c.collection(colTeam).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&m)
	if err != nil {
		return nil, mapErr(err)
	}
	return &m, nil
}

func (c *Client) DeleteTeamMember(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.collection(colTeam).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *Client) ListTeamMembers(ctx context.Context, activeOnly bool) ([]models.TeamMember, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "displayOrder", Value: 1},
		{Key: "createdAt", Value: -1},
	})
	cur, err := c.collection(colTeam).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer cur.Close(ctx)

	members := []models.TeamMember{}
	if err := cur.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode team members: %w", err)
	}
	return members, nil
}
