package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate-cms-backend/internal/models"
)

func (c *Client) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := c.collection(colUsers).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (c *Client) CountUsers(ctx context.Context) (int64, error) {
	return c.collection(colUsers).CountDocuments(ctx, bson.M{})
}

func (c *Client) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	u.CreatedAt = time.Now().UTC()

	res, err := c.collection(colUsers).InsertOne(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return u, nil
}
