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

func (c *Client) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	res, err := c.collection(colCourses).InsertOne(ctx, course)
	if err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	course.ID = res.InsertedID.(primitive.ObjectID)
	return course, nil
}

func (c *Client) GetCourse(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var course models.Course
	err := c.collection(colCourses).FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if err != nil {
		return nil, mapErr(err)
	}
	return &course, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Course, error) {
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var course models.Course
	err := c.collection(colCourses).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&course)
	if err != nil {
		return nil, mapErr(err)
	}
	return &course, nil
}

func (c *Client) DeleteCourse(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.collection(colCourses).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *Client) ListCourses(ctx context.Context, activeOnly bool) ([]models.Course, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}})
	cur, err := c.collection(colCourses).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer cur.Close(ctx)

	courses := []models.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("failed to decode courses: %w", err)
	}
	return courses, nil
}
