package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CourseText struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
}

func (c CourseText) Empty() bool {
	return c.Title == "" && c.Description == ""
}

// Course is a training course offered by the agency.
type Course struct {
	ID            primitive.ObjectID       `bson:"_id,omitempty" json:"id"`
	Translations  Translations[CourseText] `bson:"translations" json:"translations"`
	Image         string                   `bson:"image,omitempty" json:"image,omitempty"`
	StartDate     time.Time                `bson:"startDate" json:"startDate"`
	DurationHours int                      `bson:"durationHours" json:"durationHours"`
	Price         float64                  `bson:"price" json:"price"`
	IsActive      bool                     `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time                `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time                `bson:"updatedAt" json:"updatedAt"`
}
