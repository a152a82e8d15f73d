package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TestimonialText struct {
	Name    string `bson:"name" json:"name"`
	Content string `bson:"content" json:"content"`
}

func (t TestimonialText) Empty() bool {
	return t.Name == "" && t.Content == ""
}

type Testimonial struct {
	ID           primitive.ObjectID            `bson:"_id,omitempty" json:"id"`
	Translations Translations[TestimonialText] `bson:"translations" json:"translations"`
	Rating       int                           `bson:"rating" json:"rating"`
	IsActive     bool                          `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time                     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time                     `bson:"updatedAt" json:"updatedAt"`
}
