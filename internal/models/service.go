package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ServiceText struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
}

func (s ServiceText) Empty() bool {
	return s.Title == "" && s.Description == ""
}

// Service is an offered service (valuation, property management, ...)
// shown on the marketing site.
type Service struct {
	ID           primitive.ObjectID        `bson:"_id,omitempty" json:"id"`
	Translations Translations[ServiceText] `bson:"translations" json:"translations"`
	Icon         string                    `bson:"icon,omitempty" json:"icon,omitempty"`
	DisplayOrder int                       `bson:"displayOrder" json:"displayOrder"`
	IsActive     bool                      `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time                 `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time                 `bson:"updatedAt" json:"updatedAt"`
}
