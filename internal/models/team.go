package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TeamMemberText struct {
	Name string `bson:"name" json:"name"`
	Role string `bson:"role" json:"role"`
	Bio  string `bson:"bio" json:"bio"`
}

func (t TeamMemberText) Empty() bool {
	return t.Name == "" && t.Role == "" && t.Bio == ""
}

type TeamMember struct {
	ID           primitive.ObjectID           `bson:"_id,omitempty" json:"id"`
	Translations Translations[TeamMemberText] `bson:"translations" json:"translations"`
	Photo        string                       `bson:"photo,omitempty" json:"photo,omitempty"`
	DisplayOrder int                          `bson:"displayOrder" json:"displayOrder"`
	IsActive     bool                         `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time                    `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time                    `bson:"updatedAt" json:"updatedAt"`
}
