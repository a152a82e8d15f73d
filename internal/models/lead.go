package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead status values.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusClosed    = "closed"
)

// Lead is a contact request submitted from the public site, optionally
// tied to a specific project.
type Lead struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name      string              `bson:"name" json:"name"`
	Phone     string              `bson:"phone" json:"phone"`
	Email     string              `bson:"email,omitempty" json:"email,omitempty"`
	Message   string              `bson:"message" json:"message"`
	ProjectID *primitive.ObjectID `bson:"projectId,omitempty" json:"projectId,omitempty"`
	Status    string              `bson:"status" json:"status"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func ValidLeadStatus(s string) bool {
	return s == LeadStatusNew || s == LeadStatusContacted || s == LeadStatusClosed
}
