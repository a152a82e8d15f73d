package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MaxGallerySize = 10

// Project status values.
const (
	ProjectStatusAvailable = "available"
	ProjectStatusSold      = "sold"
	ProjectStatusRented    = "rented"
)

// Property types.
const (
	PropertyApartment = "apartment"
	PropertyVilla     = "villa"
	PropertyOffice    = "office"
	PropertyLand      = "land"
)

type ProjectText struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Location    string `bson:"location" json:"location"`
}

func (p ProjectText) Empty() bool {
	return p.Title == "" && p.Description == "" && p.Location == ""
}

// Project is a real-estate listing. MainImage and Gallery hold public
// object-store URLs; the files themselves live in the storage bucket.
type Project struct {
	ID           primitive.ObjectID        `bson:"_id,omitempty" json:"id"`
	Translations Translations[ProjectText] `bson:"translations" json:"translations"`
	MainImage    string                    `bson:"mainImage,omitempty" json:"mainImage,omitempty"`
	Gallery      []string                  `bson:"gallery" json:"gallery"`
	PropertyType string                    `bson:"propertyType" json:"propertyType"`
	Status       string                    `bson:"status" json:"status"`
	Price        float64                   `bson:"price" json:"price"`
	Bedrooms     int                       `bson:"bedrooms" json:"bedrooms"`
	Bathrooms    int                       `bson:"bathrooms" json:"bathrooms"`
	Area         float64                   `bson:"area" json:"area"`
	Featured     bool                      `bson:"featured" json:"featured"`
	IsActive     bool                      `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time                 `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time                 `bson:"updatedAt" json:"updatedAt"`
}

func ValidProjectStatus(s string) bool {
	return s == ProjectStatusAvailable || s == ProjectStatusSold || s == ProjectStatusRented
}

func ValidPropertyType(s string) bool {
	return s == PropertyApartment || s == PropertyVilla || s == PropertyOffice || s == PropertyLand
}

// MediaURLs returns every object-store URL the project references.
func (p *Project) MediaURLs() []string {
	urls := make([]string, 0, len(p.Gallery)+1)
	if p.MainImage != "" {
		urls = append(urls, p.MainImage)
	}
	urls = append(urls, p.Gallery...)
	return urls
}
