package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate-cms-backend/internal/models"
)

func sampleProject() *models.Project {
	return &models.Project{
		ID: primitive.NewObjectID(),
		Translations: models.Translations[models.ProjectText]{
			EN: models.ProjectText{Title: "Sea View Towers", Location: "Haifa"},
			AR: models.ProjectText{Title: "أبراج إطلالة البحر", Location: "حيفا"},
		},
		MainImage:    "https://store.example.com/projects/main.jpg",
		Gallery:      []string{"https://store.example.com/projects/g1.jpg"},
		PropertyType: models.PropertyApartment,
		Status:       models.ProjectStatusAvailable,
		Price:        1250000,
		IsActive:     true,
	}
}

func TestProjectMediaURLs(t *testing.T) {
	p := sampleProject()
	assert.Equal(t, []string{p.MainImage, p.Gallery[0]}, p.MediaURLs())

	p.MainImage = ""
	assert.Equal(t, p.Gallery, p.MediaURLs())

	p.Gallery = nil
	assert.Empty(t, p.MediaURLs())
}

func TestNewProjectViewLocalizes(t *testing.T) {
	p := sampleProject()

	en := models.NewProjectView(p, models.LangEnglish)
	assert.Equal(t, "Sea View Towers", en.Title)
	assert.Equal(t, p.ID.Hex(), en.ID)

	ar := models.NewProjectView(p, models.LangArabic)
	assert.Equal(t, "أبراج إطلالة البحر", ar.Title)

	// No Hebrew block, falls back to English.
	he := models.NewProjectView(p, models.LangHebrew)
	assert.Equal(t, "Sea View Towers", he.Title)
}

func TestNewProjectViewNilGallery(t *testing.T) {
	p := sampleProject()
	p.Gallery = nil

	view := models.NewProjectView(p, models.LangEnglish)
	assert.NotNil(t, view.Gallery)
	assert.Empty(t, view.Gallery)
}
