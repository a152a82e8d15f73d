package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"estate-cms-backend/internal/database"
	"estate-cms-backend/internal/models"
)

type TestimonialsHandler struct {
	dbClient *database.Client
}

func NewTestimonialsHandler(dbClient *database.Client) *TestimonialsHandler {
	return &TestimonialsHandler{dbClient: dbClient}
}

func (h *TestimonialsHandler) List(c *gin.Context) {
	lang := models.ParseLanguage(c.Query("lang"))

	testimonials, err := h.dbClient.ListTestimonials(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list testimonials",
			Message: err.Error(),
		})
		return
	}

	views := make([]models.TestimonialView, len(testimonials))
	for i := range testimonials {
		views[i] = models.NewTestimonialView(&testimonials[i], lang)
	}
	c.JSON(http.StatusOK, views)
}

func (h *TestimonialsHandler) Create(c *gin.Context) {
	var req models.TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}
	if req.Translations.Localize(models.LangEnglish).Empty() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "translations are required"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "rating must be between 1 and 5"})
		return
	}

	created, err := h.dbClient.CreateTestimonial(c.Request.Context(), &models.Testimonial{
		Translations: req.Translations,
		Rating:       req.Rating,
		IsActive:     true,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create testimonial",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *TestimonialsHandler) Update(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "testimonial not found"})
		return
	}

	var req models.TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	set := bson.M{}
	if !req.Translations.Localize(models.LangEnglish).Empty() {
		set["translations"] = req.Translations
	}
	if req.Rating != 0 {
		if req.Rating < 1 || req.Rating > 5 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "rating must be between 1 and 5"})
			return
		}
		set["rating"] = req.Rating
	}

	updated, err := h.dbClient.UpdateTestimonial(c.Request.Context(), id, set)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "testimonial not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update testimonial",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *TestimonialsHandler) Delete(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "testimonial not found"})
		return
	}

	if err := h.dbClient.DeleteTestimonial(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "testimonial not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete testimonial",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "testimonial deleted"})
}

func (h *TestimonialsHandler) SetVisibility(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "testimonial not found"})
		return
	}

	var req models.VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "isActive is required"})
		return
	}

	updated, err := h.dbClient.UpdateTestimonial(c.Request.Context(), id, bson.M{"isActive": *req.IsActive})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "testimonial not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update testimonial",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}
