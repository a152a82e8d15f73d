package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate-cms-backend/internal/models"
)

const (
	defaultPageLimit = 12
	maxPageLimit     = 50
)

func parseObjectID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// parsePagination reads page/limit query parameters with sane bounds.
func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func parseTranslations[T models.Localizable](raw string) (models.Translations[T], error) {
	var t models.Translations[T]
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return t, fmt.Errorf("invalid translations JSON: %w", err)
	}
	return t, nil
}

func formFloat(c *gin.Context, field string) (*float64, error) {
	raw := c.PostForm(field)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", field, raw)
	}
	return &v, nil
}

func formInt(c *gin.Context, field string) (*int, error) {
	raw := c.PostForm(field)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", field, raw)
	}
	return &v, nil
}

func formBool(c *gin.Context, field string) (*bool, error) {
	raw := c.PostForm(field)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", field, raw)
	}
	return &v, nil
}
