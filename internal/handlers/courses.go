package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"estate-cms-backend/internal/database"
	"estate-cms-backend/internal/models"
	"estate-cms-backend/internal/services"
)

const courseKeyPrefix = "courses"

type CoursesHandler struct {
	dbClient *database.Client
	media    *services.MediaCoordinator
}

func NewCoursesHandler(dbClient *database.Client, media *services.MediaCoordinator) *CoursesHandler {
	return &CoursesHandler{dbClient: dbClient, media: media}
}

func (h *CoursesHandler) List(c *gin.Context) {
	lang := models.ParseLanguage(c.Query("lang"))

	courses, err := h.dbClient.ListCourses(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list courses",
			Message: err.Error(),
		})
		return
	}

	views := make([]models.CourseView, len(courses))
	for i := range courses {
		views[i] = models.NewCourseView(&courses[i], lang)
	}
	c.JSON(http.StatusOK, views)
}

func (h *CoursesHandler) Create(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxMultipartMem); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	translations, err := parseTranslations[models.CourseText](c.PostForm("translations"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid translations", Message: err.Error()})
		return
	}
	if translations.EN.Title == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "english title is required"})
		return
	}

	course := &models.Course{
		Translations: translations,
		IsActive:     true,
	}
	if raw := c.PostForm("startDate"); raw != "" {
		startDate, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid startDate, want RFC 3339"})
			return
		}
		course.StartDate = startDate
	}
	if v, err := formInt(c, "durationHours"); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	} else if v != nil {
		course.DurationHours = *v
	}
	if v, err := formFloat(c, "price"); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	} else if v != nil {
		course.Price = *v
	}

	tasks, err := singleFileTask(c, "imageFile", "img", iconMimeTypes)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file", Message: err.Error()})
		return
	}

	var created *models.Course
	_, err = h.media.Create(c.Request.Context(), courseKeyPrefix, tasks,
		func(ctx context.Context, urls []string) error {
			if len(urls) > 0 {
				course.Image = urls[0]
			}
			var err error
			created, err = h.dbClient.CreateCourse(ctx, course)
			return err
		})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create course",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *CoursesHandler) Update(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "course not found"})
		return
	}

	existing, err := h.dbClient.GetCourse(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get course",
			Message: err.Error(),
		})
		return
	}

	if err := c.Request.ParseMultipartForm(maxMultipartMem); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	set := bson.M{}
	if raw := c.PostForm("translations"); raw != "" {
		translations, err := parseTranslations[models.CourseText](raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid translations", Message: err.Error()})
			return
		}
		set["translations"] = translations
	}
	if raw := c.PostForm("startDate"); raw != "" {
		startDate, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid startDate, want RFC 3339"})
			return
		}
		set["startDate"] = startDate
	}
	if v, err := formInt(c, "durationHours"); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	} else if v != nil {
		set["durationHours"] = *v
	}
	if v, err := formFloat(c, "price"); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	} else if v != nil {
		set["price"] = *v
	}

	tasks, err := singleFileTask(c, "imageFile", "img", iconMimeTypes)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file", Message: err.Error()})
		return
	}

	var updated *models.Course
	_, err = h.media.Update(c.Request.Context(), courseKeyPrefix, tasks,
		func(ctx context.Context, urls []string) ([]string, error) {
			var orphans []string
			if len(urls) > 0 {
				set["image"] = urls[0]
				if existing.Image != "" {
					orphans = append(orphans, existing.Image)
				}
			}
			var err error
			updated, err = h.dbClient.UpdateCourse(ctx, id, set)
			if err != nil {
				return nil, err
			}
			return orphans, nil
		})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update course",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *CoursesHandler) Delete(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "course not found"})
		return
	}

	existing, err := h.dbClient.GetCourse(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get course",
			Message: err.Error(),
		})
		return
	}

	err = h.media.Delete(c.Request.Context(), func(ctx context.Context) ([]string, error) {
		if err := h.dbClient.DeleteCourse(ctx, id); err != nil {
			return nil, err
		}
		if existing.Image != "" {
			return []string{existing.Image}, nil
		}
		return nil, nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete course",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "course deleted"})
}

func (h *CoursesHandler) SetVisibility(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "course not found"})
		return
	}

	var req models.VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "isActive is required"})
		return
	}

	updated, err := h.dbClient.UpdateCourse(c.Request.Context(), id, bson.M{"isActive": *req.IsActive})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update course",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}
