package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"estate-cms-backend/internal/database"
	"estate-cms-backend/internal/models"
	"estate-cms-backend/internal/services"
	"estate-cms-backend/internal/storage"
)

const serviceKeyPrefix = "services"

type ServicesHandler struct {
	dbClient *database.Client
	media    *services.MediaCoordinator
}

func NewServicesHandler(dbClient *database.Client, media *services.MediaCoordinator) *ServicesHandler {
	return &ServicesHandler{dbClient: dbClient, media: media}
}

func (h *ServicesHandler) List(c *gin.Context) {
	lang := models.ParseLanguage(c.Query("lang"))

	items, err := h.dbClient.ListServices(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list services",
			Message: err.Error(),
		})
		return
	}

	views := make([]models.ServiceView, len(items))
	for i := range items {
		views[i] = models.NewServiceView(&items[i], lang)
	}
	c.JSON(http.StatusOK, views)
}

func (h *ServicesHandler) Create(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxMultipartMem); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	translations, err := parseTranslations[models.ServiceText](c.PostForm("translations"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid translations", Message: err.Error()})
		return
	}
	if translations.EN.Title == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "english title is required"})
		return
	}

	service := &models.Service{
		Translations: translations,
		IsActive:     true,
	}
	if v, err := formInt(c, "displayOrder"); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	} else if v != nil {
		service.DisplayOrder = *v
	}

	tasks, err := singleFileTask(c, "iconFile", "icon", iconMimeTypes)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file", Message: err.Error()})
		return
	}

	var created *models.Service
	_, err = h.media.Create(c.Request.Context(), serviceKeyPrefix, tasks,
		func(ctx context.Context, urls []string) error {
			if len(urls) > 0 {
				service.Icon = urls[0]
			}
			var err error
			created, err = h.dbClient.CreateService(ctx, service)
			return err
		})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create service",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ServicesHandler) Update(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "service not found"})
		return
	}

	existing, err := h.dbClient.GetService(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get service",
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
		translations, err := parseTranslations[models.ServiceText](raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid translations", Message: err.Error()})
			return
		}
		set["translations"] = translations
	}
	if v, err := formInt(c, "displayOrder"); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	} else if v != nil {
		set["displayOrder"] = *v
	}

	tasks, err := singleFileTask(c, "iconFile", "icon", iconMimeTypes)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file", Message: err.Error()})
		return
	}

	var updated *models.Service
	_, err = h.media.Update(c.Request.Context(), serviceKeyPrefix, tasks,
		func(ctx context.Context, urls []string) ([]string, error) {
			var orphans []string
			if len(urls) > 0 {
				set["icon"] = urls[0]
				if existing.Icon != "" {
					orphans = append(orphans, existing.Icon)
				}
			}
			var err error
			updated, err = h.dbClient.UpdateService(ctx, id, set)
			if err != nil {
				return nil, err
			}
			return orphans, nil
		})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update service",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *ServicesHandler) Delete(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "service not found"})
		return
	}

	existing, err := h.dbClient.GetService(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get service",
			Message: err.Error(),
		})
		return
	}

	err = h.media.Delete(c.Request.Context(), func(ctx context.Context) ([]string, error) {
		if err := h.dbClient.DeleteService(ctx, id); err != nil {
			return nil, err
		}
		if existing.Icon != "" {
			return []string{existing.Icon}, nil
		}
		return nil, nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete service",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "service deleted"})
}

func (h *ServicesHandler) SetVisibility(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "service not found"})
		return
	}

	var req models.VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "isActive is required"})
		return
	}

	updated, err := h.dbClient.UpdateService(c.Request.Context(), id, bson.M{"isActive": *req.IsActive})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update service",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// singleFileTask reads the optional single media file of a
// service/team/course form.
func singleFileTask(c *gin.Context, field, tag string, allowed map[string]bool) ([]storage.UploadTask, error) {
	form := c.Request.MultipartForm
	if form == nil {
		return nil, nil
	}
	fhs := form.File[field]
	if len(fhs) == 0 {
		return nil, nil
	}
	task, err := readUploadTask(fhs[0], tag, allowed)
	if err != nil {
		return nil, err
	}
	return []storage.UploadTask{task}, nil
}
