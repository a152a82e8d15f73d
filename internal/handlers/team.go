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
)

const teamKeyPrefix = "team"

type TeamHandler struct {
	dbClient *database.Client
	media    *services.MediaCoordinator
}

func NewTeamHandler(dbClient *database.Client, media *services.MediaCoordinator) *TeamHandler {
	return &TeamHandler{dbClient: dbClient, media: media}
}

func (h *TeamHandler) List(c *gin.Context) {
	lang := models.ParseLanguage(c.Query("lang"))

	members, err := h.dbClient.ListTeamMembers(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list team members",
			Message: err.Error(),
		})
		return
	}

	views := make([]models.TeamMemberView, len(members))
	for i := range members {
		views[i] = models.NewTeamMemberView(&members[i], lang)
	}
	c.JSON(http.StatusOK, views)
}

func (h *TeamHandler) Create(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxMultipartMem); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	translations, err := parseTranslations[models.TeamMemberText](c.PostForm("translations"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid translations", Message: err.Error()})
		return
	}
	if translations.EN.Name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "english name is required"})
		return
	}

	member := &models.TeamMember{
		Translations: translations,
		IsActive:     true,
	}
	if v, err := formInt(c, "displayOrder"); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	} else if v != nil {
		member.DisplayOrder = *v
	}

	tasks, err := singleFileTask(c, "photoFile", "photo", iconMimeTypes)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file", Message: err.Error()})
		return
	}

	var created *models.TeamMember
	_, err = h.media.Create(c.Request.Context(), teamKeyPrefix, tasks,
		func(ctx context.Context, urls []string) error {
			if len(urls) > 0 {
				member.Photo = urls[0]
			}
			var err error
			created, err = h.dbClient.CreateTeamMember(ctx, member)
			return err
		})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create team member",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *TeamHandler) Update(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "team member not found"})
		return
	}

	existing, err := h.dbClient.GetTeamMember(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "team member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get team member",
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
		translations, err := parseTranslations[models.TeamMemberText](raw)
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

	tasks, err := singleFileTask(c, "photoFile", "photo", iconMimeTypes)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file", Message: err.Error()})
		return
	}

	var updated *models.TeamMember
	_, err = h.media.Update(c.Request.Context(), teamKeyPrefix, tasks,
		func(ctx context.Context, urls []string) ([]string, error) {
			var orphans []string
			if len(urls) > 0 {
				set["photo"] = urls[0]
				if existing.Photo != "" {
					orphans = append(orphans, existing.Photo)
				}
			}
			var err error
			updated, err = h.dbClient.UpdateTeamMember(ctx, id, set)
			if err != nil {
				return nil, err
			}
			return orphans, nil
		})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "team member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update team member",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *TeamHandler) Delete(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "team member not found"})
		return
	}

	existing, err := h.dbClient.GetTeamMember(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "team member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get team member",
			Message: err.Error(),
		})
		return
	}

	err = h.media.Delete(c.Request.Context(), func(ctx context.Context) ([]string, error) {
		if err := h.dbClient.DeleteTeamMember(ctx, id); err != nil {
			return nil, err
		}
		if existing.Photo != "" {
			return []string{existing.Photo}, nil
		}
		return nil, nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete team member",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "team member deleted"})
}

func (h *TeamHandler) SetVisibility(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "team member not found"})
		return
	}

	var req models.VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "isActive is required"})
		return
	}

	updated, err := h.dbClient.UpdateTeamMember(c.Request.Context(), id, bson.M{"isActive": *req.IsActive})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "team member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update team member",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}
