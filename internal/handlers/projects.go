package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate-cms-backend/internal/database"
	"estate-cms-backend/internal/models"
	"estate-cms-backend/internal/services"
	"estate-cms-backend/internal/storage"
)

const projectKeyPrefix = "projects"

// ProjectStore is the slice of the database client the projects
// handler uses. *database.Client satisfies it; tests substitute a fake.
type ProjectStore interface {
	CreateProject(ctx context.Context, p *models.Project) (*models.Project, error)
	GetProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	UpdateProject(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Project, error)
	DeleteProject(ctx context.Context, id primitive.ObjectID) error
	ListProjects(ctx context.Context, f models.ProjectFilter) ([]models.Project, int64, error)
}

type ProjectsHandler struct {
	dbClient ProjectStore
	media    *services.MediaCoordinator
}

func NewProjectsHandler(dbClient ProjectStore, media *services.MediaCoordinator) *ProjectsHandler {
	return &ProjectsHandler{dbClient: dbClient, media: media}
}

// List returns one page of active projects localized for the requested
// language.
func (h *ProjectsHandler) List(c *gin.Context) {
	filter := models.ProjectFilter{
		Lang:         models.ParseLanguage(c.Query("lang")),
		Status:       c.Query("status"),
		PropertyType: c.Query("propertyType"),
		Search:       c.Query("search"),
	}
	filter.Page, filter.Limit = parsePagination(c)

	if filter.Status != "" && !models.ValidProjectStatus(filter.Status) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid status"})
		return
	}
	if filter.PropertyType != "" && !models.ValidPropertyType(filter.PropertyType) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid property type"})
		return
	}
	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid featured flag"})
			return
		}
		filter.Featured = &featured
	}
	for _, q := range []struct {
		name string
		dst  **float64
	}{{"minPrice", &filter.MinPrice}, {"maxPrice", &filter.MaxPrice}} {
		if raw := c.Query(q.name); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + q.name})
				return
			}
			*q.dst = &v
		}
	}

	projects, total, err := h.dbClient.ListProjects(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list projects",
			Message: err.Error(),
		})
		return
	}

	views := make([]models.ProjectView, len(projects))
	for i := range projects {
		views[i] = models.NewProjectView(&projects[i], filter.Lang)
	}
	c.JSON(http.StatusOK, models.ProjectListResponse{
		Items: views,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// Get returns one listing localized for the requested language, in
// the same view shape the list route uses.
func (h *ProjectsHandler) Get(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return
	}
	lang := models.ParseLanguage(c.Query("lang"))

	project, err := h.dbClient.GetProject(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get project",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.NewProjectView(project, lang))
}

// Create accepts multipart form data: a translations JSON field, the
// listing attributes, one optional mainImageFile and up to ten
// galleryFiles. Files are uploaded before the insert; a failed insert
// rolls the uploads back.
func (h *ProjectsHandler) Create(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxMultipartMem); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	translations, err := parseTranslations[models.ProjectText](c.PostForm("translations"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid translations", Message: err.Error()})
		return
	}
	if translations.EN.Title == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "english title is required"})
		return
	}

	project := &models.Project{
		Translations: translations,
		PropertyType: c.DefaultPostForm("propertyType", models.PropertyApartment),
		Status:       c.DefaultPostForm("status", models.ProjectStatusAvailable),
		IsActive:     true,
	}
	if !models.ValidProjectStatus(project.Status) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid status"})
		return
	}
	if !models.ValidPropertyType(project.PropertyType) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid property type"})
		return
	}
	if err := h.applyProjectNumbers(c, func(field string, v any) {
		switch field {
		case "price":
			project.Price = v.(float64)
		case "area":
			project.Area = v.(float64)
		case "bedrooms":
			project.Bedrooms = v.(int)
		case "bathrooms":
			project.Bathrooms = v.(int)
		case "featured":
			project.Featured = v.(bool)
		}
	}); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	tasks, hasMain, err := h.collectFiles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file", Message: err.Error()})
		return
	}

	var created *models.Project
	_, err = h.media.Create(c.Request.Context(), projectKeyPrefix, tasks,
		func(ctx context.Context, urls []string) error {
			if hasMain {
				project.MainImage = urls[0]
				urls = urls[1:]
			}
			project.Gallery = urls
			var err error
			created, err = h.dbClient.CreateProject(ctx, project)
			return err
		})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create project",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update replaces the listing attributes present in the form. The
// gallery is recomputed as the existingImages keep-list plus the newly
// uploaded files; everything dropped from it, and a replaced main
// image, is deleted in the background after the write commits.
func (h *ProjectsHandler) Update(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return
	}

	existing, err := h.dbClient.GetProject(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get project",
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
		translations, err := parseTranslations[models.ProjectText](raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid translations", Message: err.Error()})
			return
		}
		set["translations"] = translations
	}
	if v := c.PostForm("status"); v != "" {
		if !models.ValidProjectStatus(v) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid status"})
			return
		}
		set["status"] = v
	}
	if v := c.PostForm("propertyType"); v != "" {
		if !models.ValidPropertyType(v) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid property type"})
			return
		}
		set["propertyType"] = v
	}
	if err := h.applyProjectNumbers(c, func(field string, v any) {
		set[field] = v
	}); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	tasks, hasMain, err := h.collectFiles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid file", Message: err.Error()})
		return
	}

	keep := c.Request.MultipartForm.Value["existingImages"]
	newGallery := len(tasks)
	if hasMain {
		newGallery--
	}
	// Count what will actually stay: duplicates and stale URLs in the
	// keep-list are discarded during the merge, not held against the cap.
	kept, _ := services.MergeGallery(existing.Gallery, keep, nil)
	if len(kept)+newGallery > models.MaxGallerySize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "gallery exceeds 10 images"})
		return
	}

	var updated *models.Project
	_, err = h.media.Update(c.Request.Context(), projectKeyPrefix, tasks,
		func(ctx context.Context, urls []string) ([]string, error) {
			var orphans []string
			if hasMain {
				set["mainImage"] = urls[0]
				if existing.MainImage != "" {
					orphans = append(orphans, existing.MainImage)
				}
				urls = urls[1:]
			}
			gallery, galleryOrphans := services.MergeGallery(existing.Gallery, keep, urls)
			set["gallery"] = gallery
			orphans = append(orphans, galleryOrphans...)

			var err error
			updated, err = h.dbClient.UpdateProject(ctx, id, set)
			if err != nil {
				return nil, err
			}
			return orphans, nil
		})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update project",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete removes the listing and schedules all its media for
// background deletion once the row is gone.
func (h *ProjectsHandler) Delete(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return
	}

	existing, err := h.dbClient.GetProject(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get project",
			Message: err.Error(),
		})
		return
	}

	err = h.media.Delete(c.Request.Context(), func(ctx context.Context) ([]string, error) {
		if err := h.dbClient.DeleteProject(ctx, id); err != nil {
			return nil, err
		}
		return existing.MediaURLs(), nil
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete project",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "project deleted"})
}

// SetVisibility soft-deletes or restores a listing. Media is left
// untouched.
func (h *ProjectsHandler) SetVisibility(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return
	}

	var req models.VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "isActive is required"})
		return
	}

	updated, err := h.dbClient.UpdateProject(c.Request.Context(), id, bson.M{"isActive": *req.IsActive})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update project",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// collectFiles builds the upload tasks of one request: the optional
// main image first, then the gallery files. Both share one rollback
// batch downstream.
func (h *ProjectsHandler) collectFiles(c *gin.Context) (tasks []storage.UploadTask, hasMain bool, err error) {
	form := c.Request.MultipartForm
	if form == nil {
		return nil, false, nil
	}

	if fhs := form.File["mainImageFile"]; len(fhs) > 0 {
		task, err := readUploadTask(fhs[0], "main", galleryMimeTypes)
		if err != nil {
			return nil, false, err
		}
		tasks = append(tasks, task)
		hasMain = true
	}

	galleryFiles := form.File["galleryFiles"]
	if len(galleryFiles) > models.MaxGallerySize {
		return nil, false, errors.New("at most 10 gallery files per request")
	}
	for _, fh := range galleryFiles {
		task, err := readUploadTask(fh, "gal", galleryMimeTypes)
		if err != nil {
			return nil, false, err
		}
		tasks = append(tasks, task)
	}

	return tasks, hasMain, nil
}

func (h *ProjectsHandler) applyProjectNumbers(c *gin.Context, apply func(field string, v any)) error {
	if v, err := formFloat(c, "price"); err != nil {
		return err
	} else if v != nil {
		apply("price", *v)
	}
	if v, err := formFloat(c, "area"); err != nil {
		return err
	} else if v != nil {
		apply("area", *v)
	}
	if v, err := formInt(c, "bedrooms"); err != nil {
		return err
	} else if v != nil {
		apply("bedrooms", *v)
	}
	if v, err := formInt(c, "bathrooms"); err != nil {
		return err
	} else if v != nil {
		apply("bathrooms", *v)
	}
	if v, err := formBool(c, "featured"); err != nil {
		return err
	} else if v != nil {
		apply("featured", *v)
	}
	return nil
}
