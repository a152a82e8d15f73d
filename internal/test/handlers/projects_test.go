package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	storage_go "github.com/supabase-community/storage-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate-cms-backend/internal/database"
	"estate-cms-backend/internal/handlers"
	"estate-cms-backend/internal/models"
	"estate-cms-backend/internal/services"
	"estate-cms-backend/internal/storage"
)

const (
	storeBaseURL = "https://example.supabase.co"
	storeBucket  = "media"
	storePrefix  = storeBaseURL + "/storage/v1/object/public/" + storeBucket + "/"
)

// uploadAPI is a minimal in-memory object store for handler tests.
type uploadAPI struct {
	mu      sync.Mutex
	uploads []string
}

func (a *uploadAPI) UploadFile(bucket, path string, data io.Reader, options ...storage_go.FileOptions) (storage_go.FileUploadResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.uploads = append(a.uploads, path)
	return storage_go.FileUploadResponse{}, nil
}

func (a *uploadAPI) RemoveFile(bucket string, paths []string) ([]storage_go.FileUploadResponse, error) {
	return nil, nil
}

// fakeProjectStore keeps projects in a map keyed by id.
type fakeProjectStore struct {
	projects map[primitive.ObjectID]*models.Project
	created  *models.Project
	updated  bson.M
}

func newFakeProjectStore(projects ...*models.Project) *fakeProjectStore {
	s := &fakeProjectStore{projects: map[primitive.ObjectID]*models.Project{}}
	for _, p := range projects {
		s.projects[p.ID] = p
	}
	return s
}

func (s *fakeProjectStore) CreateProject(ctx context.Context, p *models.Project) (*models.Project, error) {
	p.ID = primitive.NewObjectID()
	s.projects[p.ID] = p
	s.created = p
	return p, nil
}

func (s *fakeProjectStore) GetProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return p, nil
}

func (s *fakeProjectStore) UpdateProject(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	s.updated = set
	return p, nil
}

func (s *fakeProjectStore) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := s.projects[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *fakeProjectStore) ListProjects(ctx context.Context, f models.ProjectFilter) ([]models.Project, int64, error) {
	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func projectsRouter(store handlers.ProjectStore, api *uploadAPI) (*gin.Engine, *services.MediaCoordinator) {
	gin.SetMode(gin.TestMode)
	client := storage.NewClient(api, storeBaseURL, storeBucket).
		WithRetryDelays([]time.Duration{time.Millisecond, 2 * time.Millisecond})
	media := services.NewMediaCoordinator(storage.NewUploader(client))
	h := handlers.NewProjectsHandler(store, media)

	router := gin.New()
	router.GET("/api/v1/projects/:id", h.Get)
	router.POST("/api/v1/projects", h.Create)
	router.PUT("/api/v1/projects/:id", h.Update)
	return router, media
}

type filePart struct {
	field       string
	name        string
	contentType string
	data        []byte
}

func multipartRequest(t *testing.T, method, target string, fields url.Values, files []filePart) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, values := range fields {
		for _, v := range values {
			require.NoError(t, w.WriteField(field, v))
		}
	}
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		header.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func storedProject() *models.Project {
	return &models.Project{
		ID: primitive.NewObjectID(),
		Translations: models.Translations[models.ProjectText]{
			EN: models.ProjectText{Title: "Sea View Towers", Location: "Haifa"},
			AR: models.ProjectText{Title: "أبراج إطلالة البحر", Location: "حيفا"},
		},
		MainImage: storePrefix + "projects/main.jpg",
		Gallery:   []string{storePrefix + "projects/g1.jpg"},
		IsActive:  true,
	}
}

func TestGetProjectLocalizes(t *testing.T) {
	project := storedProject()
	router, _ := projectsRouter(newFakeProjectStore(project), &uploadAPI{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+project.ID.Hex()+"?lang=ar", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var view models.ProjectView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "أبراج إطلالة البحر", view.Title)
	assert.Equal(t, project.ID.Hex(), view.ID)
	// Same flattened shape as the list route, not the raw document.
	assert.NotContains(t, w.Body.String(), `"translations"`)
}

func TestGetProjectDefaultsToEnglish(t *testing.T) {
	project := storedProject()
	router, _ := projectsRouter(newFakeProjectStore(project), &uploadAPI{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+project.ID.Hex(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var view models.ProjectView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Sea View Towers", view.Title)
}

func TestGetProjectNotFound(t *testing.T) {
	router, _ := projectsRouter(newFakeProjectStore(), &uploadAPI{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/projects/"+primitive.NewObjectID().Hex(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProjectStoresUploadedImages(t *testing.T) {
	store := newFakeProjectStore()
	api := &uploadAPI{}
	router, media := projectsRouter(store, api)

	fields := url.Values{"translations": {`{"en":{"title":"Sea View Towers"}}`}}
	files := []filePart{
		{"mainImageFile", "cover.png", "image/png", []byte("png bytes")},
		{"galleryFiles", "g1.png", "image/png", []byte("png bytes")},
		{"galleryFiles", "g2.png", "image/png", []byte("png bytes")},
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, http.MethodPost, "/api/v1/projects", fields, files))
	media.Shutdown(context.Background())

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, store.created)
	assert.Contains(t, store.created.MainImage, "_main_")
	assert.Len(t, store.created.Gallery, 2)
	assert.Len(t, api.uploads, 3)
}

func TestCreateProjectRejectsOversizedFile(t *testing.T) {
	store := newFakeProjectStore()
	api := &uploadAPI{}
	router, _ := projectsRouter(store, api)

	fields := url.Values{"translations": {`{"en":{"title":"Sea View Towers"}}`}}
	files := []filePart{
		{"mainImageFile", "huge.png", "image/png", make([]byte, 10<<20+1)},
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, http.MethodPost, "/api/v1/projects", fields, files))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "10 MiB")
	assert.Nil(t, store.created)
	assert.Empty(t, api.uploads)
}

func TestCreateProjectRejectsUnsupportedType(t *testing.T) {
	store := newFakeProjectStore()
	api := &uploadAPI{}
	router, _ := projectsRouter(store, api)

	fields := url.Values{"translations": {`{"en":{"title":"Sea View Towers"}}`}}
	files := []filePart{
		{"galleryFiles", "plans.pdf", "application/pdf", []byte("%PDF-1.4")},
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, http.MethodPost, "/api/v1/projects", fields, files))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported type")
	assert.Empty(t, api.uploads)
}

func TestCreateProjectRejectsTooManyGalleryFiles(t *testing.T) {
	store := newFakeProjectStore()
	api := &uploadAPI{}
	router, _ := projectsRouter(store, api)

	fields := url.Values{"translations": {`{"en":{"title":"Sea View Towers"}}`}}
	var files []filePart
	for i := 0; i < models.MaxGallerySize+1; i++ {
		files = append(files, filePart{
			"galleryFiles", fmt.Sprintf("g%d.png", i), "image/png", []byte("png bytes"),
		})
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, http.MethodPost, "/api/v1/projects", fields, files))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, api.uploads)
}

func TestUpdateProjectCapIgnoresStaleKeepList(t *testing.T) {
	// A full gallery resent with a duplicate and a stale URL stays a
	// full gallery after the merge, so the request must pass the cap.
	project := storedProject()
	project.Gallery = nil
	for i := 0; i < models.MaxGallerySize; i++ {
		project.Gallery = append(project.Gallery,
			fmt.Sprintf("%sprojects/g%d.jpg", storePrefix, i))
	}
	store := newFakeProjectStore(project)
	router, media := projectsRouter(store, &uploadAPI{})

	keep := append([]string{}, project.Gallery...)
	keep = append(keep, project.Gallery[0], storePrefix+"projects/removed-long-ago.jpg")
	fields := url.Values{"existingImages": keep}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, http.MethodPut,
		"/api/v1/projects/"+project.ID.Hex(), fields, nil))
	media.Shutdown(context.Background())

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, project.Gallery, store.updated["gallery"])
}

func TestUpdateProjectCapStillEnforced(t *testing.T) {
	project := storedProject()
	project.Gallery = nil
	for i := 0; i < models.MaxGallerySize; i++ {
		project.Gallery = append(project.Gallery,
			fmt.Sprintf("%sprojects/g%d.jpg", storePrefix, i))
	}
	store := newFakeProjectStore(project)
	api := &uploadAPI{}
	router, _ := projectsRouter(store, api)

	fields := url.Values{"existingImages": project.Gallery}
	files := []filePart{
		{"galleryFiles", "extra.png", "image/png", []byte("png bytes")},
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, http.MethodPut,
		"/api/v1/projects/"+project.ID.Hex(), fields, files))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "gallery exceeds")
	assert.Empty(t, api.uploads)
	assert.Nil(t, store.updated)
}
