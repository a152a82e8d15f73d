package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-cms-backend/internal/handlers"
)

func servicesRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	// File validation runs before any database or store access, so the
	// rejection paths need no backing clients.
	h := handlers.NewServicesHandler(nil, nil)
	router := gin.New()
	router.POST("/api/v1/services", h.Create)
	return router
}

func TestCreateServiceRejectsGifIcon(t *testing.T) {
	router := servicesRouter()

	fields := url.Values{"translations": {`{"en":{"title":"Property management"}}`}}
	files := []filePart{
		{"iconFile", "icon.gif", "image/gif", []byte("GIF89a")},
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, http.MethodPost, "/api/v1/services", fields, files))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported type")
}

func TestCreateServiceRejectsOversizedIcon(t *testing.T) {
	router := servicesRouter()

	fields := url.Values{"translations": {`{"en":{"title":"Property management"}}`}}
	files := []filePart{
		{"iconFile", "icon.png", "image/png", make([]byte, 10<<20+1)},
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, http.MethodPost, "/api/v1/services", fields, files))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "10 MiB")
}
