package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"estate-cms-backend/internal/handlers"
)

func testimonialsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewTestimonialsHandler(nil)
	router := gin.New()
	router.POST("/api/v1/admin/testimonials", h.Create)
	return router
}

func postTestimonial(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/testimonials",
		strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateTestimonialRequiresTranslations(t *testing.T) {
	w := postTestimonial(testimonialsRouter(), `{"rating":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "translations are required")
}

func TestCreateTestimonialRejectsOutOfRangeRating(t *testing.T) {
	router := testimonialsRouter()
	base := `{"translations":{"en":{"name":"Omar","content":"Great service"}},"rating":%s}`

	for _, rating := range []string{"0", "6", "-1"} {
		w := postTestimonial(router, strings.Replace(base, "%s", rating, 1))
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %s", rating)
	}
}

func TestCreateTestimonialRejectsInvalidJSON(t *testing.T) {
	w := postTestimonial(testimonialsRouter(), `{"rating":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
