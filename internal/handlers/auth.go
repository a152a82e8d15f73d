package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"estate-cms-backend/internal/auth"
	"estate-cms-backend/internal/config"
	"estate-cms-backend/internal/database"
	"estate-cms-backend/internal/models"
)

type AuthHandler struct {
	dbClient *database.Client
	cfg      *config.Config
}

func NewAuthHandler(dbClient *database.Client, cfg *config.Config) *AuthHandler {
	return &AuthHandler{dbClient: dbClient, cfg: cfg}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	user, err := h.dbClient.GetUserByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		// Same response for unknown email and wrong password.
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid credentials"})
		return
	}

	ttl := time.Duration(h.cfg.JWTTTLHours) * time.Hour
	token, expiresAt, err := auth.IssueToken(h.cfg.JWTSecret, ttl, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to issue token",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{Token: token, ExpiresAt: expiresAt})
}
