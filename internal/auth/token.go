package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"estate-cms-backend/internal/models"
)

// IssueToken signs an HS256 JWT for an admin user.
func IssueToken(secret string, ttl time.Duration, user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	claims := jwt.MapClaims{
		"sub":   user.ID.Hex(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}
