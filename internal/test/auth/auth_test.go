package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate-cms-backend/internal/auth"
	"estate-cms-backend/internal/models"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("s3cure-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cure-pass", hash)

	assert.True(t, auth.CheckPasswordHash("s3cure-pass", hash))
	assert.False(t, auth.CheckPasswordHash("wrong-pass", hash))
	assert.False(t, auth.CheckPasswordHash("s3cure-pass", "not-a-hash"))
}

func TestIssueTokenClaims(t *testing.T) {
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "admin@example.com",
		Role:  "admin",
	}

	signed, expiresAt, err := auth.IssueToken("secret", time.Hour, user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.Hex(), claims["sub"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, user.Role, claims["role"])
}
