package storage_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"estate-cms-backend/internal/storage"
)

func TestObjectKeyFormat(t *testing.T) {
	key := storage.ObjectKey("projects", "main", "living room.jpg")

	assert.True(t, strings.HasPrefix(key, "projects/"))
	assert.Contains(t, key, "_main_")
	assert.True(t, strings.HasSuffix(key, "_living_room.jpg"))
	assert.NotContains(t, key, " ")
}

func TestObjectKeyStripsPathComponents(t *testing.T) {
	key := storage.ObjectKey("team", "photo", "../../etc/passwd")

	assert.True(t, strings.HasPrefix(key, "team/"))
	assert.NotContains(t, strings.TrimPrefix(key, "team/"), "/")
	assert.True(t, strings.HasSuffix(key, "_passwd"))
}

func TestObjectKeyEmptyName(t *testing.T) {
	key := storage.ObjectKey("services", "icon", "   ")
	assert.True(t, strings.HasSuffix(key, "_file"))
}

func TestObjectKeyUniqueness(t *testing.T) {
	const n = 10000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		key := storage.ObjectKey("projects", "gal", "photo.jpg")
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate key generated: %s", key)
		}
		seen[key] = struct{}{}
	}
	assert.Len(t, seen, n)
}
