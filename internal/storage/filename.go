package storage

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectKey builds a storage key of the form
// {prefix}/{unix-ms}_{tag}_{random-hex}_{sanitized-name}. Collision
// resistance comes from the timestamp and random component, not from
// the original name.
func ObjectKey(prefix, tag, original string) string {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%s/%d_%s_%s_%s",
		prefix, time.Now().UnixMilli(), tag, random, sanitizeName(original))
}

func sanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "file"
	}
	return strings.Join(fields, "_")
}
