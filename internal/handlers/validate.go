package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"estate-cms-backend/internal/storage"
)

const (
	maxFileSize     = 10 << 20 // per file
	maxMultipartMem = 32 << 20
)

// galleryMimeTypes is accepted for project main and gallery images.
var galleryMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// iconMimeTypes is accepted for service/team/course media. No gif.
var iconMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// readUploadTask validates one multipart file and converts it into an
// upload task. Size and type violations are rejected before any byte
// reaches the object store.
func readUploadTask(fh *multipart.FileHeader, tag string, allowed map[string]bool) (storage.UploadTask, error) {
	if fh.Size > maxFileSize {
		return storage.UploadTask{}, fmt.Errorf("file %s exceeds the 10 MiB limit", fh.Filename)
	}

	src, err := fh.Open()
	if err != nil {
		return storage.UploadTask{}, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return storage.UploadTask{}, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}

	contentType := normalizeMime(fh.Header.Get("Content-Type"))
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = normalizeMime(http.DetectContentType(data))
	}
	if !allowed[contentType] {
		return storage.UploadTask{}, fmt.Errorf("file %s has unsupported type %s", fh.Filename, contentType)
	}

	return storage.UploadTask{
		Data:        data,
		ContentType: contentType,
		Filename:    fh.Filename,
		Tag:         tag,
	}, nil
}

func normalizeMime(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx > 0 {
		ct = strings.TrimSpace(ct[:idx])
	}
	return ct
}
