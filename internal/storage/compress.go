package storage

import (
	"bytes"

	"github.com/disintegration/imaging"

	"estate-cms-backend/internal/logger"
)

const (
	compressThreshold = 100 << 10 // bytes below this pass through untouched
	maxDimension      = 1200
	jpegQuality       = 70
)

// Compress shrinks oversized images before they hit the store. Images
// larger than the threshold are fitted inside maxDimension (never
// upscaled) and re-encoded as quality-70 JPEG. A decode or encode
// failure falls back to the original bytes; compression must never
// abort an upload.
func Compress(data []byte) []byte {
	if len(data) < compressThreshold {
		return data
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		logger.Warn("image compression skipped", "error", err)
		return data
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		logger.Warn("image compression failed", "error", err)
		return data
	}
	return buf.Bytes()
}
