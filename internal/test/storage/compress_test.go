package storage_test

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-cms-backend/internal/storage"
)

// noisyPNG renders random pixels so the encoded file cannot compress
// below the pass-through threshold.
func noisyPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompressSmallInputPassesThrough(t *testing.T) {
	data := []byte("definitely not 100 KiB of image data")
	assert.Equal(t, data, storage.Compress(data))
}

func TestCompressResizesOversizedImage(t *testing.T) {
	data := noisyPNG(t, 2400, 1600)
	require.Greater(t, len(data), 100<<10)

	out := storage.Compress(data)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.LessOrEqual(t, img.Bounds().Dx(), 1200)
	assert.LessOrEqual(t, img.Bounds().Dy(), 1200)
}

func TestCompressDoesNotUpscale(t *testing.T) {
	data := noisyPNG(t, 400, 300)
	require.Greater(t, len(data), 100<<10)

	out := storage.Compress(data)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestCompressCorruptInputFallsBack(t *testing.T) {
	data := bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 40<<10)
	assert.Equal(t, data, storage.Compress(data))
}

func TestCompressReencodedOutputIsJPEG(t *testing.T) {
	data := noisyPNG(t, 1000, 800)
	require.Greater(t, len(data), 100<<10)

	out := storage.Compress(data)
	_, err := jpeg.Decode(bytes.NewReader(out))
	assert.NoError(t, err)
}
