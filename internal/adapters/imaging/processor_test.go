package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessBuildsPreviewAndHash(t *testing.T) {
	p := NewProcessor(0)
	data := gradientPNG(t, 800, 600)

	out, err := p.Process(data)
	require.NoError(t, err)
	assert.Equal(t, "image/png", out.ContentType)
	assert.Equal(t, 800, out.Width)
	assert.Equal(t, 600, out.Height)
	require.True(t, strings.HasPrefix(out.PreviewDataURL, "data:image/jpeg;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(out.PreviewDataURL, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	preview, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.LessOrEqual(t, preview.Bounds().Dx(), DefaultPreviewSize)
	assert.LessOrEqual(t, preview.Bounds().Dy(), DefaultPreviewSize)
}

func TestSimilarImagesHashClose(t *testing.T) {
	p := NewProcessor(0)
	a, err := p.Process(gradientPNG(t, 400, 300))
	require.NoError(t, err)
	b, err := p.Process(gradientPNG(t, 200, 150))
	require.NoError(t, err)

	assert.LessOrEqual(t, domain.HashDistance(a.Hash, b.Hash), domain.DuplicateHashDistance)
}

func TestRejectsNonImages(t *testing.T) {
	p := NewProcessor(0)
	_, err := p.DetectContentType([]byte("%PDF-1.7 not an image"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedImageType)

	_, err = p.Process([]byte("plain text"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedImageType)
}
