package util

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width int, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 3), B: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDownscaleImage_PassThroughWithinBounds(t *testing.T) {
	original := encodePNG(t, 100, 60)

	data, ext, err := DownscaleImage(bytes.NewReader(original), 200)
	require.NoError(t, err)
	assert.Empty(t, ext)
	assert.Equal(t, original, data)
}

func TestDownscaleImage_ScalesWideImage(t *testing.T) {
	original := encodePNG(t, 400, 100)

	data, ext, err := DownscaleImage(bytes.NewReader(original), 200)
	require.NoError(t, err)
	assert.Equal(t, ".jpg", ext)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestDownscaleImage_ScalesTallImage(t *testing.T) {
	original := encodePNG(t, 100, 400)

	data, ext, err := DownscaleImage(bytes.NewReader(original), 200)
	require.NoError(t, err)
	assert.Equal(t, ".jpg", ext)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestDownscaleImage_ExactBoundPassesThrough(t *testing.T) {
	original := encodePNG(t, 200, 200)

	_, ext, err := DownscaleImage(bytes.NewReader(original), 200)
	require.NoError(t, err)
	assert.Empty(t, ext)
}

func TestDownscaleImage_NotAnImage(t *testing.T) {
	_, _, err := DownscaleImage(strings.NewReader("definitely not pixels"), 200)
	assert.Error(t, err)
}

func TestDetectMIME(t *testing.T) {
	assert.Equal(t, "image/png", DetectMIME(encodePNG(t, 4, 4)))
	assert.Equal(t, "text/plain; charset=utf-8", DetectMIME([]byte("hello")))
}

func TestIsImageMIME(t *testing.T) {
	assert.True(t, IsImageMIME("image/png"))
	assert.True(t, IsImageMIME(" IMAGE/JPEG "))
	assert.False(t, IsImageMIME("text/plain"))
	assert.False(t, IsImageMIME(""))
}

func TestIsImageExtension(t *testing.T) {
	assert.True(t, IsImageExtension(".png"))
	assert.True(t, IsImageExtension(".JPEG"))
	assert.True(t, IsImageExtension(".webp"))
	assert.False(t, IsImageExtension(".txt"))
	assert.False(t, IsImageExtension(""))
}
