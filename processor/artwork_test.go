package processor

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buffer bytes.Buffer
	require.NoError(t, png.Encode(&buffer, img))
	return buffer.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestProcessBoundsOversized(t *testing.T) {
	data, err := Artwork{MaxSize: 100}.Process(encodePNG(t, 400, 200))
	require.NoError(t, err)

	bounds := decodeJPEG(t, data).Bounds()
	assert.Equal(t, 100, bounds.Dx())
	assert.Equal(t, 50, bounds.Dy()) // aspect ratio preserved
}

func TestProcessKeepsSmall(t *testing.T) {
	data, err := Artwork{MaxSize: 100}.Process(encodePNG(t, 40, 40))
	require.NoError(t, err)

	bounds := decodeJPEG(t, data).Bounds()
	assert.Equal(t, 40, bounds.Dx())
	assert.Equal(t, 40, bounds.Dy())
}

func TestProcessRejectsGarbage(t *testing.T) {
	_, err := Artwork{}.Process([]byte("not an image"))
	assert.Error(t, err)
}
