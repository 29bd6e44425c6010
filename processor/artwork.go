// Package processor normalizes fetched artwork before it gets
// embedded into tags.
package processor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // upstream thumbnails are occasionally PNG

	"github.com/nfnt/resize"
)

const (
	artworkMaxSize = 600
	jpegQuality    = 90
)

type Artwork struct {
	MaxSize uint
}

// Process bounds the image to a square of MaxSize and re-encodes
// it as JPEG, the only format written into the tag set.
func (artwork Artwork) Process(data []byte) ([]byte, error) {
	size := artwork.MaxSize
	if size == 0 {
		size = artworkMaxSize
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode artwork: %w", err)
	}

	bounds := img.Bounds()
	if uint(bounds.Dx()) > size || uint(bounds.Dy()) > size {
		img = resize.Thumbnail(size, size, img, resize.Lanczos3)
	}

	var buffer bytes.Buffer
	if err := jpeg.Encode(&buffer, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode artwork: %w", err)
	}
	return buffer.Bytes(), nil
}
