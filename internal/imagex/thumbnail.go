// Package imagex converts uploaded avatar images into the fixed-size PNG
// thumbnails stored by the server.
package imagex

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/disintegration/imaging"
)

// ThumbnailSize is the square edge, in pixels, of a stored avatar.
const ThumbnailSize = 250

// Thumbnail decodes an image (JPEG or PNG), scales and center-crops it to a
// ThumbnailSize square, and re-encodes it as PNG.
func Thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Fill(img, ThumbnailSize, ThumbnailSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
