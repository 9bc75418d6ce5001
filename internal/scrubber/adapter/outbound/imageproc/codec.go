package imageproc

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	// Register decoders for every supported input format.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/port"
	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality matches the fixed output encoding.
const DefaultJPEGQuality = 95

// Codec implements port.ImageCodec on top of the Go image stack. Output is
// always a freshly encoded JPEG, so no input metadata segment can carry over.
type Codec struct {
	quality int
}

// Ensure Codec implements port.ImageCodec.
var _ port.ImageCodec = (*Codec)(nil)

func NewCodec(quality int) *Codec {
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &Codec{quality: quality}
}

// Decode parses raw bytes with whichever registered decoder matches.
func (c *Codec) Decode(ctx context.Context, data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Canonicalize flattens the image onto an opaque white background.
// Transparent regions become white, never black. Palette and alpha modes all
// land in the same three-channel representation after encoding.
func (c *Codec) Canonicalize(img image.Image) image.Image {
	bounds := img.Bounds()
	background := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(background, img, image.Pt(0, 0), 1.0)
}

// Encode serializes into a fresh JPEG stream at the configured quality.
func (c *Codec) Encode(ctx context.Context, img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(c.quality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
