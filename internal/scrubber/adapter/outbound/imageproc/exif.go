package imageproc

import (
	"bytes"
	"context"

	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/domain"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// tagCollector accumulates walked EXIF fields into a snapshot.
type tagCollector struct {
	snap domain.MetadataSnapshot
}

func (c *tagCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	if s, err := tag.StringVal(); err == nil {
		c.snap[string(name)] = s
		return nil
	}
	// Non-string tags keep their raw rendering.
	c.snap[string(name)] = tag.String()
	return nil
}

// ExtractMetadata reads every EXIF field goexif can name from the raw bytes.
// Files without an EXIF block (most PNGs and BMPs included) yield an empty
// snapshot; that is not an error.
func (c *Codec) ExtractMetadata(ctx context.Context, data []byte) (domain.MetadataSnapshot, error) {
	snap := domain.MetadataSnapshot{}

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return snap, nil
	}

	collector := &tagCollector{snap: snap}
	if err := x.Walk(collector); err != nil {
		// Partial snapshots are still useful; the re-encode step destroys
		// everything regardless of what was read here.
		return snap, nil
	}

	return snap, nil
}
