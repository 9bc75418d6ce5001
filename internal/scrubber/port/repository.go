package port

import (
	"context"
	"image"
	"io"

	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/domain"
)

//go:generate mockgen -destination=../service/mocks/repository_mock.go -package=mocks -source=repository.go

// ObjectStore manages on-disk objects in two namespaces keyed by identifier.
// Operations on distinct identifiers are safe to run concurrently; the
// coordinator serializes operations on the same identifier, except TakeObject
// which is atomic by itself.
type ObjectStore interface {
	// WriteObject streams reader to durable storage under (id, namespace).
	// Writing an existing pair fails with ErrDuplicateObject.
	WriteObject(ctx context.Context, id string, ns domain.Namespace, ext string, reader io.Reader) (domain.StoredObject, error)

	// ReadObject opens the object for reading. ErrObjectNotFound when absent.
	ReadObject(ctx context.Context, id string, ns domain.Namespace) (domain.StoredObject, io.ReadCloser, error)

	// TakeObject atomically claims the object for exclusive consumption.
	// Exactly one concurrent caller wins; the rest get ErrObjectNotFound.
	// Closing the returned reader discards the claimed bytes.
	TakeObject(ctx context.Context, id string, ns domain.Namespace) (domain.StoredObject, io.ReadCloser, error)

	// DeleteObject removes the object. Deleting a missing object is a no-op.
	DeleteObject(ctx context.Context, id string, ns domain.Namespace) error

	// ListObjects re-enumerates the namespace's current disk state.
	// No ordering guarantee. Used by the reclamation sweeper.
	ListObjects(ctx context.Context, ns domain.Namespace) ([]domain.StoredObject, error)
}

// ImageCodec is the external image-processing capability the pipeline
// consumes. It never touches the object store.
type ImageCodec interface {
	// Decode parses raw bytes into an image.
	Decode(ctx context.Context, data []byte) (image.Image, error)

	// ExtractMetadata reads embedded tags from the raw bytes. Absence of
	// metadata yields an empty snapshot, not an error.
	ExtractMetadata(ctx context.Context, data []byte) (domain.MetadataSnapshot, error)

	// Canonicalize flattens transparency and palette color onto an opaque
	// white background and normalizes to a three-channel representation.
	Canonicalize(img image.Image) image.Image

	// Encode serializes the canonical image into the fixed output format
	// with no metadata segment.
	Encode(ctx context.Context, img image.Image) ([]byte, error)
}
