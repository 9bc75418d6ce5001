package port

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/domain"
)

var (
	// ErrUnsupportedType is returned for extensions outside the allow-list.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrPayloadTooLarge is returned when the written upload exceeds the
	// configured limit.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrObjectNotFound covers unknown, already-delivered and expired
	// identifiers alike so callers cannot probe which case occurred.
	ErrObjectNotFound = errors.New("object not found")

	// ErrDuplicateObject signals a write for an (id, namespace) pair that
	// already exists. This is a programming error, not a client error.
	ErrDuplicateObject = errors.New("object already exists")

	// ErrStorageFull signals the medium rejected a write for lack of space.
	ErrStorageFull = errors.New("storage full")
)

// SanitizationError reports a failed pipeline stage with its cause.
type SanitizationError struct {
	Stage string
	Err   error
}

func (e *SanitizationError) Error() string {
	return fmt.Sprintf("sanitization failed at %s: %v", e.Stage, e.Err)
}

func (e *SanitizationError) Unwrap() error {
	return e.Err
}

// ScrubService defines the request-facing lifecycle operations.
type ScrubService interface {
	// Submit ingests an upload, sanitizes it, and stores the derived object.
	Submit(ctx context.Context, fileName string, reader io.Reader) (*domain.UploadReceipt, error)

	// Retrieve streams the derived object for id into writer at most once,
	// then purges both stored objects regardless of stream outcome.
	Retrieve(ctx context.Context, id string, writer io.Writer) error
}
