package service

import (
	"context"
	"io"

	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/domain"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/port"
)

// sanitizeService runs the validation → extract → canonicalize → re-encode
// pipeline against an ingested original.
type sanitizeService struct {
	core *ScrubServiceImpl
}

// newSanitizeService creates the sanitization use-case service.
func newSanitizeService(core *ScrubServiceImpl) *sanitizeService {
	return &sanitizeService{core: core}
}

// sanitize produces metadata-free derived bytes plus the extracted snapshot.
// The snapshot only lives in the returned value; it is never stored.
func (s *sanitizeService) sanitize(ctx context.Context, original domain.StoredObject) ([]byte, domain.MetadataSnapshot, error) {
	// Checked before any decode attempt so unsupported formats never reach
	// the heavier parse paths.
	if !domain.IsSupportedExtension(original.Extension) {
		return nil, nil, &port.SanitizationError{Stage: "validate", Err: port.ErrUnsupportedType}
	}

	data, err := s.readOriginal(ctx, original.ID)
	if err != nil {
		return nil, nil, &port.SanitizationError{Stage: "read", Err: err}
	}

	meta, err := s.core.codec.ExtractMetadata(ctx, data)
	if err != nil {
		return nil, nil, &port.SanitizationError{Stage: "extract", Err: err}
	}

	img, err := s.core.codec.Decode(ctx, data)
	if err != nil {
		return nil, nil, &port.SanitizationError{Stage: "decode", Err: err}
	}

	// Encoding a freshly built stream is what guarantees no input tag
	// survives, including blocks the extractor does not recognize.
	out, err := s.core.codec.Encode(ctx, s.core.codec.Canonicalize(img))
	if err != nil {
		return nil, nil, &port.SanitizationError{Stage: "encode", Err: err}
	}

	return out, meta, nil
}

func (s *sanitizeService) readOriginal(ctx context.Context, id string) ([]byte, error) {
	_, reader, err := s.core.store.ReadObject(ctx, id, domain.NamespaceOriginal)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(reader)
	if closeErr := reader.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}
