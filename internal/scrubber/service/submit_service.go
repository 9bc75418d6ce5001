package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/domain"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/metrics"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/port"
	"github.com/anthanhphan/gosdk/logger"
)

//go:generate mockgen -destination=mocks/dependencies_mock.go -package=mocks -source=submit_service.go

// IDGenerator defines identifier minting capability.
type IDGenerator interface {
	Next() (string, error)
}

// submitService orchestrates ingest, sanitization and derived-object storage.
type submitService struct {
	core      *ScrubServiceImpl
	sanitizer *sanitizeService
	idGen     IDGenerator
}

// newSubmitService creates the submit use-case service.
func newSubmitService(core *ScrubServiceImpl, sanitizer *sanitizeService, idGen IDGenerator) *submitService {
	return &submitService{core: core, sanitizer: sanitizer, idGen: idGen}
}

// submit performs the full ingest workflow. Any failure after the original is
// written rolls the identifier back to the empty state.
func (s *submitService) submit(ctx context.Context, fileName string, reader io.Reader) (*domain.UploadReceipt, error) {
	ext := domain.NormalizeExtension(fileName)
	if !domain.IsSupportedExtension(ext) {
		metrics.SubmitsTotal.WithLabelValues("unsupported_type").Inc()
		return nil, port.ErrUnsupportedType
	}

	id, err := s.idGen.Next()
	if err != nil {
		metrics.SubmitsTotal.WithLabelValues("internal_error").Inc()
		return nil, fmt.Errorf("failed to mint identifier: %w", err)
	}

	logger.Infow("Submit started", "file_id", id, "file_name", fileName)

	// The limit check runs against bytes actually written, never against a
	// client-supplied length. One extra byte distinguishes "at limit" from
	// "over limit" without buffering the whole stream.
	maxBytes := s.core.cfg.App.MaxUploadBytes
	original, err := s.core.store.WriteObject(ctx, id, domain.NamespaceOriginal, ext, io.LimitReader(reader, maxBytes+1))
	if err != nil {
		logger.Errorw("Ingest write failed", "file_id", id, "error", err.Error())
		metrics.SubmitsTotal.WithLabelValues("io_failure").Inc()
		return nil, err
	}

	if original.Size > maxBytes {
		s.rollback(ctx, id)
		metrics.SubmitsTotal.WithLabelValues("too_large").Inc()
		return nil, port.ErrPayloadTooLarge
	}

	derived, meta, err := s.sanitizer.sanitize(ctx, original)
	if err != nil {
		logger.Warnw("Sanitization failed", "file_id", id, "error", err.Error())
		s.rollback(ctx, id)
		metrics.SubmitsTotal.WithLabelValues("sanitization_failed").Inc()
		return nil, err
	}

	derivedObj, err := s.core.store.WriteObject(ctx, id, domain.NamespaceDerived, domain.OutputExtension, bytes.NewReader(derived))
	if err != nil {
		logger.Errorw("Derived write failed", "file_id", id, "error", err.Error())
		s.rollback(ctx, id)
		metrics.SubmitsTotal.WithLabelValues("io_failure").Inc()
		return nil, err
	}

	logger.Infow("Submit completed",
		"file_id", id,
		"original_bytes", original.Size,
		"derived_bytes", derivedObj.Size,
		"tags", len(meta))
	metrics.SubmitsTotal.WithLabelValues("ok").Inc()

	return &domain.UploadReceipt{
		Success:       true,
		FileID:        id,
		OriginalName:  fileName,
		OriginalSize:  original.Size,
		ProcessedSize: derivedObj.Size,
		Metadata:      meta,
	}, nil
}

// rollback best-effort deletes whatever exists for id. Errors are logged and
// swallowed; the sweeper is the backstop.
func (s *submitService) rollback(ctx context.Context, id string) {
	for _, ns := range domain.Namespaces {
		if err := s.core.store.DeleteObject(ctx, id, ns); err != nil {
			logger.Warnw("Rollback delete failed", "file_id", id, "namespace", ns, "error", err.Error())
		}
	}
}
