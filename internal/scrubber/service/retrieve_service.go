package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/domain"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/metrics"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/port"
	"github.com/anthanhphan/go-image-scrubber/pkg/idgen"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/spaolacci/murmur3"
)

// retrieveService delivers a derived object at most once and purges both
// stored objects afterwards.
type retrieveService struct {
	core *ScrubServiceImpl
}

// newRetrieveService creates the retrieve use-case service.
func newRetrieveService(core *ScrubServiceImpl) *retrieveService {
	return &retrieveService{core: core}
}

// retrieve streams the derived object for id into writer. Unknown,
// already-delivered and expired identifiers are indistinguishable by design.
func (s *retrieveService) retrieve(ctx context.Context, id string, writer io.Writer) error {
	if !idgen.Valid(id) {
		metrics.RetrievalsTotal.WithLabelValues("not_found").Inc()
		return port.ErrObjectNotFound
	}

	// The atomic take is what makes delivery at-most-once: a concurrent
	// retrieval for the same identifier loses the claim and sees NotFound.
	obj, reader, err := s.core.store.TakeObject(ctx, id, domain.NamespaceDerived)
	if err != nil {
		if errors.Is(err, port.ErrObjectNotFound) {
			metrics.RetrievalsTotal.WithLabelValues("not_found").Inc()
			return port.ErrObjectNotFound
		}
		logger.Errorw("Claim failed", "file_id", id, "error", err.Error())
		metrics.RetrievalsTotal.WithLabelValues("io_failure").Inc()
		return err
	}

	// Cleanup runs on every exit path, including stream failures and client
	// disconnects. Closing the claim discards the derived bytes; the rest
	// uses a fresh context so a cancelled request cannot skip it.
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Warnw("Failed to discard claimed object", "file_id", id, "error", err.Error())
		}
		s.cleanup(id)
	}()

	hash := murmur3.New32()
	n, err := io.Copy(writer, io.TeeReader(reader, hash))
	if err != nil {
		logger.Warnw("Delivery stream failed", "file_id", id, "bytes_sent", n, "error", err.Error())
		metrics.RetrievalsTotal.WithLabelValues("stream_failed").Inc()
		return fmt.Errorf("failed to stream derived object: %w", err)
	}

	if obj.Checksum != 0 && hash.Sum32() != obj.Checksum {
		// The claim is already consumed either way; record the mismatch.
		logger.Warnw("Checksum mismatch on delivery", "file_id", id, "expected", obj.Checksum, "actual", hash.Sum32())
	}

	logger.Infow("Delivered sanitized object", "file_id", id, "bytes", n)
	metrics.RetrievalsTotal.WithLabelValues("ok").Inc()
	return nil
}

// cleanup deletes both namespaces for id. Deletes are idempotent, so racing
// the sweeper here is harmless.
func (s *retrieveService) cleanup(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, ns := range domain.Namespaces {
		if err := s.core.store.DeleteObject(ctx, id, ns); err != nil {
			logger.Warnw("Post-delivery cleanup failed", "file_id", id, "namespace", ns, "error", err.Error())
		}
	}
}
