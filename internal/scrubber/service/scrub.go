package service

import (
	"context"
	"io"

	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/config"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/domain"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/port"
)

// ScrubServiceImpl is the facade that wires use-case services for the
// temporary-object lifecycle.
type ScrubServiceImpl struct {
	cfg   *config.Config
	store port.ObjectStore
	codec port.ImageCodec

	submitUseCase   *submitService
	retrieveUseCase *retrieveService
	sanitizer       *sanitizeService
	sweeper         *sweeperService
}

// Ensure ScrubServiceImpl implements port.ScrubService.
var _ port.ScrubService = (*ScrubServiceImpl)(nil)

// NewScrubService builds the lifecycle facade and all use-case services.
func NewScrubService(cfg *config.Config, store port.ObjectStore, codec port.ImageCodec, idGen IDGenerator) *ScrubServiceImpl {
	svc := &ScrubServiceImpl{
		cfg:   cfg,
		store: store,
		codec: codec,
	}

	svc.sanitizer = newSanitizeService(svc)
	svc.submitUseCase = newSubmitService(svc, svc.sanitizer, idGen)
	svc.retrieveUseCase = newRetrieveService(svc)
	svc.sweeper = newSweeperService(svc)

	return svc
}

// Submit delegates ingest and sanitization to the submit use-case service.
func (s *ScrubServiceImpl) Submit(ctx context.Context, fileName string, reader io.Reader) (*domain.UploadReceipt, error) {
	return s.submitUseCase.submit(ctx, fileName, reader)
}

// Retrieve delegates single-use delivery to the retrieve use-case service.
func (s *ScrubServiceImpl) Retrieve(ctx context.Context, id string, writer io.Writer) error {
	return s.retrieveUseCase.retrieve(ctx, id, writer)
}

// StartSweeper runs the reclamation worker until ctx is cancelled.
func (s *ScrubServiceImpl) StartSweeper(ctx context.Context) {
	s.sweeper.startWorker(ctx, s.cfg.App.SweepInterval())
}
