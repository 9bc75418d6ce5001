package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/domain"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/metrics"
	"github.com/anthanhphan/go-image-scrubber/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
)

// sweeperService reclaims objects past the retention window, independent of
// any per-request cleanup. It holds delete rights over the same store the
// request path manages; idempotent deletes make the races benign.
type sweeperService struct {
	core *ScrubServiceImpl
}

// newSweeperService creates the reclamation use-case service.
func newSweeperService(core *ScrubServiceImpl) *sweeperService {
	return &sweeperService{core: core}
}

// startWorker runs periodic reclamation until context cancellation.
func (s *sweeperService) startWorker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep deletes every object older than the retention window. Per-object
// failures are logged and skipped; a pass never aborts and never ends the
// process.
func (s *sweeperService) sweep(ctx context.Context) (deleted int64, reclaimed int64) {
	retention := s.core.cfg.App.RetentionWindow()
	workers := s.core.cfg.App.SweepWorkers
	if workers <= 0 {
		workers = 4
	}

	pool := resilience.NewWorkerPool(workers, workers*2)
	var deletedCount, bytesReclaimed int64
	now := time.Now()

	for _, ns := range domain.Namespaces {
		objects, err := s.core.store.ListObjects(ctx, ns)
		if err != nil {
			logger.Warnw("Sweep listing failed", "namespace", ns, "error", err.Error())
			continue
		}

		for _, obj := range objects {
			if obj.Age(now) <= retention {
				continue
			}

			target := obj
			err := pool.Submit(ctx, func() {
				if err := s.core.store.DeleteObject(ctx, target.ID, target.Namespace); err != nil {
					logger.Warnw("Sweep delete failed",
						"file_id", target.ID,
						"namespace", target.Namespace,
						"error", err.Error())
					return
				}
				atomic.AddInt64(&deletedCount, 1)
				atomic.AddInt64(&bytesReclaimed, target.Size)
			})
			if err != nil {
				logger.Warnw("Sweep submit failed", "file_id", target.ID, "error", err.Error())
			}
		}
	}

	pool.Close()
	pool.Wait()

	deleted = atomic.LoadInt64(&deletedCount)
	reclaimed = atomic.LoadInt64(&bytesReclaimed)
	if deleted > 0 {
		metrics.SweepDeletedTotal.Add(float64(deleted))
		metrics.SweepReclaimedBytes.Add(float64(reclaimed))
	}
	logger.Infow("Sweep finished", "deleted", deleted, "bytes_reclaimed", reclaimed)
	return deleted, reclaimed
}
