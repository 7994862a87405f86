package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/mobolade/chowpay/internal/domain/errors"
	"github.com/mobolade/chowpay/internal/domain/model"
)

// staleReason is recorded on withdrawals whose transfer call never completed.
const staleReason = "transfer was never initiated"

// SettlementFacade exposes the subset of application functionality required
// by the sweeper.
type SettlementFacade interface {
	StalePendingWithdrawals(ctx context.Context, maxAge time.Duration, limit int) ([]model.Withdrawal, error)
	FailWithdrawal(ctx context.Context, id int64, reason string) error
}

// Sweeper periodically fails withdrawals stuck in pending: rows created
// before a crash that happened between the record insert and the external
// transfer call. No wallet compensation is needed because the debit only
// happens after the gateway accepts a transfer.
type Sweeper struct {
	facade        SettlementFacade
	sweepInterval time.Duration
	maxAge        time.Duration
	batchSize     int
	workers       int
	logger        *slog.Logger

	jobs   chan model.Withdrawal
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSweeper constructs the stale withdrawal sweeper.
func NewSweeper(facade SettlementFacade, sweepInterval, maxAge time.Duration, batchSize, workers int, logger *slog.Logger) *Sweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Sweeper{
		facade:        facade,
		sweepInterval: sweepInterval,
		maxAge:        maxAge,
		batchSize:     batchSize,
		workers:       workers,
		logger:        logger,
		jobs:          make(chan model.Withdrawal, batchSize*workers),
	}
}

// Start launches background sweeping.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Sweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx)
		}
	}
}

func (s *Sweeper) fetchAndDispatch(ctx context.Context) {
	stale, err := s.facade.StalePendingWithdrawals(ctx, s.maxAge, s.batchSize)
	if err != nil {
		s.logger.Error("fetch stale withdrawals failed", slog.String("error", err.Error()))
		return
	}
	for _, withdrawal := range stale {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- withdrawal:
		}
	}
}

func (s *Sweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case withdrawal, ok := <-s.jobs:
			if !ok {
				return
			}
			s.handleWithdrawal(ctx, withdrawal)
		}
	}
}

func (s *Sweeper) handleWithdrawal(ctx context.Context, withdrawal model.Withdrawal) {
	err := s.facade.FailWithdrawal(ctx, withdrawal.ID, staleReason)
	if err != nil {
		// Not found means the row progressed past pending between the
		// listing and this update; someone else settled it.
		if errors.Is(err, domainErrors.ErrNotFound) {
			return
		}
		s.logger.Error("fail stale withdrawal failed",
			slog.Int64("withdrawal_id", withdrawal.ID), slog.String("error", err.Error()))
		return
	}
	s.logger.Warn("stale pending withdrawal failed by sweeper",
		slog.Int64("withdrawal_id", withdrawal.ID), slog.String("reference", withdrawal.Reference))
}
