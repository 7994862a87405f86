package worker

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	domainErrors "github.com/mobolade/chowpay/internal/domain/errors"
	"github.com/mobolade/chowpay/internal/domain/model"
)

type facadeStub struct {
	mu     sync.Mutex
	stale  []model.Withdrawal
	failed map[int64]string
	errOn  map[int64]error
	lists  int
}

func newFacadeStub(stale ...model.Withdrawal) *facadeStub {
	return &facadeStub{
		stale:  stale,
		failed: make(map[int64]string),
		errOn:  make(map[int64]error),
	}
}

func (f *facadeStub) StalePendingWithdrawals(ctx context.Context, maxAge time.Duration, limit int) ([]model.Withdrawal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	stale := f.stale
	f.stale = nil
	if limit < len(stale) {
		stale = stale[:limit]
	}
	return stale, nil
}

func (f *facadeStub) FailWithdrawal(ctx context.Context, id int64, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errOn[id]; ok {
		return err
	}
	f.failed[id] = reason
	return nil
}

func (f *facadeStub) failedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.failed)
}

func (f *facadeStub) failedReason(id int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failed[id]
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestSweeperFailsStaleWithdrawals(t *testing.T) {
	facade := newFacadeStub(
		model.Withdrawal{ID: 1, Status: model.WithdrawalStatusPending},
		model.Withdrawal{ID: 2, Status: model.WithdrawalStatusPending},
	)
	sweeper := NewSweeper(facade, 10*time.Millisecond, time.Minute, 8, 2, testLogger())

	sweeper.Start(context.Background())
	waitFor(t, func() bool { return facade.failedCount() == 2 })
	sweeper.Stop()

	if got := facade.failedReason(1); got != staleReason {
		t.Errorf("reason = %q, want %q", got, staleReason)
	}
}

func TestSweeperSkipsProgressedRows(t *testing.T) {
	facade := newFacadeStub(
		model.Withdrawal{ID: 1, Status: model.WithdrawalStatusPending},
		model.Withdrawal{ID: 2, Status: model.WithdrawalStatusPending},
	)
	facade.errOn[1] = domainErrors.ErrNotFound
	sweeper := NewSweeper(facade, 10*time.Millisecond, time.Minute, 8, 2, testLogger())

	sweeper.Start(context.Background())
	waitFor(t, func() bool { return facade.failedCount() == 1 })
	sweeper.Stop()

	if facade.failedReason(2) != staleReason {
		t.Errorf("surviving stale row not failed")
	}
}

func TestSweeperStopBeforeTick(t *testing.T) {
	facade := newFacadeStub(model.Withdrawal{ID: 1})
	sweeper := NewSweeper(facade, time.Hour, time.Minute, 8, 2, testLogger())

	sweeper.Start(context.Background())
	sweeper.Stop()

	if facade.failedCount() != 0 {
		t.Errorf("sweeper acted before first tick")
	}
	facade.mu.Lock()
	defer facade.mu.Unlock()
	if facade.lists != 0 {
		t.Errorf("sweeper listed before first tick")
	}
}

func TestSweeperStopIsIdempotent(t *testing.T) {
	sweeper := NewSweeper(newFacadeStub(), time.Hour, time.Minute, 1, 1, testLogger())
	sweeper.Start(context.Background())
	sweeper.Stop()
	sweeper.Stop()
}
