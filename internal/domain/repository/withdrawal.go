package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mobolade/chowpay/internal/domain/model"
)

// WithdrawalRepository drives the payout state machine rows.
type WithdrawalRepository interface {
	Create(ctx context.Context, agentID int64, amount decimal.Decimal, withdrawalType, reference string) (*model.Withdrawal, error)
	GetByID(ctx context.Context, id int64) (*model.Withdrawal, error)
	GetByTransferCode(ctx context.Context, transferCode string) (*model.Withdrawal, error)
	ListByAgent(ctx context.Context, agentID int64) ([]model.Withdrawal, error)

	MarkProcessing(ctx context.Context, id int64, transferCode string) error

	// MarkFailed transitions a still-pending withdrawal to failed with the
	// reason recorded. Returns ErrNotFound when the row is missing or no
	// longer pending.
	MarkFailed(ctx context.Context, id int64, errorMessage string) error

	// Finalize transitions a processing withdrawal found by transfer code to
	// its terminal status and stamps processed_at. Returns the updated row,
	// ErrNotFound when no row matches the code, ErrWithdrawalFinalized when
	// the row is already terminal.
	Finalize(ctx context.Context, transferCode string, status model.WithdrawalStatus, errorMessage string) (*model.Withdrawal, error)

	// AdminComplete force-transitions a non-terminal withdrawal to completed
	// with the approving admin recorded.
	AdminComplete(ctx context.Context, id, adminID int64, gatewayReference, notes string) (*model.Withdrawal, error)

	// ListStalePending returns pending rows older than maxAge, oldest first.
	ListStalePending(ctx context.Context, maxAge time.Duration, limit int) ([]model.Withdrawal, error)
}
