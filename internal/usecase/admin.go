package usecase

import (
	"context"
	"log/slog"

	"github.com/mobolade/chowpay/internal/domain/model"
	"github.com/mobolade/chowpay/internal/domain/repository"
)

// AdminUseCase covers the manual override path for withdrawals settled
// outside the gateway flow.
type AdminUseCase struct {
	withdrawals repository.WithdrawalRepository
	logger      *slog.Logger
}

// NewAdminUseCase constructs AdminUseCase.
func NewAdminUseCase(withdrawals repository.WithdrawalRepository, logger *slog.Logger) *AdminUseCase {
	return &AdminUseCase{withdrawals: withdrawals, logger: logger}
}

// CompleteWithdrawal force-transitions a pending or processing withdrawal to
// completed with a manual reference. Terminal withdrawals are rejected.
func (u *AdminUseCase) CompleteWithdrawal(ctx context.Context, withdrawalID, adminID int64, gatewayReference, notes string) (*model.Withdrawal, error) {
	withdrawal, err := u.withdrawals.AdminComplete(ctx, withdrawalID, adminID, gatewayReference, notes)
	if err != nil {
		return nil, err
	}
	u.logger.Info("withdrawal completed by admin override",
		slog.Int64("withdrawal_id", withdrawalID), slog.Int64("admin_id", adminID))
	return withdrawal, nil
}
