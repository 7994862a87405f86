package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mobolade/chowpay/internal/domain/model"
	"github.com/mobolade/chowpay/internal/domain/repository"
	"github.com/mobolade/chowpay/internal/usecase"
)

// SettlementFacade aggregates the settlement use cases behind one surface
// consumed by HTTP handlers and the background sweeper.
type SettlementFacade struct {
	split       *usecase.SplitUseCase
	withdrawal  *usecase.WithdrawalUseCase
	reconcile   *usecase.ReconcileUseCase
	bank        *usecase.BankUseCase
	admin       *usecase.AdminUseCase
	withdrawals repository.WithdrawalRepository
}

// NewSettlementFacade constructs SettlementFacade.
func NewSettlementFacade(
	split *usecase.SplitUseCase,
	withdrawal *usecase.WithdrawalUseCase,
	reconcile *usecase.ReconcileUseCase,
	bank *usecase.BankUseCase,
	admin *usecase.AdminUseCase,
	withdrawals repository.WithdrawalRepository,
) *SettlementFacade {
	return &SettlementFacade{
		split:       split,
		withdrawal:  withdrawal,
		reconcile:   reconcile,
		bank:        bank,
		admin:       admin,
		withdrawals: withdrawals,
	}
}

func (f *SettlementFacade) ProcessChargeSuccess(ctx context.Context, reference string, amountMinor int64) error {
	return f.split.ProcessChargeSuccess(ctx, reference, amountMinor)
}

func (f *SettlementFacade) HandleTransferSuccess(ctx context.Context, transferCode string) error {
	return f.reconcile.HandleTransferSuccess(ctx, transferCode)
}

func (f *SettlementFacade) HandleTransferFailed(ctx context.Context, transferCode, failReason string) error {
	return f.reconcile.HandleTransferFailed(ctx, transferCode, failReason)
}

func (f *SettlementFacade) RequestWithdrawal(ctx context.Context, agentID int64, amount decimal.Decimal, withdrawalType string) (*model.Withdrawal, error) {
	return f.withdrawal.Request(ctx, agentID, amount, withdrawalType)
}

func (f *SettlementFacade) Withdrawals(ctx context.Context, agentID int64) ([]model.Withdrawal, error) {
	return f.withdrawal.History(ctx, agentID)
}

func (f *SettlementFacade) VerifyBankAccount(ctx context.Context, agentID int64, accountNumber, bankCode string) (*model.PayoutProfile, error) {
	return f.bank.Verify(ctx, agentID, accountNumber, bankCode)
}

func (f *SettlementFacade) CompleteWithdrawal(ctx context.Context, withdrawalID, adminID int64, gatewayReference, notes string) (*model.Withdrawal, error) {
	return f.admin.CompleteWithdrawal(ctx, withdrawalID, adminID, gatewayReference, notes)
}

func (f *SettlementFacade) StalePendingWithdrawals(ctx context.Context, maxAge time.Duration, limit int) ([]model.Withdrawal, error) {
	return f.withdrawals.ListStalePending(ctx, maxAge, limit)
}

func (f *SettlementFacade) FailWithdrawal(ctx context.Context, id int64, reason string) error {
	return f.withdrawals.MarkFailed(ctx, id, reason)
}
