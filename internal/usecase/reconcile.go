package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/mobolade/chowpay/internal/domain/errors"
	"github.com/mobolade/chowpay/internal/domain/model"
	"github.com/mobolade/chowpay/internal/domain/repository"
)

// ReconcileUseCase finalizes processing withdrawals from asynchronous
// transfer-status webhook events.
type ReconcileUseCase struct {
	withdrawals       repository.WithdrawalRepository
	ledger            repository.LedgerRepository
	recreditOnFailure bool
	logger            *slog.Logger
}

// NewReconcileUseCase constructs ReconcileUseCase. recreditOnFailure controls
// whether a failed transfer returns the debited amount to the wallet.
func NewReconcileUseCase(withdrawals repository.WithdrawalRepository, ledger repository.LedgerRepository, recreditOnFailure bool, logger *slog.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{
		withdrawals:       withdrawals,
		ledger:            ledger,
		recreditOnFailure: recreditOnFailure,
		logger:            logger,
	}
}

// HandleTransferSuccess marks the withdrawal behind transferCode completed.
// An unknown code is a no-op: the transfer may belong to a flow outside this
// system, and erroring would make the gateway retry forever.
func (u *ReconcileUseCase) HandleTransferSuccess(ctx context.Context, transferCode string) error {
	_, err := u.withdrawals.Finalize(ctx, transferCode, model.WithdrawalStatusCompleted, "")
	return u.swallowNoOp(err, transferCode)
}

// HandleTransferFailed marks the withdrawal behind transferCode failed and,
// when the re-credit policy is on, returns the debited amount to the wallet
// so the balance again reflects only successfully transferred-out funds.
func (u *ReconcileUseCase) HandleTransferFailed(ctx context.Context, transferCode, failReason string) error {
	if failReason == "" {
		failReason = "transfer failed"
	}

	withdrawal, err := u.withdrawals.Finalize(ctx, transferCode, model.WithdrawalStatusFailed, failReason)
	if err != nil {
		return u.swallowNoOp(err, transferCode)
	}

	if !u.recreditOnFailure {
		u.logger.Warn("transfer failed after debit, re-credit policy is off",
			slog.Int64("withdrawal_id", withdrawal.ID), slog.String("reason", failReason))
		return nil
	}

	description := fmt.Sprintf("re-credit for failed transfer %s", withdrawal.Reference)
	err = u.ledger.Credit(ctx, withdrawal.AgentID, walletTypeFor(withdrawal.Type), withdrawal.Amount,
		model.ReferenceTypeWithdrawal, withdrawal.Reference, description)
	if errors.Is(err, domainErrors.ErrAlreadyProcessed) {
		// A replayed failure event already re-credited this withdrawal.
		return nil
	}
	return err
}

func (u *ReconcileUseCase) swallowNoOp(err error, transferCode string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domainErrors.ErrNotFound):
		u.logger.Info("transfer event for unknown withdrawal", slog.String("transfer_code", transferCode))
		return nil
	case errors.Is(err, domainErrors.ErrWithdrawalFinalized):
		u.logger.Info("transfer event for finalized withdrawal", slog.String("transfer_code", transferCode))
		return nil
	default:
		return err
	}
}
