package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mobolade/chowpay/internal/adapter/paystack"
	domainErrors "github.com/mobolade/chowpay/internal/domain/errors"
	"github.com/mobolade/chowpay/internal/domain/model"
	"github.com/mobolade/chowpay/internal/domain/repository"
)

// WithdrawalTypeEarnings is the default payout source.
const WithdrawalTypeEarnings = "earnings"

// transferStatusSuccess is the gateway transfer state meaning money moved
// synchronously, with no webhook to wait for.
const transferStatusSuccess = "success"

// WithdrawalUseCase orchestrates payouts of wallet balances to external bank
// accounts through the payment gateway.
type WithdrawalUseCase struct {
	agents      repository.AgentRepository
	ledger      repository.LedgerRepository
	profiles    repository.PayoutProfileRepository
	withdrawals repository.WithdrawalRepository
	gateway     paystack.Client
	logger      *slog.Logger
}

// NewWithdrawalUseCase constructs WithdrawalUseCase.
func NewWithdrawalUseCase(
	agents repository.AgentRepository,
	ledger repository.LedgerRepository,
	profiles repository.PayoutProfileRepository,
	withdrawals repository.WithdrawalRepository,
	gateway paystack.Client,
	logger *slog.Logger,
) *WithdrawalUseCase {
	return &WithdrawalUseCase{
		agents:      agents,
		ledger:      ledger,
		profiles:    profiles,
		withdrawals: withdrawals,
		gateway:     gateway,
		logger:      logger,
	}
}

// Request runs the full withdrawal flow: validation, recipient provisioning,
// withdrawal record creation, the external transfer call, and the wallet
// debit. The debit happens strictly after the gateway accepts the transfer,
// so a rejected or timed-out call never touches the balance.
func (u *WithdrawalUseCase) Request(ctx context.Context, agentID int64, amount decimal.Decimal, withdrawalType string) (*model.Withdrawal, error) {
	if !amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	if withdrawalType == "" {
		withdrawalType = WithdrawalTypeEarnings
	}
	walletType := walletTypeFor(withdrawalType)

	agent, err := u.agents.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	if err := u.ledger.EnsureWallets(ctx, agentID); err != nil {
		return nil, err
	}

	wallet, err := u.ledger.GetWallet(ctx, agentID, walletType)
	if err != nil {
		return nil, err
	}
	if wallet.Balance.LessThan(amount) {
		return nil, domainErrors.ErrInsufficientBalance
	}

	profile, err := u.profiles.GetByUserID(ctx, agent.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrProfileMissing
		}
		return nil, err
	}
	if !profile.Verified {
		return nil, domainErrors.ErrProfileUnverified
	}

	recipientCode, err := u.ensureRecipient(ctx, profile)
	if err != nil {
		return nil, err
	}

	reference := "wd_" + uuid.NewString()
	withdrawal, err := u.withdrawals.Create(ctx, agentID, amount, withdrawalType, reference)
	if err != nil {
		return nil, err
	}

	result, err := u.gateway.InitiateTransfer(ctx, paystack.TransferRequest{
		Amount:        amount,
		RecipientCode: recipientCode,
		Reference:     reference,
		Reason:        "wallet withdrawal",
	})
	if err != nil {
		if markErr := u.withdrawals.MarkFailed(ctx, withdrawal.ID, err.Error()); markErr != nil {
			u.logger.Error("failed to record withdrawal failure",
				slog.Int64("withdrawal_id", withdrawal.ID), slog.String("error", markErr.Error()))
		}
		return nil, err
	}

	if err := u.withdrawals.MarkProcessing(ctx, withdrawal.ID, result.TransferCode); err != nil {
		return nil, err
	}
	withdrawal.Status = model.WithdrawalStatusProcessing
	withdrawal.TransferCode = &result.TransferCode

	description := fmt.Sprintf("withdrawal %s to %s", reference, profile.AccountNumber)
	if err := u.ledger.Debit(ctx, agentID, walletType, amount, model.ReferenceTypeWithdrawal, reference, description); err != nil {
		// The transfer is already in flight and cannot be retracted; the
		// failed debit leaves the ledger ahead of the gateway and needs
		// operator attention.
		u.logger.Error("wallet debit failed after transfer acceptance",
			slog.Int64("withdrawal_id", withdrawal.ID), slog.String("error", err.Error()))
		return nil, err
	}

	if result.Status == transferStatusSuccess {
		finalized, err := u.withdrawals.Finalize(ctx, result.TransferCode, model.WithdrawalStatusCompleted, "")
		if err != nil {
			u.logger.Error("failed to finalize synchronous transfer",
				slog.Int64("withdrawal_id", withdrawal.ID), slog.String("error", err.Error()))
			return withdrawal, nil
		}
		return finalized, nil
	}

	return withdrawal, nil
}

// History returns the agent's withdrawals, newest first.
func (u *WithdrawalUseCase) History(ctx context.Context, agentID int64) ([]model.Withdrawal, error) {
	if _, err := u.agents.GetByID(ctx, agentID); err != nil {
		return nil, err
	}
	return u.withdrawals.ListByAgent(ctx, agentID)
}

// ensureRecipient returns the profile's transfer recipient code, creating it
// at the gateway on first use. Persisting the fresh code is best-effort: the
// withdrawal proceeds with the in-memory code even if the write fails.
func (u *WithdrawalUseCase) ensureRecipient(ctx context.Context, profile *model.PayoutProfile) (string, error) {
	if profile.RecipientCode != nil && *profile.RecipientCode != "" {
		return *profile.RecipientCode, nil
	}

	code, err := u.gateway.CreateRecipient(ctx, paystack.RecipientRequest{
		Name:          profile.AccountName,
		AccountNumber: profile.AccountNumber,
		BankCode:      profile.BankCode,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domainErrors.ErrRecipientCreation, err)
	}

	if err := u.profiles.SetRecipientCode(ctx, profile.UserID, code); err != nil {
		u.logger.Warn("failed to persist recipient code",
			slog.Int64("user_id", profile.UserID), slog.String("error", err.Error()))
	}
	return code, nil
}

func walletTypeFor(withdrawalType string) model.WalletType {
	if withdrawalType == "food" {
		return model.WalletTypeFood
	}
	return model.WalletTypeEarnings
}
