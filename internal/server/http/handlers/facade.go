package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mobolade/chowpay/internal/domain/model"
)

// WebhookFacade describes the settlement operations driven by gateway events.
type WebhookFacade interface {
	ProcessChargeSuccess(ctx context.Context, reference string, amountMinor int64) error
	HandleTransferSuccess(ctx context.Context, transferCode string) error
	HandleTransferFailed(ctx context.Context, transferCode, failReason string) error
}

// WithdrawalFacade provides withdrawal operations exposed via HTTP.
type WithdrawalFacade interface {
	RequestWithdrawal(ctx context.Context, agentID int64, amount decimal.Decimal, withdrawalType string) (*model.Withdrawal, error)
	Withdrawals(ctx context.Context, agentID int64) ([]model.Withdrawal, error)
}

// BankFacade provides payout profile verification.
type BankFacade interface {
	VerifyBankAccount(ctx context.Context, agentID int64, accountNumber, bankCode string) (*model.PayoutProfile, error)
}

// AdminFacade provides the manual override operations.
type AdminFacade interface {
	CompleteWithdrawal(ctx context.Context, withdrawalID, adminID int64, gatewayReference, notes string) (*model.Withdrawal, error)
}

// SettlementFacade aggregates the full set of operations used across handlers.
type SettlementFacade interface {
	WebhookFacade
	WithdrawalFacade
	BankFacade
	AdminFacade
}

// Pinger reports storage connectivity for health checks.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}
