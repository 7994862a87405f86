package test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mobolade/chowpay/internal/domain/model"
)

// SettlementFacadeStub fakes the handler-facing facade with overridable
// functions and recorded calls.
type SettlementFacadeStub struct {
	ProcessChargeSuccessFn  func(context.Context, string, int64) error
	HandleTransferSuccessFn func(context.Context, string) error
	HandleTransferFailedFn  func(context.Context, string, string) error
	RequestWithdrawalFn     func(context.Context, int64, decimal.Decimal, string) (*model.Withdrawal, error)
	WithdrawalsFn           func(context.Context, int64) ([]model.Withdrawal, error)
	VerifyBankAccountFn     func(context.Context, int64, string, string) (*model.PayoutProfile, error)
	CompleteWithdrawalFn    func(context.Context, int64, int64, string, string) (*model.Withdrawal, error)

	ChargeRefs    []string
	SuccessCodes  []string
	FailedCodes   []string
	WithdrawCalls []int64
}

// ProcessChargeSuccess records the reference and delegates to the override.
func (s *SettlementFacadeStub) ProcessChargeSuccess(ctx context.Context, reference string, amountMinor int64) error {
	s.ChargeRefs = append(s.ChargeRefs, reference)
	if s.ProcessChargeSuccessFn != nil {
		return s.ProcessChargeSuccessFn(ctx, reference, amountMinor)
	}
	return nil
}

// HandleTransferSuccess records the code and delegates to the override.
func (s *SettlementFacadeStub) HandleTransferSuccess(ctx context.Context, transferCode string) error {
	s.SuccessCodes = append(s.SuccessCodes, transferCode)
	if s.HandleTransferSuccessFn != nil {
		return s.HandleTransferSuccessFn(ctx, transferCode)
	}
	return nil
}

// HandleTransferFailed records the code and delegates to the override.
func (s *SettlementFacadeStub) HandleTransferFailed(ctx context.Context, transferCode, failReason string) error {
	s.FailedCodes = append(s.FailedCodes, transferCode)
	if s.HandleTransferFailedFn != nil {
		return s.HandleTransferFailedFn(ctx, transferCode, failReason)
	}
	return nil
}

// RequestWithdrawal records the agent and delegates to the override.
func (s *SettlementFacadeStub) RequestWithdrawal(ctx context.Context, agentID int64, amount decimal.Decimal, withdrawalType string) (*model.Withdrawal, error) {
	s.WithdrawCalls = append(s.WithdrawCalls, agentID)
	if s.RequestWithdrawalFn != nil {
		return s.RequestWithdrawalFn(ctx, agentID, amount, withdrawalType)
	}
	return &model.Withdrawal{ID: 1, AgentID: agentID, Amount: amount, Status: model.WithdrawalStatusProcessing}, nil
}

// Withdrawals delegates to the override or returns an empty history.
func (s *SettlementFacadeStub) Withdrawals(ctx context.Context, agentID int64) ([]model.Withdrawal, error) {
	if s.WithdrawalsFn != nil {
		return s.WithdrawalsFn(ctx, agentID)
	}
	return nil, nil
}

// VerifyBankAccount delegates to the override or returns a verified profile.
func (s *SettlementFacadeStub) VerifyBankAccount(ctx context.Context, agentID int64, accountNumber, bankCode string) (*model.PayoutProfile, error) {
	if s.VerifyBankAccountFn != nil {
		return s.VerifyBankAccountFn(ctx, agentID, accountNumber, bankCode)
	}
	return &model.PayoutProfile{UserID: agentID, AccountNumber: accountNumber, BankCode: bankCode, AccountName: "STUB HOLDER", Verified: true}, nil
}

// CompleteWithdrawal delegates to the override or returns a completed row.
func (s *SettlementFacadeStub) CompleteWithdrawal(ctx context.Context, withdrawalID, adminID int64, gatewayReference, notes string) (*model.Withdrawal, error) {
	if s.CompleteWithdrawalFn != nil {
		return s.CompleteWithdrawalFn(ctx, withdrawalID, adminID, gatewayReference, notes)
	}
	return &model.Withdrawal{ID: withdrawalID, Status: model.WithdrawalStatusCompleted, ApprovedBy: &adminID}, nil
}

// PingerStub fakes the storage health check.
type PingerStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s *PingerStub) HealthCheck(ctx context.Context) error {
	return s.Err
}
