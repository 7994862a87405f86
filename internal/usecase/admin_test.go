package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/mobolade/chowpay/internal/domain/errors"
	"github.com/mobolade/chowpay/internal/domain/model"
	"github.com/mobolade/chowpay/internal/test"
)

func TestAdminCompleteWithdrawal(t *testing.T) {
	withdrawals := test.NewWithdrawalRepositoryStub()
	code := "TRF_stuck"
	withdrawals.Add(&model.Withdrawal{
		AgentID:      7,
		Amount:       decimal.RequireFromString("200"),
		Status:       model.WithdrawalStatusProcessing,
		TransferCode: &code,
	})
	uc := NewAdminUseCase(withdrawals, testLogger())

	w, err := uc.CompleteWithdrawal(context.Background(), 1, 42, "manual-ref-1", "confirmed via dashboard")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Status != model.WithdrawalStatusCompleted {
		t.Errorf("status = %s, want completed", w.Status)
	}
	if w.ApprovedBy == nil || *w.ApprovedBy != 42 {
		t.Errorf("approved by = %v, want 42", w.ApprovedBy)
	}
	if w.TransferCode == nil || *w.TransferCode != "manual-ref-1" {
		t.Errorf("transfer code = %v, want manual reference", w.TransferCode)
	}
}

func TestAdminCompleteWithdrawalTerminal(t *testing.T) {
	withdrawals := test.NewWithdrawalRepositoryStub()
	withdrawals.Add(&model.Withdrawal{AgentID: 7, Status: model.WithdrawalStatusCompleted})
	uc := NewAdminUseCase(withdrawals, testLogger())

	_, err := uc.CompleteWithdrawal(context.Background(), 1, 42, "", "")
	if !errors.Is(err, domainErrors.ErrWithdrawalFinalized) {
		t.Fatalf("error = %v, want ErrWithdrawalFinalized", err)
	}
}

func TestAdminCompleteWithdrawalNotFound(t *testing.T) {
	uc := NewAdminUseCase(test.NewWithdrawalRepositoryStub(), testLogger())

	_, err := uc.CompleteWithdrawal(context.Background(), 99, 42, "", "")
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
