package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mobolade/chowpay/internal/adapter/paystack"
	domainErrors "github.com/mobolade/chowpay/internal/domain/errors"
	"github.com/mobolade/chowpay/internal/domain/model"
	"github.com/mobolade/chowpay/internal/test"
)

type withdrawalFixture struct {
	agents      *test.AgentRepositoryStub
	ledger      *test.LedgerRepositoryStub
	profiles    *test.PayoutProfileRepositoryStub
	withdrawals *test.WithdrawalRepositoryStub
	gateway     *test.GatewayStub
	uc          *WithdrawalUseCase
}

func newWithdrawalFixture() *withdrawalFixture {
	f := &withdrawalFixture{
		agents:      test.NewAgentRepositoryStub(&model.Agent{ID: 7, UserID: 70, Name: "Ade", Active: true}),
		ledger:      test.NewLedgerRepositoryStub(),
		profiles:    test.NewPayoutProfileRepositoryStub(),
		withdrawals: test.NewWithdrawalRepositoryStub(),
		gateway:     test.NewGatewayStub(),
	}
	f.uc = NewWithdrawalUseCase(f.agents, f.ledger, f.profiles, f.withdrawals, f.gateway, testLogger())
	return f
}

func (f *withdrawalFixture) seedVerifiedProfile(recipientCode string) {
	profile := &model.PayoutProfile{
		UserID:        70,
		AccountNumber: "0123456789",
		BankCode:      "058",
		AccountName:   "ADE AGENT",
		Verified:      true,
	}
	if recipientCode != "" {
		profile.RecipientCode = &recipientCode
	}
	f.profiles.Profiles[70] = profile
}

func TestRequestWithdrawal(t *testing.T) {
	f := newWithdrawalFixture()
	f.ledger.SetBalance(7, model.WalletTypeEarnings, decimal.RequireFromString("500"))
	f.seedVerifiedProfile("RCP_existing")

	w, err := f.uc.Request(context.Background(), 7, decimal.RequireFromString("200"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.Status != model.WithdrawalStatusProcessing {
		t.Errorf("status = %s, want processing", w.Status)
	}
	if w.TransferCode == nil || *w.TransferCode != "TRF_stub" {
		t.Errorf("transfer code = %v, want TRF_stub", w.TransferCode)
	}
	if !strings.HasPrefix(w.Reference, "wd_") {
		t.Errorf("reference = %q, want wd_ prefix", w.Reference)
	}
	if got, want := f.ledger.Balance(7, model.WalletTypeEarnings).String(), "300"; got != want {
		t.Errorf("earnings balance = %s, want %s", got, want)
	}
	if len(f.gateway.RecipientCalls) != 0 {
		t.Errorf("recipient re-created despite cached code")
	}
	if len(f.gateway.TransferCalls) != 1 {
		t.Fatalf("transfer calls = %d, want 1", len(f.gateway.TransferCalls))
	}
	if got := f.gateway.TransferCalls[0].Reference; got != w.Reference {
		t.Errorf("transfer reference = %q, want %q", got, w.Reference)
	}
}

func TestRequestWithdrawalInvalidAmount(t *testing.T) {
	f := newWithdrawalFixture()

	for _, amount := range []string{"0", "-10"} {
		_, err := f.uc.Request(context.Background(), 7, decimal.RequireFromString(amount), "")
		if !errors.Is(err, domainErrors.ErrInvalidAmount) {
			t.Errorf("amount %s: error = %v, want ErrInvalidAmount", amount, err)
		}
	}
	if len(f.withdrawals.Rows) != 0 {
		t.Errorf("withdrawal created for invalid amount")
	}
}

func TestRequestWithdrawalUnknownAgent(t *testing.T) {
	f := newWithdrawalFixture()

	_, err := f.uc.Request(context.Background(), 99, decimal.RequireFromString("10"), "")
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestRequestWithdrawalInsufficientBalance(t *testing.T) {
	f := newWithdrawalFixture()
	f.ledger.SetBalance(7, model.WalletTypeEarnings, decimal.RequireFromString("50"))
	f.seedVerifiedProfile("RCP_existing")

	_, err := f.uc.Request(context.Background(), 7, decimal.RequireFromString("200"), "")
	if !errors.Is(err, domainErrors.ErrInsufficientBalance) {
		t.Fatalf("error = %v, want ErrInsufficientBalance", err)
	}
	if len(f.withdrawals.Rows) != 0 {
		t.Errorf("withdrawal created despite insufficient balance")
	}
	if len(f.gateway.TransferCalls) != 0 {
		t.Errorf("transfer initiated despite insufficient balance")
	}
	if got, want := f.ledger.Balance(7, model.WalletTypeEarnings).String(), "50"; got != want {
		t.Errorf("balance mutated: %s, want %s", got, want)
	}
}

func TestRequestWithdrawalProfileMissing(t *testing.T) {
	f := newWithdrawalFixture()
	f.ledger.SetBalance(7, model.WalletTypeEarnings, decimal.RequireFromString("500"))

	_, err := f.uc.Request(context.Background(), 7, decimal.RequireFromString("200"), "")
	if !errors.Is(err, domainErrors.ErrProfileMissing) {
		t.Fatalf("error = %v, want ErrProfileMissing", err)
	}
}

func TestRequestWithdrawalProfileUnverified(t *testing.T) {
	f := newWithdrawalFixture()
	f.ledger.SetBalance(7, model.WalletTypeEarnings, decimal.RequireFromString("500"))
	f.profiles.Profiles[70] = &model.PayoutProfile{UserID: 70, AccountNumber: "0123456789", BankCode: "058"}

	_, err := f.uc.Request(context.Background(), 7, decimal.RequireFromString("200"), "")
	if !errors.Is(err, domainErrors.ErrProfileUnverified) {
		t.Fatalf("error = %v, want ErrProfileUnverified", err)
	}
}

func TestRequestWithdrawalRecipientCreation(t *testing.T) {
	f := newWithdrawalFixture()
	f.ledger.SetBalance(7, model.WalletTypeEarnings, decimal.RequireFromString("500"))
	f.seedVerifiedProfile("")

	w, err := f.uc.Request(context.Background(), 7, decimal.RequireFromString("200"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Status != model.WithdrawalStatusProcessing {
		t.Errorf("status = %s, want processing", w.Status)
	}
	if len(f.gateway.RecipientCalls) != 1 {
		t.Fatalf("recipient calls = %d, want 1", len(f.gateway.RecipientCalls))
	}
	if got, want := f.profiles.RecipientCodes[70], "RCP_stub"; got != want {
		t.Errorf("persisted recipient code = %q, want %q", got, want)
	}
}

func TestRequestWithdrawalRecipientCreationFails(t *testing.T) {
	f := newWithdrawalFixture()
	f.ledger.SetBalance(7, model.WalletTypeEarnings, decimal.RequireFromString("500"))
	f.seedVerifiedProfile("")
	f.gateway.CreateRecipientFn = func(context.Context, paystack.RecipientRequest) (string, error) {
		return "", &paystack.GatewayError{Op: "create recipient", Message: "invalid bank code"}
	}

	_, err := f.uc.Request(context.Background(), 7, decimal.RequireFromString("200"), "")
	if !errors.Is(err, domainErrors.ErrRecipientCreation) {
		t.Fatalf("error = %v, want ErrRecipientCreation", err)
	}
	if len(f.withdrawals.Rows) != 0 {
		t.Errorf("withdrawal created despite recipient failure")
	}
	if got, want := f.ledger.Balance(7, model.WalletTypeEarnings).String(), "500"; got != want {
		t.Errorf("balance mutated: %s, want %s", got, want)
	}
}

func TestRequestWithdrawalTransferRejected(t *testing.T) {
	f := newWithdrawalFixture()
	f.ledger.SetBalance(7, model.WalletTypeEarnings, decimal.RequireFromString("500"))
	f.seedVerifiedProfile("RCP_existing")
	f.gateway.InitiateTransferFn = func(context.Context, paystack.TransferRequest) (*paystack.TransferResult, error) {
		return nil, &paystack.GatewayError{Op: "initiate transfer", Message: "insufficient gateway balance"}
	}

	_, err := f.uc.Request(context.Background(), 7, decimal.RequireFromString("200"), "")
	var gwErr *paystack.GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("error = %v, want GatewayError", err)
	}

	if len(f.withdrawals.Rows) != 1 {
		t.Fatalf("withdrawal rows = %d, want 1", len(f.withdrawals.Rows))
	}
	for _, w := range f.withdrawals.Rows {
		if w.Status != model.WithdrawalStatusFailed {
			t.Errorf("status = %s, want failed", w.Status)
		}
		if w.ErrorMessage == nil || *w.ErrorMessage == "" {
			t.Errorf("failure reason not recorded")
		}
	}
	if got, want := f.ledger.Balance(7, model.WalletTypeEarnings).String(), "500"; got != want {
		t.Errorf("balance debited despite rejected transfer: %s, want %s", got, want)
	}
}

func TestRequestWithdrawalSynchronousSuccess(t *testing.T) {
	f := newWithdrawalFixture()
	f.ledger.SetBalance(7, model.WalletTypeEarnings, decimal.RequireFromString("500"))
	f.seedVerifiedProfile("RCP_existing")
	f.gateway.InitiateTransferFn = func(context.Context, paystack.TransferRequest) (*paystack.TransferResult, error) {
		return &paystack.TransferResult{TransferCode: "TRF_sync", Status: "success"}, nil
	}

	w, err := f.uc.Request(context.Background(), 7, decimal.RequireFromString("200"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Status != model.WithdrawalStatusCompleted {
		t.Errorf("status = %s, want completed", w.Status)
	}
	if got, want := f.ledger.Balance(7, model.WalletTypeEarnings).String(), "300"; got != want {
		t.Errorf("earnings balance = %s, want %s", got, want)
	}
}

func TestRequestWithdrawalFoodWallet(t *testing.T) {
	f := newWithdrawalFixture()
	f.ledger.SetBalance(7, model.WalletTypeFood, decimal.RequireFromString("800"))
	f.seedVerifiedProfile("RCP_existing")

	_, err := f.uc.Request(context.Background(), 7, decimal.RequireFromString("100"), "food")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := f.ledger.Balance(7, model.WalletTypeFood).String(), "700"; got != want {
		t.Errorf("food balance = %s, want %s", got, want)
	}
}

func TestWithdrawalHistory(t *testing.T) {
	f := newWithdrawalFixture()
	f.withdrawals.Add(&model.Withdrawal{AgentID: 7, Status: model.WithdrawalStatusCompleted})
	f.withdrawals.Add(&model.Withdrawal{AgentID: 8, Status: model.WithdrawalStatusPending})

	history, err := f.uc.History(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("history length = %d, want 1", len(history))
	}

	if _, err := f.uc.History(context.Background(), 99); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Errorf("unknown agent error = %v, want ErrNotFound", err)
	}
}
