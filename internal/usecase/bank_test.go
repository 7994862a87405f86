package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mobolade/chowpay/internal/adapter/paystack"
	domainErrors "github.com/mobolade/chowpay/internal/domain/errors"
	"github.com/mobolade/chowpay/internal/domain/model"
	"github.com/mobolade/chowpay/internal/test"
)

func TestBankVerify(t *testing.T) {
	agents := test.NewAgentRepositoryStub(&model.Agent{ID: 7, UserID: 70})
	profiles := test.NewPayoutProfileRepositoryStub()
	gateway := test.NewGatewayStub()
	gateway.ResolveAccountFn = func(context.Context, string, string) (string, error) {
		return "ADE AGENT", nil
	}
	uc := NewBankUseCase(agents, profiles, gateway)

	profile, err := uc.Verify(context.Background(), 7, "0123456789", "058")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !profile.Verified {
		t.Errorf("profile not marked verified")
	}
	if profile.AccountName != "ADE AGENT" {
		t.Errorf("account name = %q, want resolved holder", profile.AccountName)
	}
	stored := profiles.Profiles[70]
	if stored == nil {
		t.Fatal("profile not stored")
	}
	if stored.RecipientCode != nil {
		t.Errorf("recipient code kept across bank change")
	}
}

func TestBankVerifyInvalidDetails(t *testing.T) {
	uc := NewBankUseCase(test.NewAgentRepositoryStub(), test.NewPayoutProfileRepositoryStub(), test.NewGatewayStub())

	for _, tt := range []struct{ account, bank string }{{"", "058"}, {"0123456789", ""}} {
		_, err := uc.Verify(context.Background(), 7, tt.account, tt.bank)
		if !errors.Is(err, domainErrors.ErrInvalidBankDetails) {
			t.Errorf("(%q, %q): error = %v, want ErrInvalidBankDetails", tt.account, tt.bank, err)
		}
	}
}

func TestBankVerifyUnknownAgent(t *testing.T) {
	uc := NewBankUseCase(test.NewAgentRepositoryStub(), test.NewPayoutProfileRepositoryStub(), test.NewGatewayStub())

	_, err := uc.Verify(context.Background(), 99, "0123456789", "058")
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestBankVerifyResolveFails(t *testing.T) {
	agents := test.NewAgentRepositoryStub(&model.Agent{ID: 7, UserID: 70})
	profiles := test.NewPayoutProfileRepositoryStub()
	gateway := test.NewGatewayStub()
	gateway.ResolveAccountFn = func(context.Context, string, string) (string, error) {
		return "", &paystack.GatewayError{Op: "resolve account", Message: "could not resolve"}
	}
	uc := NewBankUseCase(agents, profiles, gateway)

	_, err := uc.Verify(context.Background(), 7, "0123456789", "058")
	var gwErr *paystack.GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("error = %v, want GatewayError", err)
	}
	if len(profiles.Upserted) != 0 {
		t.Errorf("profile stored despite failed resolution")
	}
}
