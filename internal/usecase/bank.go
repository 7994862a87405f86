package usecase

import (
	"context"

	"github.com/mobolade/chowpay/internal/adapter/paystack"
	domainErrors "github.com/mobolade/chowpay/internal/domain/errors"
	"github.com/mobolade/chowpay/internal/domain/model"
	"github.com/mobolade/chowpay/internal/domain/repository"
)

// BankUseCase verifies bank destinations and maintains payout profiles.
type BankUseCase struct {
	agents   repository.AgentRepository
	profiles repository.PayoutProfileRepository
	gateway  paystack.Client
}

// NewBankUseCase constructs BankUseCase.
func NewBankUseCase(agents repository.AgentRepository, profiles repository.PayoutProfileRepository, gateway paystack.Client) *BankUseCase {
	return &BankUseCase{agents: agents, profiles: profiles, gateway: gateway}
}

// Verify resolves the account holder name at the gateway and stores a
// verified payout profile for the agent's user. Changing bank details drops
// any recipient code cached for the previous account.
func (u *BankUseCase) Verify(ctx context.Context, agentID int64, accountNumber, bankCode string) (*model.PayoutProfile, error) {
	if accountNumber == "" || bankCode == "" {
		return nil, domainErrors.ErrInvalidBankDetails
	}

	agent, err := u.agents.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	accountName, err := u.gateway.ResolveAccount(ctx, accountNumber, bankCode)
	if err != nil {
		return nil, err
	}

	profile := &model.PayoutProfile{
		UserID:        agent.UserID,
		AccountNumber: accountNumber,
		BankCode:      bankCode,
		AccountName:   accountName,
		Verified:      true,
	}
	if err := u.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
