package test

import (
	"context"

	"github.com/mobolade/chowpay/internal/adapter/paystack"
)

// GatewayStub fakes the payment gateway client, recording every call.
type GatewayStub struct {
	CreateRecipientFn  func(context.Context, paystack.RecipientRequest) (string, error)
	InitiateTransferFn func(context.Context, paystack.TransferRequest) (*paystack.TransferResult, error)
	ResolveAccountFn   func(context.Context, string, string) (string, error)

	RecipientCalls []paystack.RecipientRequest
	TransferCalls  []paystack.TransferRequest
	ResolveCalls   [][2]string
}

// NewGatewayStub constructs a gateway stub with accepting defaults.
func NewGatewayStub() *GatewayStub {
	return &GatewayStub{}
}

// CreateRecipient returns a fixed code unless overridden.
func (s *GatewayStub) CreateRecipient(ctx context.Context, req paystack.RecipientRequest) (string, error) {
	s.RecipientCalls = append(s.RecipientCalls, req)
	if s.CreateRecipientFn != nil {
		return s.CreateRecipientFn(ctx, req)
	}
	return "RCP_stub", nil
}

// InitiateTransfer returns a pending transfer unless overridden.
func (s *GatewayStub) InitiateTransfer(ctx context.Context, req paystack.TransferRequest) (*paystack.TransferResult, error) {
	s.TransferCalls = append(s.TransferCalls, req)
	if s.InitiateTransferFn != nil {
		return s.InitiateTransferFn(ctx, req)
	}
	return &paystack.TransferResult{TransferCode: "TRF_stub", Status: "pending"}, nil
}

// ResolveAccount returns a fixed holder name unless overridden.
func (s *GatewayStub) ResolveAccount(ctx context.Context, accountNumber, bankCode string) (string, error) {
	s.ResolveCalls = append(s.ResolveCalls, [2]string{accountNumber, bankCode})
	if s.ResolveAccountFn != nil {
		return s.ResolveAccountFn(ctx, accountNumber, bankCode)
	}
	return "STUB HOLDER", nil
}
