package test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/mobolade/chowpay/internal/domain/errors"
	"github.com/mobolade/chowpay/internal/domain/model"
)

// AgentRepositoryStub stores agents in-memory for tests.
type AgentRepositoryStub struct {
	Agents map[int64]*model.Agent
	Err    error
}

// NewAgentRepositoryStub constructs stub repository with initialized map.
func NewAgentRepositoryStub(agents ...*model.Agent) *AgentRepositoryStub {
	s := &AgentRepositoryStub{Agents: make(map[int64]*model.Agent)}
	for _, a := range agents {
		s.Agents[a.ID] = a
	}
	return s
}

// GetByID fetches agent by identifier or returns not found.
func (s *AgentRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Agent, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if agent, ok := s.Agents[id]; ok {
		return agent, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub stores orders keyed by reference.
type OrderRepositoryStub struct {
	GetByReferenceFn func(context.Context, string) (*model.Order, error)
	Orders           map[string]*model.Order
}

// NewOrderRepositoryStub constructs stub repository with initialized map.
func NewOrderRepositoryStub(orders ...*model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
	for _, o := range orders {
		s.Orders[o.Reference] = o
	}
	return s
}

// GetByReference returns matched order either via override or stored map.
func (s *OrderRepositoryStub) GetByReference(ctx context.Context, reference string) (*model.Order, error) {
	if s.GetByReferenceFn != nil {
		return s.GetByReferenceFn(ctx, reference)
	}
	if order, ok := s.Orders[reference]; ok {
		return order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// LedgerCall records one credit or debit applied to the stub ledger.
type LedgerCall struct {
	AgentID     int64
	WalletType  model.WalletType
	Type        model.TransactionType
	Amount      decimal.Decimal
	RefType     model.ReferenceType
	RefID       string
	Description string
}

// LedgerRepositoryStub keeps wallet balances in-memory and records every
// movement. Overrides allow tests to force specific failures.
type LedgerRepositoryStub struct {
	ApplyPaymentSplitFn func(context.Context, *model.Order, int64, model.Split) error
	CreditFn            func(context.Context, int64, model.WalletType, decimal.Decimal, model.ReferenceType, string, string) error
	DebitFn             func(context.Context, int64, model.WalletType, decimal.Decimal, model.ReferenceType, string, string) error

	Balances      map[string]decimal.Decimal
	CreditedRefs  map[string]bool
	Calls         []LedgerCall
	AppliedSplits []model.Split
	EnsureCalls   int
}

// NewLedgerRepositoryStub constructs the stub with initialized maps.
func NewLedgerRepositoryStub() *LedgerRepositoryStub {
	return &LedgerRepositoryStub{
		Balances:     make(map[string]decimal.Decimal),
		CreditedRefs: make(map[string]bool),
	}
}

func ledgerKey(agentID int64, walletType model.WalletType) string {
	return fmt.Sprintf("%d/%s", agentID, walletType)
}

// SetBalance seeds a wallet balance.
func (s *LedgerRepositoryStub) SetBalance(agentID int64, walletType model.WalletType, balance decimal.Decimal) {
	s.Balances[ledgerKey(agentID, walletType)] = balance
}

// Balance reads a wallet balance from the stub.
func (s *LedgerRepositoryStub) Balance(agentID int64, walletType model.WalletType) decimal.Decimal {
	return s.Balances[ledgerKey(agentID, walletType)]
}

// EnsureWallets creates zero balances when absent.
func (s *LedgerRepositoryStub) EnsureWallets(ctx context.Context, agentID int64) error {
	s.EnsureCalls++
	for _, wt := range []model.WalletType{model.WalletTypeFood, model.WalletTypeEarnings} {
		key := ledgerKey(agentID, wt)
		if _, ok := s.Balances[key]; !ok {
			s.Balances[key] = decimal.Zero
		}
	}
	return nil
}

// GetWallet returns the stored wallet or not found.
func (s *LedgerRepositoryStub) GetWallet(ctx context.Context, agentID int64, walletType model.WalletType) (*model.Wallet, error) {
	balance, ok := s.Balances[ledgerKey(agentID, walletType)]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &model.Wallet{AgentID: agentID, Type: walletType, Balance: balance}, nil
}

// ApplyPaymentSplit credits both wallets and marks the order reference settled.
func (s *LedgerRepositoryStub) ApplyPaymentSplit(ctx context.Context, order *model.Order, agentID int64, split model.Split) error {
	if s.ApplyPaymentSplitFn != nil {
		return s.ApplyPaymentSplitFn(ctx, order, agentID, split)
	}
	if s.CreditedRefs[order.Reference] {
		return domainErrors.ErrAlreadyProcessed
	}
	s.CreditedRefs[order.Reference] = true
	s.AppliedSplits = append(s.AppliedSplits, split)
	s.apply(agentID, model.WalletTypeFood, model.TransactionTypeCredit, split.Food, model.ReferenceTypeOrder, order.Reference, "")
	s.apply(agentID, model.WalletTypeEarnings, model.TransactionTypeCredit, split.AgentEarnings, model.ReferenceTypeOrder, order.Reference, "")
	order.PaymentStatus = model.PaymentStatusPaid
	order.SplitDetails = &split
	return nil
}

// HasOrderCredit reports whether the order reference was settled.
func (s *LedgerRepositoryStub) HasOrderCredit(ctx context.Context, orderReference string) (bool, error) {
	return s.CreditedRefs[orderReference], nil
}

// Credit applies a credit movement or the configured override.
func (s *LedgerRepositoryStub) Credit(ctx context.Context, agentID int64, walletType model.WalletType, amount decimal.Decimal, refType model.ReferenceType, refID, description string) error {
	if s.CreditFn != nil {
		return s.CreditFn(ctx, agentID, walletType, amount, refType, refID, description)
	}
	for _, call := range s.Calls {
		if call.Type == model.TransactionTypeCredit && call.RefType == refType && call.RefID == refID && call.WalletType == walletType {
			return domainErrors.ErrAlreadyProcessed
		}
	}
	s.apply(agentID, walletType, model.TransactionTypeCredit, amount, refType, refID, description)
	return nil
}

// Debit applies a debit movement, enforcing the balance gate.
func (s *LedgerRepositoryStub) Debit(ctx context.Context, agentID int64, walletType model.WalletType, amount decimal.Decimal, refType model.ReferenceType, refID, description string) error {
	if s.DebitFn != nil {
		return s.DebitFn(ctx, agentID, walletType, amount, refType, refID, description)
	}
	key := ledgerKey(agentID, walletType)
	if s.Balances[key].LessThan(amount) {
		return domainErrors.ErrInsufficientBalance
	}
	s.apply(agentID, walletType, model.TransactionTypeDebit, amount, refType, refID, description)
	return nil
}

// ListTransactions is not used by current tests but satisfies the interface.
func (s *LedgerRepositoryStub) ListTransactions(ctx context.Context, agentID int64, limit int) ([]model.WalletTransaction, error) {
	return nil, nil
}

func (s *LedgerRepositoryStub) apply(agentID int64, walletType model.WalletType, txType model.TransactionType, amount decimal.Decimal, refType model.ReferenceType, refID, description string) {
	key := ledgerKey(agentID, walletType)
	if txType == model.TransactionTypeCredit {
		s.Balances[key] = s.Balances[key].Add(amount)
	} else {
		s.Balances[key] = s.Balances[key].Sub(amount)
	}
	s.Calls = append(s.Calls, LedgerCall{
		AgentID:     agentID,
		WalletType:  walletType,
		Type:        txType,
		Amount:      amount,
		RefType:     refType,
		RefID:       refID,
		Description: description,
	})
}

// PayoutProfileRepositoryStub stores payout profiles keyed by user.
type PayoutProfileRepositoryStub struct {
	SetRecipientCodeFn func(context.Context, int64, string) error

	Profiles       map[int64]*model.PayoutProfile
	RecipientCodes map[int64]string
	Upserted       []*model.PayoutProfile
}

// NewPayoutProfileRepositoryStub constructs the stub with initialized maps.
func NewPayoutProfileRepositoryStub(profiles ...*model.PayoutProfile) *PayoutProfileRepositoryStub {
	s := &PayoutProfileRepositoryStub{
		Profiles:       make(map[int64]*model.PayoutProfile),
		RecipientCodes: make(map[int64]string),
	}
	for _, p := range profiles {
		s.Profiles[p.UserID] = p
	}
	return s
}

// GetByUserID fetches the profile or returns not found.
func (s *PayoutProfileRepositoryStub) GetByUserID(ctx context.Context, userID int64) (*model.PayoutProfile, error) {
	if profile, ok := s.Profiles[userID]; ok {
		return profile, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Upsert stores the profile, clearing any cached recipient code.
func (s *PayoutProfileRepositoryStub) Upsert(ctx context.Context, profile *model.PayoutProfile) error {
	stored := *profile
	stored.RecipientCode = nil
	s.Profiles[profile.UserID] = &stored
	s.Upserted = append(s.Upserted, &stored)
	delete(s.RecipientCodes, profile.UserID)
	return nil
}

// SetRecipientCode records the code for later inspection.
func (s *PayoutProfileRepositoryStub) SetRecipientCode(ctx context.Context, userID int64, code string) error {
	if s.SetRecipientCodeFn != nil {
		return s.SetRecipientCodeFn(ctx, userID, code)
	}
	if profile, ok := s.Profiles[userID]; ok {
		profile.RecipientCode = &code
	}
	s.RecipientCodes[userID] = code
	return nil
}

// WithdrawalRepositoryStub keeps withdrawal rows in-memory.
type WithdrawalRepositoryStub struct {
	CreateFn   func(context.Context, int64, decimal.Decimal, string, string) (*model.Withdrawal, error)
	FinalizeFn func(context.Context, string, model.WithdrawalStatus, string) (*model.Withdrawal, error)

	Rows map[int64]*model.Withdrawal
	Next int64
}

// NewWithdrawalRepositoryStub constructs the stub with initialized state.
func NewWithdrawalRepositoryStub() *WithdrawalRepositoryStub {
	return &WithdrawalRepositoryStub{Rows: make(map[int64]*model.Withdrawal), Next: 1}
}

// Add seeds a withdrawal row.
func (s *WithdrawalRepositoryStub) Add(w *model.Withdrawal) {
	if w.ID == 0 {
		w.ID = s.Next
		s.Next++
	}
	s.Rows[w.ID] = w
}

// Create inserts a pending row.
func (s *WithdrawalRepositoryStub) Create(ctx context.Context, agentID int64, amount decimal.Decimal, withdrawalType, reference string) (*model.Withdrawal, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, agentID, amount, withdrawalType, reference)
	}
	w := &model.Withdrawal{
		ID:        s.Next,
		AgentID:   agentID,
		Amount:    amount,
		Type:      withdrawalType,
		Status:    model.WithdrawalStatusPending,
		Reference: reference,
		CreatedAt: time.Now(),
	}
	s.Next++
	s.Rows[w.ID] = w
	return w, nil
}

// GetByID fetches a row or returns not found.
func (s *WithdrawalRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Withdrawal, error) {
	if w, ok := s.Rows[id]; ok {
		return w, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByTransferCode fetches a row by its gateway code.
func (s *WithdrawalRepositoryStub) GetByTransferCode(ctx context.Context, transferCode string) (*model.Withdrawal, error) {
	for _, w := range s.Rows {
		if w.TransferCode != nil && *w.TransferCode == transferCode {
			return w, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByAgent returns the agent's rows.
func (s *WithdrawalRepositoryStub) ListByAgent(ctx context.Context, agentID int64) ([]model.Withdrawal, error) {
	var result []model.Withdrawal
	for _, w := range s.Rows {
		if w.AgentID == agentID {
			result = append(result, *w)
		}
	}
	return result, nil
}

// MarkProcessing transitions a pending row.
func (s *WithdrawalRepositoryStub) MarkProcessing(ctx context.Context, id int64, transferCode string) error {
	w, ok := s.Rows[id]
	if !ok || w.Status != model.WithdrawalStatusPending {
		return domainErrors.ErrNotFound
	}
	w.Status = model.WithdrawalStatusProcessing
	w.TransferCode = &transferCode
	return nil
}

// MarkFailed fails a still-pending row.
func (s *WithdrawalRepositoryStub) MarkFailed(ctx context.Context, id int64, errorMessage string) error {
	w, ok := s.Rows[id]
	if !ok || w.Status != model.WithdrawalStatusPending {
		return domainErrors.ErrNotFound
	}
	now := time.Now()
	w.Status = model.WithdrawalStatusFailed
	w.ErrorMessage = &errorMessage
	w.ProcessedAt = &now
	return nil
}

// Finalize applies the terminal transition by transfer code.
func (s *WithdrawalRepositoryStub) Finalize(ctx context.Context, transferCode string, status model.WithdrawalStatus, errorMessage string) (*model.Withdrawal, error) {
	if s.FinalizeFn != nil {
		return s.FinalizeFn(ctx, transferCode, status, errorMessage)
	}
	w, err := s.GetByTransferCode(ctx, transferCode)
	if err != nil {
		return nil, err
	}
	if w.Status.Terminal() {
		return nil, domainErrors.ErrWithdrawalFinalized
	}
	now := time.Now()
	w.Status = status
	if errorMessage != "" {
		w.ErrorMessage = &errorMessage
	}
	w.ProcessedAt = &now
	return w, nil
}

// AdminComplete force-completes a non-terminal row.
func (s *WithdrawalRepositoryStub) AdminComplete(ctx context.Context, id, adminID int64, gatewayReference, notes string) (*model.Withdrawal, error) {
	w, ok := s.Rows[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if w.Status.Terminal() {
		return nil, domainErrors.ErrWithdrawalFinalized
	}
	now := time.Now()
	w.Status = model.WithdrawalStatusCompleted
	if gatewayReference != "" {
		w.TransferCode = &gatewayReference
	}
	w.ApprovedBy = &adminID
	w.ApprovedAt = &now
	w.ProcessedAt = &now
	return w, nil
}

// ListStalePending returns pending rows older than maxAge.
func (s *WithdrawalRepositoryStub) ListStalePending(ctx context.Context, maxAge time.Duration, limit int) ([]model.Withdrawal, error) {
	cutoff := time.Now().Add(-maxAge)
	var result []model.Withdrawal
	for _, w := range s.Rows {
		if w.Status == model.WithdrawalStatusPending && w.CreatedAt.Before(cutoff) {
			result = append(result, *w)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}
