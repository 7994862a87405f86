package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mobolade/chowpay/internal/domain/model"
)

// LedgerRepository manages wallet balances and their append-only transaction
// trail. Credit and debit both write the balance movement and the transaction
// record inside one database transaction.
type LedgerRepository interface {
	// EnsureWallets creates zero-balance wallets of both types for the agent
	// if they do not exist yet.
	EnsureWallets(ctx context.Context, agentID int64) error

	GetWallet(ctx context.Context, agentID int64, walletType model.WalletType) (*model.Wallet, error)

	// ApplyPaymentSplit marks the order paid with the split snapshot and
	// credits the agent's food and earnings wallets, all in one transaction.
	// Returns ErrAlreadyProcessed when the order was credited before.
	ApplyPaymentSplit(ctx context.Context, order *model.Order, agentID int64, split model.Split) error

	// HasOrderCredit reports whether a credit transaction referencing the
	// order already exists.
	HasOrderCredit(ctx context.Context, orderReference string) (bool, error)

	// Credit adds amount to the wallet. Returns ErrAlreadyProcessed when a
	// credit with the same reference already exists.
	Credit(ctx context.Context, agentID int64, walletType model.WalletType, amount decimal.Decimal, refType model.ReferenceType, refID, description string) error

	// Debit subtracts amount from the wallet after a row-locked balance
	// check. Returns ErrInsufficientBalance when the balance does not cover
	// the amount.
	Debit(ctx context.Context, agentID int64, walletType model.WalletType, amount decimal.Decimal, refType model.ReferenceType, refID, description string) error

	// ListTransactions returns the agent's most recent ledger records.
	ListTransactions(ctx context.Context, agentID int64, limit int) ([]model.WalletTransaction, error)
}
