package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType marks the direction of a wallet transaction.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// ReferenceType names the entity a wallet transaction settles against.
type ReferenceType string

const (
	ReferenceTypeOrder      ReferenceType = "order"
	ReferenceTypeWithdrawal ReferenceType = "withdrawal"
)

// WalletTransaction is an append-only ledger record. Rows are never updated
// or deleted; the unique key over (reference_type, reference_id, wallet_type,
// transaction_type) is the idempotency anchor for webhook redelivery.
type WalletTransaction struct {
	ID            int64
	AgentID       int64
	WalletType    WalletType
	Type          TransactionType
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	ReferenceType ReferenceType
	ReferenceID   string
	Description   string
	CreatedAt     time.Time
}
