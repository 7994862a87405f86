package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletType distinguishes the two ledgers kept per delivery agent.
type WalletType string

const (
	WalletTypeFood     WalletType = "food_wallet"
	WalletTypeEarnings WalletType = "earnings_wallet"
)

// Wallet is a per-agent internal ledger balance of one type.
// Created lazily with a zero balance on first use.
type Wallet struct {
	AgentID   int64
	Type      WalletType
	Balance   decimal.Decimal
	UpdatedAt time.Time
}
