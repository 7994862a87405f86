package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus describes the payout state machine.
type WithdrawalStatus string

const (
	WithdrawalStatusPending    WithdrawalStatus = "pending"
	WithdrawalStatusProcessing WithdrawalStatus = "processing"
	WithdrawalStatusCompleted  WithdrawalStatus = "completed"
	WithdrawalStatusFailed     WithdrawalStatus = "failed"
)

// Terminal reports whether the status admits no further transition.
func (s WithdrawalStatus) Terminal() bool {
	return s == WithdrawalStatusCompleted || s == WithdrawalStatusFailed
}

// Withdrawal tracks one payout of wallet funds to an external bank account.
// Created pending, moved to processing once the gateway accepts the transfer,
// finalized to completed/failed synchronously or by the transfer webhook.
type Withdrawal struct {
	ID           int64
	AgentID      int64
	Amount       decimal.Decimal
	Type         string
	Status       WithdrawalStatus
	Reference    string
	TransferCode *string
	ErrorMessage *string
	ApprovedBy   *int64
	ApprovedAt   *time.Time
	CreatedAt    time.Time
	ProcessedAt  *time.Time
}
