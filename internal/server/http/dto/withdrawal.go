package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawRequest describes a withdrawal request payload.
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
}

// WithdrawResponse describes a successful withdrawal initiation.
type WithdrawResponse struct {
	Success      bool   `json:"success"`
	WithdrawalID int64  `json:"withdrawal_id"`
	Reference    string `json:"reference"`
	TransferCode string `json:"transfer_code,omitempty"`
	Status       string `json:"status"`
}

// WithdrawalResponse describes a withdrawal history entry.
type WithdrawalResponse struct {
	ID           int64           `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Type         string          `json:"type"`
	Status       string          `json:"status"`
	Reference    string          `json:"reference"`
	TransferCode *string         `json:"transfer_code,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	ProcessedAt  *time.Time      `json:"processed_at,omitempty"`
}
