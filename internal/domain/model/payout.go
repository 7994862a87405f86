package model

import "time"

// PayoutProfile holds the verified bank destination for a user's withdrawals.
// RecipientCode is the external gateway's durable payee reference, populated
// lazily the first time a transfer recipient is created.
type PayoutProfile struct {
	UserID        int64
	AccountNumber string
	BankCode      string
	AccountName   string
	Verified      bool
	RecipientCode *string
	UpdatedAt     time.Time
}
