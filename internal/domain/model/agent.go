package model

import "time"

// Agent is a delivery agent earning into the wallet system. UserID links the
// agent to the account whose payout profile receives withdrawals.
type Agent struct {
	ID        int64
	UserID    int64
	Name      string
	Phone     string
	Active    bool
	CreatedAt time.Time
}
