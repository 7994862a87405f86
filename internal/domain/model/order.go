package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SellerType categorizes the seller an order was placed with.
type SellerType string

const (
	SellerTypeVendor          SellerType = "vendor"
	SellerTypeLateNightVendor SellerType = "late_night_vendor"
	SellerTypeCafeteria       SellerType = "cafeteria"
)

// ParticipatesInWallets reports whether orders from this seller category
// feed the agent wallet system. Cafeteria orders settle off-ledger.
func (s SellerType) ParticipatesInWallets() bool {
	return s != SellerTypeCafeteria
}

// PaymentStatus describes order payment lifecycle.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Split is the immutable breakdown snapshot written onto a paid order.
// Food + PlatformFee + AgentEarnings always equals Total.
type Split struct {
	Total         decimal.Decimal `json:"total"`
	Food          decimal.Decimal `json:"food"`
	PlatformFee   decimal.Decimal `json:"platform_fee"`
	AgentEarnings decimal.Decimal `json:"agent_earnings"`
}

// Order describes a purchase order awaiting or past payment settlement.
type Order struct {
	ID              int64
	Reference       string
	Total           decimal.Decimal
	SellerID        int64
	SellerType      SellerType
	DeliveryAgentID *int64
	PaymentStatus   PaymentStatus
	SplitDetails    *Split
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
