package repository

import (
	"context"

	"github.com/mobolade/chowpay/internal/domain/model"
)

// PayoutProfileRepository stores verified bank destinations per user.
type PayoutProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*model.PayoutProfile, error)

	// Upsert replaces the profile's bank details, marking it verified and
	// clearing any recipient code cached for the previous account.
	Upsert(ctx context.Context, profile *model.PayoutProfile) error

	SetRecipientCode(ctx context.Context, userID int64, code string) error
}
