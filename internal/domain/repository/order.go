package repository

import (
	"context"

	"github.com/mobolade/chowpay/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	GetByReference(ctx context.Context, reference string) (*model.Order, error)
}
