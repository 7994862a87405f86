package repository

import (
	"context"

	"github.com/mobolade/chowpay/internal/domain/model"
)

// AgentRepository describes persistence operations for delivery agents.
type AgentRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Agent, error)
}
