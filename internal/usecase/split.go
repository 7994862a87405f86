package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	domainErrors "github.com/mobolade/chowpay/internal/domain/errors"
	"github.com/mobolade/chowpay/internal/domain/model"
	"github.com/mobolade/chowpay/internal/domain/repository"
)

var minorUnitsPerMajor = decimal.NewFromInt(100)

// SplitUseCase consumes verified charge-success events and settles the
// three-way payment split into the agent's wallets.
type SplitUseCase struct {
	orders           repository.OrderRepository
	ledger           repository.LedgerRepository
	platformFeePct   decimal.Decimal
	agentEarningsPct decimal.Decimal
	logger           *slog.Logger
}

// NewSplitUseCase constructs SplitUseCase with the configured fee percentages.
func NewSplitUseCase(orders repository.OrderRepository, ledger repository.LedgerRepository, platformFeePct, agentEarningsPct decimal.Decimal, logger *slog.Logger) *SplitUseCase {
	return &SplitUseCase{
		orders:           orders,
		ledger:           ledger,
		platformFeePct:   platformFeePct,
		agentEarningsPct: agentEarningsPct,
		logger:           logger,
	}
}

// ProcessChargeSuccess settles a paid charge identified by its gateway
// reference. amountMinor is the charged amount in the gateway's minor
// currency unit. Safe under at-least-once webhook delivery: a redelivered
// event finds the existing order credit and returns without mutation.
func (u *SplitUseCase) ProcessChargeSuccess(ctx context.Context, reference string, amountMinor int64) error {
	order, err := u.orders.GetByReference(ctx, reference)
	if err != nil {
		return err
	}

	if !order.SellerType.ParticipatesInWallets() {
		u.logger.Info("skipping non-wallet seller order",
			slog.String("reference", reference), slog.String("seller_type", string(order.SellerType)))
		return nil
	}

	if order.DeliveryAgentID == nil {
		return domainErrors.ErrNoAgentAssigned
	}

	credited, err := u.ledger.HasOrderCredit(ctx, order.Reference)
	if err != nil {
		return err
	}
	if credited {
		u.logger.Info("charge already settled", slog.String("reference", reference))
		return nil
	}

	total := decimal.NewFromInt(amountMinor).Div(minorUnitsPerMajor)
	split := u.ComputeSplit(total)

	err = u.ledger.ApplyPaymentSplit(ctx, order, *order.DeliveryAgentID, split)
	if errors.Is(err, domainErrors.ErrAlreadyProcessed) {
		// Lost the race against a concurrent delivery of the same event;
		// the unique transaction index kept the ledger single-credited.
		u.logger.Info("charge settled concurrently", slog.String("reference", reference))
		return nil
	}
	return err
}

// ComputeSplit breaks a total into food, platform fee and agent earnings.
// Fee and earnings are truncated at the minor currency unit; food absorbs
// the remainder so the three parts always sum to the total exactly.
func (u *SplitUseCase) ComputeSplit(total decimal.Decimal) model.Split {
	platformFee := total.Mul(u.platformFeePct).Truncate(2)
	agentEarnings := total.Mul(u.agentEarningsPct).Truncate(2)
	food := total.Sub(platformFee).Sub(agentEarnings)
	return model.Split{
		Total:         total,
		Food:          food,
		PlatformFee:   platformFee,
		AgentEarnings: agentEarnings,
	}
}
