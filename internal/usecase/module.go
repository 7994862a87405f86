package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/mobolade/chowpay/internal/config"
	"github.com/mobolade/chowpay/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newSplitUseCase,
	NewWithdrawalUseCase,
	newReconcileUseCase,
	NewBankUseCase,
	NewAdminUseCase,
)

type splitParams struct {
	fx.In

	Orders repository.OrderRepository
	Ledger repository.LedgerRepository
	Config *config.Config
	Logger *slog.Logger
}

func newSplitUseCase(p splitParams) *SplitUseCase {
	return NewSplitUseCase(p.Orders, p.Ledger, p.Config.PlatformFeePct, p.Config.AgentEarningsPct, p.Logger)
}

type reconcileParams struct {
	fx.In

	Withdrawals repository.WithdrawalRepository
	Ledger      repository.LedgerRepository
	Config      *config.Config
	Logger      *slog.Logger
}

func newReconcileUseCase(p reconcileParams) *ReconcileUseCase {
	return NewReconcileUseCase(p.Withdrawals, p.Ledger, p.Config.RecreditOnFailure, p.Logger)
}
