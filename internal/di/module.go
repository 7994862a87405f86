package di

import (
	"go.uber.org/fx"

	"github.com/mobolade/chowpay/internal/adapter/paystack"
	"github.com/mobolade/chowpay/internal/app"
	"github.com/mobolade/chowpay/internal/config"
	"github.com/mobolade/chowpay/internal/logger"
	"github.com/mobolade/chowpay/internal/metrics"
	"github.com/mobolade/chowpay/internal/pkg/auth"
	"github.com/mobolade/chowpay/internal/pkg/signature"
	"github.com/mobolade/chowpay/internal/server/http/handlers"
	"github.com/mobolade/chowpay/internal/server/http/router"
	"github.com/mobolade/chowpay/internal/storage/postgres"
	"github.com/mobolade/chowpay/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		signature.Module,
		auth.Module,
		metrics.Module,
		postgres.Module,
		paystack.Module,
		usecase.Module,
		fx.Provide(
			func(f *app.SettlementFacade) handlers.SettlementFacade { return f },
			func(s *postgres.Storage) handlers.Pinger { return s },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
