package auth

import (
	"go.uber.org/fx"

	"github.com/mobolade/chowpay/internal/config"
)

// Module provides the admin key guard via fx.
var Module = fx.Provide(newGuard)

type guardParams struct {
	fx.In

	Config *config.Config
}

func newGuard(p guardParams) *AdminKeyGuard {
	return NewAdminKeyGuard(p.Config.AdminKeyHash)
}
