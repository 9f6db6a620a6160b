package usecase

import (
	"go.uber.org/fx"

	"github.com/Shanthi551/telecom-data-plan/internal/config"
	"github.com/Shanthi551/telecom-data-plan/internal/session"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		NewAccountUseCase,
		NewCatalogUseCase,
		NewPurchaseUseCase,
		NewReportingUseCase,
		newAdminSeed,
		func(m *session.Manager) SessionStore { return m },
	),
)

func newAdminSeed(cfg *config.Config) AdminSeed {
	return AdminSeed{Email: cfg.AdminEmail, Password: cfg.AdminPassword}
}
