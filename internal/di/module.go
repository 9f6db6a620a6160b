package di

import (
	"go.uber.org/fx"

	"github.com/Shanthi551/telecom-data-plan/internal/adapter/catalogfeed"
	"github.com/Shanthi551/telecom-data-plan/internal/app"
	"github.com/Shanthi551/telecom-data-plan/internal/config"
	"github.com/Shanthi551/telecom-data-plan/internal/logger"
	"github.com/Shanthi551/telecom-data-plan/internal/pkg/auth"
	"github.com/Shanthi551/telecom-data-plan/internal/server/http/handlers"
	"github.com/Shanthi551/telecom-data-plan/internal/server/http/router"
	"github.com/Shanthi551/telecom-data-plan/internal/session"
	"github.com/Shanthi551/telecom-data-plan/internal/storage"
	"github.com/Shanthi551/telecom-data-plan/internal/usecase"
)

// Module assembles the whole application graph. Extra options are appended last so tests can replace parts.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		session.Module,
		catalogfeed.Module,
		usecase.Module,
		fx.Provide(func(client catalogfeed.Client) app.CatalogFeed { return client }),
		fx.Provide(func(f *app.DashboardFacade) handlers.DashboardFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
