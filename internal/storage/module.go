package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/Shanthi551/telecom-data-plan/internal/config"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/repository"
	"github.com/Shanthi551/telecom-data-plan/internal/storage/postgres"
	"github.com/Shanthi551/telecom-data-plan/internal/storage/sqlite"
)

// Module wires the configured storage backend and its repository adapters.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.UserRepository { return f.Users() },
		func(f repository.Factory) repository.PlanRepository { return f.Plans() },
		func(f repository.Factory) repository.PurchaseRepository { return f.Purchases() },
		func(f repository.Factory) repository.LoginRepository { return f.Logins() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

var (
	openPostgres = func(ctx context.Context, dsn string, logger *slog.Logger) (repository.Factory, error) {
		s, err := postgres.New(ctx, dsn, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	openSQLite = func(ctx context.Context, path string, logger *slog.Logger) (repository.Factory, error) {
		s, err := sqlite.Open(ctx, path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
)

func newFactory(p storageParams) (repository.Factory, error) {
	if p.Config.UsesPostgres() {
		p.Logger.Info("using postgres storage")
		return openPostgres(p.Ctx, p.Config.DatabaseURI, p.Logger)
	}
	p.Logger.Info("using sqlite storage", slog.String("path", p.Config.DatabaseURI))
	return openSQLite(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

func registerLifecycle(lc fx.Lifecycle, factory repository.Factory) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if hc, ok := factory.(healthChecker); ok {
				return hc.HealthCheck(ctx)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return factory.Close()
		},
	})
}
