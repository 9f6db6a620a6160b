package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/Shanthi551/telecom-data-plan/internal/adapter/catalogfeed"
	"github.com/Shanthi551/telecom-data-plan/internal/app"
	"github.com/Shanthi551/telecom-data-plan/internal/config"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/repository"
	"github.com/Shanthi551/telecom-data-plan/internal/session"
	"github.com/Shanthi551/telecom-data-plan/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "telecom.db",
		SessionSecret:   "secret",
		SessionTTL:      time.Hour,
		ShutdownTimeout: time.Millisecond,
		LoginRate:       10,
		LoginBurst:      2,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := test.NewStore(model.DefaultPlans()...)

	var (
		facade   *app.DashboardFacade
		sessions *session.Manager
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(fx.Annotate(store, fx.As(new(repository.Factory)))),
			fx.Replace(fx.Annotate(catalogfeed.Disabled{}, fx.As(new(catalogfeed.Client)))),
		),
		fx.Populate(&facade, &sessions),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil || sessions == nil {
		t.Fatal("expected dashboard facade and session manager instances")
	}

	plans, err := facade.Plans(context.Background())
	if err != nil || len(plans) != 4 {
		t.Fatalf("expected facade wired to store, got %d plans %v", len(plans), err)
	}
}
