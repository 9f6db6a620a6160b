package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Shanthi551/telecom-data-plan/internal/adapter/catalogfeed"
	domainErrors "github.com/Shanthi551/telecom-data-plan/internal/domain/errors"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	"github.com/Shanthi551/telecom-data-plan/internal/usecase"
)

// CatalogFeed supplies extra plans at startup.
type CatalogFeed interface {
	Fetch(ctx context.Context) ([]model.Plan, error)
}

// DashboardFacade is the single entry point the HTTP layer talks to.
type DashboardFacade struct {
	accounts  *usecase.AccountUseCase
	catalog   *usecase.CatalogUseCase
	purchases *usecase.PurchaseUseCase
	reports   *usecase.ReportingUseCase
	feed      CatalogFeed
	logger    *slog.Logger
}

func NewDashboardFacade(
	accounts *usecase.AccountUseCase,
	catalog *usecase.CatalogUseCase,
	purchases *usecase.PurchaseUseCase,
	reports *usecase.ReportingUseCase,
	feed CatalogFeed,
	logger *slog.Logger,
) *DashboardFacade {
	return &DashboardFacade{
		accounts:  accounts,
		catalog:   catalog,
		purchases: purchases,
		reports:   reports,
		feed:      feed,
		logger:    logger,
	}
}

func (f *DashboardFacade) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, error) {
	return f.accounts.Register(ctx, in)
}

// Login opens a session and signs a token for it.
func (f *DashboardFacade) Login(ctx context.Context, email, password string) (*model.Grant, error) {
	s, user, err := f.accounts.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	token, err := f.accounts.IssueToken(*s)
	if err != nil {
		f.accounts.Logout(s.ID)
		return nil, err
	}
	return &model.Grant{Token: token, Session: *s, User: user}, nil
}

func (f *DashboardFacade) Logout(sessionID string) {
	f.accounts.Logout(sessionID)
}

func (f *DashboardFacade) Authorize(ctx context.Context, token string) (*model.Session, *model.User, error) {
	return f.accounts.Authorize(ctx, token)
}

func (f *DashboardFacade) Plans(ctx context.Context) ([]model.Plan, error) {
	return f.catalog.ListPlans(ctx)
}

func (f *DashboardFacade) Recommend(ctx context.Context, req model.Requirements) ([]model.Plan, error) {
	return f.catalog.Recommend(ctx, req)
}

func (f *DashboardFacade) Purchase(ctx context.Context, actor *model.User, planID int64) (*model.Purchase, error) {
	return f.purchases.Purchase(ctx, actor, planID)
}

func (f *DashboardFacade) Purchases(ctx context.Context, userID int64) ([]model.Purchase, error) {
	return f.purchases.ListPurchases(ctx, userID)
}

func (f *DashboardFacade) Users(ctx context.Context, actor *model.User) ([]model.UserSummary, error) {
	return f.reports.ListUsers(ctx, actor)
}

func (f *DashboardFacade) AllPurchases(ctx context.Context, actor *model.User) ([]model.Purchase, error) {
	return f.reports.ListAllPurchases(ctx, actor)
}

func (f *DashboardFacade) LoginHistory(ctx context.Context, actor *model.User) ([]model.LoginEvent, error) {
	return f.reports.ListLoginHistory(ctx, actor)
}

func (f *DashboardFacade) Summary(ctx context.Context, actor *model.User) (*model.Report, error) {
	return f.reports.Summary(ctx, actor)
}

func (f *DashboardFacade) Snapshot(ctx context.Context, actor *model.User) (*model.Snapshot, error) {
	return f.reports.Snapshot(ctx, actor)
}

func (f *DashboardFacade) UpdateRole(ctx context.Context, actor *model.User, userID int64, role model.Role) error {
	return f.reports.UpdateRole(ctx, actor, userID, role)
}

// Bootstrap prepares an empty store: default plans, the seed administrator and the optional feed.
// Only a failure to seed the catalog is fatal.
func (f *DashboardFacade) Bootstrap(ctx context.Context) error {
	seeded, err := f.catalog.SeedDefaults(ctx)
	if err != nil {
		return err
	}
	if seeded > 0 {
		f.logger.Info("seeded default plans", slog.Int("count", seeded))
	}

	created, err := f.accounts.EnsureDefaultAdmin(ctx)
	switch {
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		f.logger.Warn("default admin not created", slog.String("error", err.Error()))
	case err != nil:
		return fmt.Errorf("ensure default admin: %w", err)
	case created:
		f.logger.Info("created default admin")
	}

	f.importFeed(ctx)
	return nil
}

func (f *DashboardFacade) importFeed(ctx context.Context) {
	plans, err := f.feed.Fetch(ctx)
	if err != nil {
		if !errors.Is(err, catalogfeed.ErrDisabled) {
			f.logger.Warn("catalog feed unavailable", slog.String("error", err.Error()))
		}
		return
	}

	added, err := f.catalog.Import(ctx, plans)
	if err != nil {
		f.logger.Warn("catalog feed partially imported", slog.Int("added", added), slog.String("error", err.Error()))
		return
	}
	f.logger.Info("catalog feed imported", slog.Int("added", added), slog.Int("received", len(plans)))
}
