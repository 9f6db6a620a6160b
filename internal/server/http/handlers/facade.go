package handlers

import (
	"context"

	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	"github.com/Shanthi551/telecom-data-plan/internal/server/http/middleware"
	"github.com/Shanthi551/telecom-data-plan/internal/usecase"
)

// AccountFacade describes registration and session capabilities required by handlers.
type AccountFacade interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.Grant, error)
	Logout(sessionID string)
}

// CatalogFacade exposes the plan catalog.
type CatalogFacade interface {
	Plans(ctx context.Context) ([]model.Plan, error)
	Recommend(ctx context.Context, req model.Requirements) ([]model.Plan, error)
}

// PurchaseFacade covers buying plans and the caller's own history.
type PurchaseFacade interface {
	Purchase(ctx context.Context, actor *model.User, planID int64) (*model.Purchase, error)
	Purchases(ctx context.Context, userID int64) ([]model.Purchase, error)
}

// ReportFacade provides analyst and admin operations.
type ReportFacade interface {
	Users(ctx context.Context, actor *model.User) ([]model.UserSummary, error)
	AllPurchases(ctx context.Context, actor *model.User) ([]model.Purchase, error)
	LoginHistory(ctx context.Context, actor *model.User) ([]model.LoginEvent, error)
	Summary(ctx context.Context, actor *model.User) (*model.Report, error)
	Snapshot(ctx context.Context, actor *model.User) (*model.Snapshot, error)
	UpdateRole(ctx context.Context, actor *model.User, userID int64, role model.Role) error
}

// DashboardFacade aggregates the full set of operations used across handlers.
type DashboardFacade interface {
	AccountFacade
	CatalogFacade
	PurchaseFacade
	ReportFacade
	middleware.Authorizer
}
