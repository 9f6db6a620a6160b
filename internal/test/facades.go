package test

import (
	"context"
	"time"

	domainErrors "github.com/Shanthi551/telecom-data-plan/internal/domain/errors"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
)

// DashboardFacadeStub provides controllable behaviour for every HTTP endpoint.
// Unset functions fall back to small canned answers.
type DashboardFacadeStub struct {
	RegisterFn     func(context.Context, model.Registration) (*model.User, error)
	LoginFn        func(context.Context, string, string) (*model.Grant, error)
	LogoutFn       func(string)
	AuthorizeFn    func(context.Context, string) (*model.Session, *model.User, error)
	PlansFn        func(context.Context) ([]model.Plan, error)
	RecommendFn    func(context.Context, model.Requirements) ([]model.Plan, error)
	PurchaseFn     func(context.Context, *model.User, int64) (*model.Purchase, error)
	PurchasesFn    func(context.Context, int64) ([]model.Purchase, error)
	UsersFn        func(context.Context, *model.User) ([]model.UserSummary, error)
	AllPurchasesFn func(context.Context, *model.User) ([]model.Purchase, error)
	LoginHistoryFn func(context.Context, *model.User) ([]model.LoginEvent, error)
	SummaryFn      func(context.Context, *model.User) (*model.Report, error)
	SnapshotFn     func(context.Context, *model.User) (*model.Snapshot, error)
	UpdateRoleFn   func(context.Context, *model.User, int64, model.Role) error

	// Actor is returned by the default Authorize for the token "token".
	Actor *model.User
}

// Register delegates to RegisterFn or echoes the input as a Customer.
func (s DashboardFacadeStub) Register(ctx context.Context, in model.Registration) (*model.User, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return &model.User{ID: 1, FullName: in.FullName, Email: in.Email, Role: model.RoleCustomer}, nil
}

// Login delegates to LoginFn or grants a fixed one hour session.
func (s DashboardFacadeStub) Login(ctx context.Context, email, password string) (*model.Grant, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	now := time.Now()
	return &model.Grant{
		Token:   "token",
		Session: model.Session{ID: "sid", UserID: 1, CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
		User:    &model.User{ID: 1, Email: email, Role: model.RoleCustomer},
	}, nil
}

// Logout delegates to LogoutFn.
func (s DashboardFacadeStub) Logout(sessionID string) {
	if s.LogoutFn != nil {
		s.LogoutFn(sessionID)
	}
}

// Authorize accepts only "token" unless AuthorizeFn is set.
func (s DashboardFacadeStub) Authorize(ctx context.Context, token string) (*model.Session, *model.User, error) {
	if s.AuthorizeFn != nil {
		return s.AuthorizeFn(ctx, token)
	}
	if token != "token" {
		return nil, nil, domainErrors.ErrUnauthorized
	}
	actor := s.Actor
	if actor == nil {
		actor = &model.User{ID: 1, Role: model.RoleCustomer}
	}
	return &model.Session{ID: "sid", UserID: actor.ID, ExpiresAt: time.Now().Add(time.Hour)}, actor, nil
}

// Plans returns the default catalog.
func (s DashboardFacadeStub) Plans(ctx context.Context) ([]model.Plan, error) {
	if s.PlansFn != nil {
		return s.PlansFn(ctx)
	}
	return model.DefaultPlans(), nil
}

// Recommend filters the default catalog.
func (s DashboardFacadeStub) Recommend(ctx context.Context, req model.Requirements) ([]model.Plan, error) {
	if s.RecommendFn != nil {
		return s.RecommendFn(ctx, req)
	}
	out := []model.Plan{}
	for _, p := range model.DefaultPlans() {
		if p.Satisfies(req) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Purchase returns a purchase of planID for actor.
func (s DashboardFacadeStub) Purchase(ctx context.Context, actor *model.User, planID int64) (*model.Purchase, error) {
	if s.PurchaseFn != nil {
		return s.PurchaseFn(ctx, actor, planID)
	}
	if actor == nil {
		return nil, domainErrors.ErrUnauthorized
	}
	return &model.Purchase{ID: 1, UserID: actor.ID, PlanID: planID}, nil
}

// Purchases returns an empty history by default.
func (s DashboardFacadeStub) Purchases(ctx context.Context, userID int64) ([]model.Purchase, error) {
	if s.PurchasesFn != nil {
		return s.PurchasesFn(ctx, userID)
	}
	return []model.Purchase{}, nil
}

// Users returns an empty directory by default.
func (s DashboardFacadeStub) Users(ctx context.Context, actor *model.User) ([]model.UserSummary, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx, actor)
	}
	return []model.UserSummary{}, nil
}

// AllPurchases returns no purchases by default.
func (s DashboardFacadeStub) AllPurchases(ctx context.Context, actor *model.User) ([]model.Purchase, error) {
	if s.AllPurchasesFn != nil {
		return s.AllPurchasesFn(ctx, actor)
	}
	return []model.Purchase{}, nil
}

// LoginHistory returns no events by default.
func (s DashboardFacadeStub) LoginHistory(ctx context.Context, actor *model.User) ([]model.LoginEvent, error) {
	if s.LoginHistoryFn != nil {
		return s.LoginHistoryFn(ctx, actor)
	}
	return []model.LoginEvent{}, nil
}

// Summary returns an empty report by default.
func (s DashboardFacadeStub) Summary(ctx context.Context, actor *model.User) (*model.Report, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, actor)
	}
	return &model.Report{PopularPlans: map[string]int{}}, nil
}

// Snapshot returns an empty snapshot by default.
func (s DashboardFacadeStub) Snapshot(ctx context.Context, actor *model.User) (*model.Snapshot, error) {
	if s.SnapshotFn != nil {
		return s.SnapshotFn(ctx, actor)
	}
	return &model.Snapshot{GeneratedAt: time.Unix(0, 0).UTC()}, nil
}

// UpdateRole succeeds by default.
func (s DashboardFacadeStub) UpdateRole(ctx context.Context, actor *model.User, userID int64, role model.Role) error {
	if s.UpdateRoleFn != nil {
		return s.UpdateRoleFn(ctx, actor, userID, role)
	}
	return nil
}

// CatalogFeedStub returns configured plans or error.
type CatalogFeedStub struct {
	Plans []model.Plan
	Err   error
	Calls int
}

// Fetch records the call and returns configured data.
func (s *CatalogFeedStub) Fetch(ctx context.Context) ([]model.Plan, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Plans, nil
}
