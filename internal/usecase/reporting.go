package usecase

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/Shanthi551/telecom-data-plan/internal/domain/errors"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/repository"
)

// ReportingUseCase serves directory and analytics views. Every method re-checks the actor's role.
type ReportingUseCase struct {
	users     repository.UserRepository
	purchases repository.PurchaseRepository
	logins    repository.LoginRepository
	now       func() time.Time
}

// NewReportingUseCase constructs ReportingUseCase.
func NewReportingUseCase(users repository.UserRepository, purchases repository.PurchaseRepository, logins repository.LoginRepository) *ReportingUseCase {
	return &ReportingUseCase{users: users, purchases: purchases, logins: logins, now: time.Now}
}

var analystRoles = []model.Role{model.RoleAnalyst, model.RoleAdmin}

func requireRole(actor *model.User, allowed ...model.Role) error {
	if actor == nil {
		return domainErrors.ErrUnauthorized
	}
	for _, r := range allowed {
		if actor.Role == r {
			return nil
		}
	}
	return domainErrors.ErrForbidden
}

// ListUsers returns the user directory. Analyst or Admin only.
func (u *ReportingUseCase) ListUsers(ctx context.Context, actor *model.User) ([]model.UserSummary, error) {
	if err := requireRole(actor, analystRoles...); err != nil {
		return nil, err
	}
	return u.users.List(ctx)
}

// ListAllPurchases returns every purchase with user and plan details, newest first. Analyst or Admin only.
func (u *ReportingUseCase) ListAllPurchases(ctx context.Context, actor *model.User) ([]model.Purchase, error) {
	if err := requireRole(actor, analystRoles...); err != nil {
		return nil, err
	}
	return u.purchases.ListAll(ctx)
}

// ListLoginHistory returns the login audit trail, newest first. Analyst or Admin only.
func (u *ReportingUseCase) ListLoginHistory(ctx context.Context, actor *model.User) ([]model.LoginEvent, error) {
	if err := requireRole(actor, analystRoles...); err != nil {
		return nil, err
	}
	return u.logins.List(ctx)
}

// Summary aggregates popularity and revenue over all purchases. Analyst or Admin only.
func (u *ReportingUseCase) Summary(ctx context.Context, actor *model.User) (*model.Report, error) {
	purchases, err := u.ListAllPurchases(ctx, actor)
	if err != nil {
		return nil, err
	}
	r := Summarize(purchases)
	return &r, nil
}

// Snapshot gathers every reporting table at once for export. Analyst or Admin only.
func (u *ReportingUseCase) Snapshot(ctx context.Context, actor *model.User) (*model.Snapshot, error) {
	users, err := u.ListUsers(ctx, actor)
	if err != nil {
		return nil, err
	}
	purchases, err := u.purchases.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	logins, err := u.logins.List(ctx)
	if err != nil {
		return nil, err
	}
	return &model.Snapshot{
		GeneratedAt: u.now().UTC(),
		Users:       users,
		Purchases:   purchases,
		Logins:      logins,
		Report:      Summarize(purchases),
	}, nil
}

// UpdateRole changes one user's role. Admin only.
func (u *ReportingUseCase) UpdateRole(ctx context.Context, actor *model.User, userID int64, role model.Role) error {
	if err := requireRole(actor, model.RoleAdmin); err != nil {
		return err
	}
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", domainErrors.ErrValidation, role)
	}
	return u.users.UpdateRole(ctx, userID, role)
}

// PopularPlans counts purchases per plan name.
func PopularPlans(purchases []model.Purchase) map[string]int {
	counts := make(map[string]int)
	for _, p := range purchases {
		counts[p.PlanName]++
	}
	return counts
}

// TotalRevenue sums the price of every purchase.
func TotalRevenue(purchases []model.Purchase) float64 {
	var total float64
	for _, p := range purchases {
		total += p.Price
	}
	return total
}

// Summarize builds the analytics report for purchases.
func Summarize(purchases []model.Purchase) model.Report {
	return model.Report{
		PopularPlans:  PopularPlans(purchases),
		TotalRevenue:  TotalRevenue(purchases),
		PurchaseCount: len(purchases),
	}
}
