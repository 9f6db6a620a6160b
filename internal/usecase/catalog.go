package usecase

import (
	"context"
	"errors"

	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/repository"
)

// CatalogUseCase serves the plan catalog and recommendations.
type CatalogUseCase struct {
	plans repository.PlanRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(plans repository.PlanRepository) *CatalogUseCase {
	return &CatalogUseCase{plans: plans}
}

// ListPlans returns every plan in insertion order.
func (u *CatalogUseCase) ListPlans(ctx context.Context) ([]model.Plan, error) {
	return u.plans.List(ctx)
}

// SeedDefaults installs the built-in tiers into an empty catalog and returns how many were added.
func (u *CatalogUseCase) SeedDefaults(ctx context.Context) (int, error) {
	n, err := u.plans.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	return u.insertMissing(ctx, model.DefaultPlans())
}

// Import adds plans whose names are not in the catalog yet. Invalid entries are skipped
// and reported through the returned error alongside the count of inserted plans.
func (u *CatalogUseCase) Import(ctx context.Context, plans []model.Plan) (int, error) {
	var (
		valid   []model.Plan
		invalid []error
	)
	for _, p := range plans {
		if err := ValidatePlan(p); err != nil {
			invalid = append(invalid, err)
			continue
		}
		valid = append(valid, p)
	}

	inserted, err := u.insertMissing(ctx, valid)
	if err != nil {
		return inserted, err
	}
	return inserted, errors.Join(invalid...)
}

func (u *CatalogUseCase) insertMissing(ctx context.Context, plans []model.Plan) (int, error) {
	inserted := 0
	for _, p := range plans {
		created, err := u.plans.CreateIfMissing(ctx, p)
		if err != nil {
			return inserted, err
		}
		if created {
			inserted++
		}
	}
	return inserted, nil
}

// Recommend loads the catalog and filters it against req.
func (u *CatalogUseCase) Recommend(ctx context.Context, req model.Requirements) ([]model.Plan, error) {
	if err := ValidateRequirements(req); err != nil {
		return nil, err
	}
	plans, err := u.plans.List(ctx)
	if err != nil {
		return nil, err
	}
	return Recommend(plans, req), nil
}

// Recommend keeps the plans that satisfy req, preserving catalog order.
// The result is never nil.
func Recommend(plans []model.Plan, req model.Requirements) []model.Plan {
	out := make([]model.Plan, 0, len(plans))
	for _, p := range plans {
		if p.Satisfies(req) {
			out = append(out, p)
		}
	}
	return out
}
