package usecase

import (
	"context"
	"time"

	domainErrors "github.com/Shanthi551/telecom-data-plan/internal/domain/errors"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/repository"
)

// PurchaseUseCase records plan purchases and serves purchase history.
type PurchaseUseCase struct {
	plans     repository.PlanRepository
	purchases repository.PurchaseRepository
	now       func() time.Time
}

// NewPurchaseUseCase constructs PurchaseUseCase.
func NewPurchaseUseCase(plans repository.PlanRepository, purchases repository.PurchaseRepository) *PurchaseUseCase {
	return &PurchaseUseCase{plans: plans, purchases: purchases, now: time.Now}
}

// Purchase buys planID for the actor's own account. Every call adds a new purchase.
func (u *PurchaseUseCase) Purchase(ctx context.Context, actor *model.User, planID int64) (*model.Purchase, error) {
	if actor == nil {
		return nil, domainErrors.ErrUnauthorized
	}

	plan, err := u.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	purchasedAt := u.now().UTC()
	return u.purchases.Create(ctx, model.NewPurchase{
		UserID:      actor.ID,
		PlanID:      plan.ID,
		PurchasedAt: purchasedAt,
		ExpiresAt:   model.ExpiryFor(purchasedAt, plan.ValidityDays),
	})
}

// ListPurchases returns userID's purchases, most recent first.
func (u *PurchaseUseCase) ListPurchases(ctx context.Context, userID int64) ([]model.Purchase, error) {
	return u.purchases.ListByUser(ctx, userID)
}
