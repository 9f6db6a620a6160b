package repository

import (
	"context"

	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
)

// PurchaseRepository records and lists plan purchases.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase model.NewPurchase) (*model.Purchase, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Purchase, error)
	ListAll(ctx context.Context) ([]model.Purchase, error)
}
