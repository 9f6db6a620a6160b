package repository

import (
	"context"

	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
)

// PlanRepository provides access to the plan catalog.
type PlanRepository interface {
	List(ctx context.Context) ([]model.Plan, error)
	GetByID(ctx context.Context, id int64) (*model.Plan, error)
	// CreateIfMissing inserts the plan unless one with the same name exists.
	CreateIfMissing(ctx context.Context, plan model.Plan) (bool, error)
	Count(ctx context.Context) (int64, error)
}
