package repository

import (
	"context"

	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
)

// LoginRepository keeps the login audit trail.
type LoginRepository interface {
	Record(ctx context.Context, userID int64) error
	List(ctx context.Context) ([]model.LoginEvent, error)
}
