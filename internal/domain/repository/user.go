package repository

import (
	"context"

	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user model.NewUser) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.UserSummary, error)
	UpdateRole(ctx context.Context, id int64, role model.Role) error
	// CountByRole is used by the admin bootstrap check.
	CountByRole(ctx context.Context, role model.Role) (int64, error)
}
