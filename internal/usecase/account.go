package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/Shanthi551/telecom-data-plan/internal/domain/errors"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/repository"
	pkgAuth "github.com/Shanthi551/telecom-data-plan/internal/pkg/auth"
)

// SessionStore tracks which clients are logged in.
type SessionStore interface {
	Create(userID int64) model.Session
	Resolve(id string) (model.Session, error)
	Revoke(id string)
}

// AdminSeed holds the credentials used when no administrator exists yet.
type AdminSeed struct {
	Email    string
	Password string
}

const (
	defaultAdminFullName = "Admin User"
	defaultAdminMobile   = "0000000000"
)

// AccountUseCase handles registration, credential checks and sessions.
type AccountUseCase struct {
	users    repository.UserRepository
	logins   repository.LoginRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
	sessions SessionStore
	admin    AdminSeed
}

// NewAccountUseCase constructs AccountUseCase.
func NewAccountUseCase(
	users repository.UserRepository,
	logins repository.LoginRepository,
	hasher pkgAuth.PasswordHasher,
	tokens pkgAuth.Strategy,
	sessions SessionStore,
	admin AdminSeed,
) *AccountUseCase {
	return &AccountUseCase{users: users, logins: logins, hasher: hasher, tokens: tokens, sessions: sessions, admin: admin}
}

// Register creates a Customer account. A taken email yields ErrAlreadyExists and no new row.
func (u *AccountUseCase) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in = normalizeRegistration(in)
	if err := ValidateRegistration(in); err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	return u.users.Create(ctx, model.NewUser{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		FullName:     in.FullName,
		Email:        in.Email,
		Mobile:       in.Mobile,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
	})
}

// Authenticate returns the user whose email and password both match exactly.
func (u *AccountUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}

	return usr, nil
}

// RecordLogin appends a login audit event.
func (u *AccountUseCase) RecordLogin(ctx context.Context, userID int64) error {
	return u.logins.Record(ctx, userID)
}

// Login authenticates, records the event and opens a session for this client.
func (u *AccountUseCase) Login(ctx context.Context, email, password string) (*model.Session, *model.User, error) {
	usr, err := u.Authenticate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}
	if err := u.RecordLogin(ctx, usr.ID); err != nil {
		return nil, nil, err
	}
	s := u.sessions.Create(usr.ID)
	return &s, usr, nil
}

// IssueToken signs a client token for s.
func (u *AccountUseCase) IssueToken(s model.Session) (string, error) {
	return u.tokens.IssueToken(s)
}

// Authorize maps a client token to its live session and freshly loaded user.
func (u *AccountUseCase) Authorize(ctx context.Context, token string) (*model.Session, *model.User, error) {
	if token == "" {
		return nil, nil, domainErrors.ErrUnauthorized
	}
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, nil, domainErrors.ErrUnauthorized
	}

	s, err := u.sessions.Resolve(claims.SessionID)
	if err != nil || s.UserID != claims.UserID {
		return nil, nil, domainErrors.ErrUnauthorized
	}

	usr, err := u.users.GetByID(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.sessions.Revoke(s.ID)
			return nil, nil, domainErrors.ErrUnauthorized
		}
		return nil, nil, err
	}
	return &s, usr, nil
}

// Logout ends the session. Logging out twice is harmless.
func (u *AccountUseCase) Logout(sessionID string) {
	u.sessions.Revoke(sessionID)
}

// GetByID fetches user by identifier.
func (u *AccountUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// EnsureDefaultAdmin inserts the seed administrator only when no Admin exists.
// It reports whether a user was created.
func (u *AccountUseCase) EnsureDefaultAdmin(ctx context.Context) (bool, error) {
	n, err := u.users.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	hash, err := u.hasher.Hash(u.admin.Password)
	if err != nil {
		return false, err
	}

	_, err = u.users.Create(ctx, model.NewUser{
		FirstName:    "Admin",
		LastName:     "User",
		FullName:     defaultAdminFullName,
		Email:        u.admin.Email,
		Mobile:       defaultAdminMobile,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		return false, fmt.Errorf("seed admin %s: %w", u.admin.Email, err)
	}
	return true, nil
}
