package model

import "time"

// Role decides which dashboard views and operations a user may reach.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleAnalyst  Role = "Analyst"
	RoleAdmin    Role = "Admin"
)

// Roles lists every known role.
var Roles = []Role{RoleCustomer, RoleAnalyst, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User represents a registered dashboard account.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	FullName     string
	Email        string
	Mobile       string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Summary returns the directory view of the user.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role}
}

// UserSummary is the directory listing shown to analysts and admins.
type UserSummary struct {
	ID       int64
	FullName string
	Email    string
	Role     Role
}

// NewUser carries registration data accepted by the store.
type NewUser struct {
	FirstName    string
	LastName     string
	FullName     string
	Email        string
	Mobile       string
	PasswordHash string
	Role         Role
}

// Registration is the sign-up form as submitted.
type Registration struct {
	FirstName       string
	LastName        string
	FullName        string
	Email           string
	Mobile          string
	Password        string
	ConfirmPassword string
}
