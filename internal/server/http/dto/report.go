package dto

import "time"

// UserSummaryResponse is one row of the user directory.
type UserSummaryResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// LoginEventResponse is one row of the login history.
type LoginEventResponse struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	FullName string    `json:"fullname"`
	LoggedAt time.Time `json:"logged_at"`
}

// SummaryResponse aggregates purchase analytics.
type SummaryResponse struct {
	PopularPlans  map[string]int `json:"popular_plans"`
	TotalRevenue  float64        `json:"total_revenue"`
	PurchaseCount int            `json:"purchase_count"`
}

// RoleUpdateRequest names the new role for a user.
type RoleUpdateRequest struct {
	Role string `json:"role"`
}

// ErrorResponse is returned with every non-2xx status that has a body.
type ErrorResponse struct {
	Error string `json:"error"`
}
