package dto

import "time"

// PurchaseRequest selects the plan to buy.
type PurchaseRequest struct {
	PlanID int64 `json:"plan_id"`
}

// PurchaseResponse describes a purchase with plan details and, for reports, the buyer.
type PurchaseResponse struct {
	ID           int64     `json:"id"`
	PlanID       int64     `json:"plan_id"`
	PlanName     string    `json:"plan_name"`
	Price        float64   `json:"price"`
	ValidityDays int       `json:"validity_days"`
	DataLimitGB  float64   `json:"data_limit_gb"`
	PurchasedAt  time.Time `json:"purchased_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	UserID       int64     `json:"user_id"`
	UserFullName string    `json:"user_fullname,omitempty"`
	UserEmail    string    `json:"user_email,omitempty"`
}
