package model

import "time"

// Purchase records a user accepting a plan. Plan and user fields are joined for display.
type Purchase struct {
	ID          int64
	UserID      int64
	PlanID      int64
	PurchasedAt time.Time
	ExpiresAt   time.Time

	PlanName     string
	Price        float64
	ValidityDays int
	DataLimitGB  float64

	UserFullName string
	UserEmail    string
}

// ExpiryFor returns the moment a plan bought at purchasedAt stops being valid.
func ExpiryFor(purchasedAt time.Time, validityDays int) time.Time {
	return purchasedAt.AddDate(0, 0, validityDays)
}

// NewPurchase is the insert payload for a purchase.
type NewPurchase struct {
	UserID      int64
	PlanID      int64
	PurchasedAt time.Time
	ExpiresAt   time.Time
}
