package model

import "time"

// Report aggregates purchase analytics for the analyst dashboard.
type Report struct {
	PopularPlans  map[string]int
	TotalRevenue  float64
	PurchaseCount int
}

// Snapshot is the full reporting dataset exported as a workbook.
type Snapshot struct {
	GeneratedAt time.Time
	Users       []UserSummary
	Purchases   []Purchase
	Logins      []LoginEvent
	Report      Report
}
