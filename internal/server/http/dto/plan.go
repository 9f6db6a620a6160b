package dto

// PlanResponse describes a catalog entry.
type PlanResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ValidityDays int     `json:"validity_days"`
	DataLimitGB  float64 `json:"data_limit_gb"`
	Unlimited    bool    `json:"unlimited"`
}

// RecommendRequest carries what the customer needs from a plan.
type RecommendRequest struct {
	Budget         float64 `json:"budget"`
	DataNeededGB   float64 `json:"data_needed_gb"`
	ValidityNeeded int     `json:"validity_needed"`
}
