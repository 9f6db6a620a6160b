package model

// UnlimitedDataGB is the data allowance used to represent an unlimited tier.
const UnlimitedDataGB = 999

// Plan is a purchasable telecom data offering.
type Plan struct {
	ID           int64
	Name         string
	Price        float64
	ValidityDays int
	DataLimitGB  float64
}

// Unlimited reports whether the plan uses the unlimited sentinel.
func (p Plan) Unlimited() bool {
	return p.DataLimitGB >= UnlimitedDataGB
}

// DefaultPlans returns the built-in catalog tiers in display order.
func DefaultPlans() []Plan {
	return []Plan{
		{Name: "Basic Plan", Price: 199, ValidityDays: 28, DataLimitGB: 10},
		{Name: "Standard Plan", Price: 399, ValidityDays: 28, DataLimitGB: 30},
		{Name: "Premium Plan", Price: 699, ValidityDays: 28, DataLimitGB: 75},
		{Name: "Unlimited Plan", Price: 999, ValidityDays: 30, DataLimitGB: UnlimitedDataGB},
	}
}

// Requirements describe what a customer needs from a plan.
type Requirements struct {
	Budget         float64
	DataNeededGB   float64
	ValidityNeeded int
}

// Satisfies reports whether the plan meets every requirement. All bounds are inclusive.
func (p Plan) Satisfies(req Requirements) bool {
	return p.Price <= req.Budget &&
		p.DataLimitGB >= req.DataNeededGB &&
		p.ValidityDays >= req.ValidityNeeded
}
