package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Plans() PlanRepository
	Purchases() PurchaseRepository
	Logins() LoginRepository
	Close() error
}
