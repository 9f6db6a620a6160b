package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/Shanthi551/telecom-data-plan/internal/domain/errors"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu      sync.Mutex
	ByEmail map[string]*model.User
	ByID    map[int64]*model.User
	Next    int64
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		Next:    1,
	}
}

// Create registers user unless the email is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, nu model.NewUser) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[nu.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{
		ID:           s.Next,
		FirstName:    nu.FirstName,
		LastName:     nu.LastName,
		FullName:     nu.FullName,
		Email:        nu.Email,
		Mobile:       nu.Mobile,
		PasswordHash: nu.PasswordHash,
		Role:         nu.Role,
		CreatedAt:    time.Now(),
	}
	s.Next++
	s.ByEmail[nu.Email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns summaries ordered by id.
func (s *UserRepositoryStub) List(ctx context.Context) ([]model.UserSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.UserSummary, 0, len(s.ByID))
	for _, u := range s.ByID {
		out = append(out, u.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateRole changes the stored role of one user.
func (s *UserRepositoryStub) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Role = role
	return nil
}

// CountByRole counts users holding role.
func (s *UserRepositoryStub) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var n int64
	for _, u := range s.ByID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// PlanRepositoryStub keeps the catalog in insertion order.
type PlanRepositoryStub struct {
	mu    sync.Mutex
	Items []model.Plan
	Err   error
}

// NewPlanRepositoryStub returns a stub pre-filled with plans, assigning ids in order.
func NewPlanRepositoryStub(plans ...model.Plan) *PlanRepositoryStub {
	s := &PlanRepositoryStub{}
	for _, p := range plans {
		_, _ = s.CreateIfMissing(context.Background(), p)
	}
	return s
}

// List returns a copy of the catalog.
func (s *PlanRepositoryStub) List(ctx context.Context) ([]model.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Plan, len(s.Items))
	copy(out, s.Items)
	return out, nil
}

// GetByID returns the plan with id or not found.
func (s *PlanRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Items {
		if p.ID == id {
			plan := p
			return &plan, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// CreateIfMissing appends plan unless its name is already present.
func (s *PlanRepositoryStub) CreateIfMissing(ctx context.Context, plan model.Plan) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for _, p := range s.Items {
		if p.Name == plan.Name {
			return false, nil
		}
	}
	plan.ID = int64(len(s.Items) + 1)
	s.Items = append(s.Items, plan)
	return true, nil
}

// Count returns the catalog size.
func (s *PlanRepositoryStub) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.Items)), nil
}

// PurchaseRepositoryStub joins purchases with the plan and user stubs it is given.
type PurchaseRepositoryStub struct {
	mu    sync.Mutex
	Plans *PlanRepositoryStub
	Users *UserRepositoryStub
	Items []model.Purchase
	Err   error
}

// Create stores a purchase, failing with not found for unknown plans.
func (s *PurchaseRepositoryStub) Create(ctx context.Context, np model.NewPurchase) (*model.Purchase, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	p := model.Purchase{UserID: np.UserID, PlanID: np.PlanID, PurchasedAt: np.PurchasedAt, ExpiresAt: np.ExpiresAt}
	if s.Plans != nil {
		plan, err := s.Plans.GetByID(ctx, np.PlanID)
		if err != nil {
			return nil, err
		}
		p.PlanName, p.Price, p.ValidityDays, p.DataLimitGB = plan.Name, plan.Price, plan.ValidityDays, plan.DataLimitGB
	}
	if s.Users != nil {
		if u, err := s.Users.GetByID(ctx, np.UserID); err == nil {
			p.UserFullName, p.UserEmail = u.FullName, u.Email
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = int64(len(s.Items) + 1)
	s.Items = append(s.Items, p)
	return &p, nil
}

// ListByUser returns the user's purchases, newest first.
func (s *PurchaseRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Purchase, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Purchase{}
	for _, p := range all {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ListAll returns every purchase, newest first.
func (s *PurchaseRepositoryStub) ListAll(ctx context.Context) ([]model.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Purchase, len(s.Items))
	copy(out, s.Items)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PurchasedAt.Equal(out[j].PurchasedAt) {
			return out[i].PurchasedAt.After(out[j].PurchasedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// LoginRepositoryStub records login events in memory.
type LoginRepositoryStub struct {
	mu     sync.Mutex
	Users  *UserRepositoryStub
	Events []model.LoginEvent
	Err    error
}

// Record appends an event for userID.
func (s *LoginRepositoryStub) Record(ctx context.Context, userID int64) error {
	if s.Err != nil {
		return s.Err
	}
	e := model.LoginEvent{UserID: userID, LoggedAt: time.Now()}
	if s.Users != nil {
		u, err := s.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		e.UserFullName = u.FullName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = int64(len(s.Events) + 1)
	s.Events = append(s.Events, e)
	return nil
}

// List returns events, newest first.
func (s *LoginRepositoryStub) List(ctx context.Context) ([]model.LoginEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.LoginEvent, 0, len(s.Events))
	for i := len(s.Events) - 1; i >= 0; i-- {
		out = append(out, s.Events[i])
	}
	return out, nil
}

// Store bundles the repository stubs behind repository.Factory.
type Store struct {
	UserRepo     *UserRepositoryStub
	PlanRepo     *PlanRepositoryStub
	PurchaseRepo *PurchaseRepositoryStub
	LoginRepo    *LoginRepositoryStub
	Closed       bool
}

// NewStore wires stubs together so purchases and logins see users and plans.
func NewStore(plans ...model.Plan) *Store {
	users := NewUserRepositoryStub()
	planRepo := NewPlanRepositoryStub(plans...)
	return &Store{
		UserRepo:     users,
		PlanRepo:     planRepo,
		PurchaseRepo: &PurchaseRepositoryStub{Plans: planRepo, Users: users},
		LoginRepo:    &LoginRepositoryStub{Users: users},
	}
}

func (s *Store) Users() repository.UserRepository         { return s.UserRepo }
func (s *Store) Plans() repository.PlanRepository         { return s.PlanRepo }
func (s *Store) Purchases() repository.PurchaseRepository { return s.PurchaseRepo }
func (s *Store) Logins() repository.LoginRepository       { return s.LoginRepo }

// Close marks the store closed.
func (s *Store) Close() error {
	s.Closed = true
	return nil
}

var _ repository.Factory = (*Store)(nil)
