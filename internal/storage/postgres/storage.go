package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/Shanthi551/telecom-data-plan/internal/domain/errors"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/repository"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type planRepository struct {
	storage *Storage
}

type purchaseRepository struct {
	storage *Storage
}

type loginRepository struct {
	storage *Storage
}

var _ repository.Factory = (*Storage)(nil)

// New connects to dsn and creates the schema if needed.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() error {
	if s.pool != nil {
		s.pool.Close()
		if s.logger != nil {
			s.logger.Info("postgres pool closed")
		}
	}
	return nil
}

func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Plans() repository.PlanRepository {
	return &planRepository{storage: s}
}

func (s *Storage) Purchases() repository.PurchaseRepository {
	return &purchaseRepository{storage: s}
}

func (s *Storage) Logins() repository.LoginRepository {
	return &loginRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            firstname TEXT NOT NULL DEFAULT '',
            lastname TEXT NOT NULL DEFAULT '',
            fullname TEXT NOT NULL DEFAULT '',
            email TEXT UNIQUE NOT NULL,
            mobile TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'Customer',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS plans (
            id BIGSERIAL PRIMARY KEY,
            name TEXT UNIQUE NOT NULL,
            price DOUBLE PRECISION NOT NULL,
            validity_days INTEGER NOT NULL,
            data_limit_gb DOUBLE PRECISION NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS purchases (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            plan_id BIGINT NOT NULL REFERENCES plans(id),
            purchased_at TIMESTAMPTZ NOT NULL,
            expires_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS logins (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            logged_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_user ON purchases(user_id, purchased_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_logins_time ON logins(logged_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	s.logger.Info("postgres schema ready", slog.Int("statements", len(statements)))
	return nil
}

func storageError(err error) error {
	return fmt.Errorf("%w: %w", domainErrors.ErrStorage, err)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// --- UserRepository implementation ---

const userColumns = `id, firstname, lastname, fullname, email, mobile, password_hash, role, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.FullName, &u.Email, &u.Mobile, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, nu model.NewUser) (*model.User, error) {
	const query = `INSERT INTO users (firstname, lastname, fullname, email, mobile, password_hash, role)
                   VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	u := model.User{
		FirstName:    nu.FirstName,
		LastName:     nu.LastName,
		FullName:     nu.FullName,
		Email:        nu.Email,
		Mobile:       nu.Mobile,
		PasswordHash: nu.PasswordHash,
		Role:         nu.Role,
	}
	err := r.storage.pool.QueryRow(ctx, query, u.FirstName, u.LastName, u.FullName, u.Email, u.Mobile, u.PasswordHash, u.Role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if pgCode(err) == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, storageError(err)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, storageError(err)
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, storageError(err)
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.UserSummary, error) {
	const query = `SELECT id, fullname, email, role FROM users ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, storageError(err)
	}
	defer rows.Close()

	result := []model.UserSummary{}
	for rows.Next() {
		var s model.UserSummary
		if err := rows.Scan(&s.ID, &s.FullName, &s.Email, &s.Role); err != nil {
			return nil, storageError(err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err)
	}
	return result, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	const query = `UPDATE users SET role=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, role, id)
	if err != nil {
		return storageError(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	const query = `SELECT COUNT(*) FROM users WHERE role=$1`
	var n int64
	if err := r.storage.pool.QueryRow(ctx, query, role).Scan(&n); err != nil {
		return 0, storageError(err)
	}
	return n, nil
}

// --- PlanRepository implementation ---

const planColumns = `id, name, price, validity_days, data_limit_gb`

func (r *planRepository) List(ctx context.Context) ([]model.Plan, error) {
	const query = `SELECT ` + planColumns + ` FROM plans ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, storageError(err)
	}
	defer rows.Close()

	result := []model.Plan{}
	for rows.Next() {
		var p model.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.ValidityDays, &p.DataLimitGB); err != nil {
			return nil, storageError(err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err)
	}
	return result, nil
}

func (r *planRepository) GetByID(ctx context.Context, id int64) (*model.Plan, error) {
	const query = `SELECT ` + planColumns + ` FROM plans WHERE id=$1`
	var p model.Plan
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.ValidityDays, &p.DataLimitGB)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, storageError(err)
	}
	return &p, nil
}

func (r *planRepository) CreateIfMissing(ctx context.Context, plan model.Plan) (bool, error) {
	const query = `INSERT INTO plans (name, price, validity_days, data_limit_gb) VALUES ($1, $2, $3, $4)
                   ON CONFLICT (name) DO NOTHING`
	tag, err := r.storage.pool.Exec(ctx, query, plan.Name, plan.Price, plan.ValidityDays, plan.DataLimitGB)
	if err != nil {
		return false, storageError(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *planRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM plans`).Scan(&n); err != nil {
		return 0, storageError(err)
	}
	return n, nil
}

// --- PurchaseRepository implementation ---

const purchaseSelect = `SELECT pu.id, pu.user_id, pu.plan_id, pu.purchased_at, pu.expires_at,
                               p.name, p.price, p.validity_days, p.data_limit_gb,
                               u.fullname, u.email
                        FROM purchases pu
                        JOIN plans p ON p.id = pu.plan_id
                        JOIN users u ON u.id = pu.user_id`

func scanPurchase(row pgx.Row) (model.Purchase, error) {
	var p model.Purchase
	err := row.Scan(&p.ID, &p.UserID, &p.PlanID, &p.PurchasedAt, &p.ExpiresAt,
		&p.PlanName, &p.Price, &p.ValidityDays, &p.DataLimitGB,
		&p.UserFullName, &p.UserEmail)
	return p, err
}

func (r *purchaseRepository) Create(ctx context.Context, np model.NewPurchase) (*model.Purchase, error) {
	var created model.Purchase
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insert = `INSERT INTO purchases (user_id, plan_id, purchased_at, expires_at)
                        VALUES ($1, $2, $3, $4) RETURNING id`
		var id int64
		if err := tx.QueryRow(ctx, insert, np.UserID, np.PlanID, np.PurchasedAt, np.ExpiresAt).Scan(&id); err != nil {
			return err
		}

		p, err := scanPurchase(tx.QueryRow(ctx, purchaseSelect+` WHERE pu.id=$1`, id))
		if err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		if pgCode(err) == foreignKeyViolation {
			return nil, domainErrors.ErrNotFound
		}
		return nil, storageError(err)
	}
	return &created, nil
}

func (r *purchaseRepository) ListByUser(ctx context.Context, userID int64) ([]model.Purchase, error) {
	return r.list(ctx, purchaseSelect+` WHERE pu.user_id=$1 ORDER BY pu.purchased_at DESC, pu.id DESC`, userID)
}

func (r *purchaseRepository) ListAll(ctx context.Context) ([]model.Purchase, error) {
	return r.list(ctx, purchaseSelect+` ORDER BY pu.purchased_at DESC, pu.id DESC`)
}

func (r *purchaseRepository) list(ctx context.Context, query string, args ...any) ([]model.Purchase, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storageError(err)
	}
	defer rows.Close()

	result := []model.Purchase{}
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, storageError(err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err)
	}
	return result, nil
}

// --- LoginRepository implementation ---

func (r *loginRepository) Record(ctx context.Context, userID int64) error {
	if _, err := r.storage.pool.Exec(ctx, `INSERT INTO logins (user_id) VALUES ($1)`, userID); err != nil {
		if pgCode(err) == foreignKeyViolation {
			return domainErrors.ErrNotFound
		}
		return storageError(err)
	}
	return nil
}

func (r *loginRepository) List(ctx context.Context) ([]model.LoginEvent, error) {
	const query = `SELECT l.id, l.user_id, u.fullname, l.logged_at
                   FROM logins l JOIN users u ON u.id = l.user_id
                   ORDER BY l.logged_at DESC, l.id DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, storageError(err)
	}
	defer rows.Close()

	result := []model.LoginEvent{}
	for rows.Next() {
		var e model.LoginEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.UserFullName, &e.LoggedAt); err != nil {
			return nil, storageError(err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err)
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
