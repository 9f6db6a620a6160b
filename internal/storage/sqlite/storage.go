package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	domainErrors "github.com/Shanthi551/telecom-data-plan/internal/domain/errors"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/repository"
)

const foreignKeysPragma = "_pragma=foreign_keys(1)"

// Storage is the repository facade over a local SQLite file.
type Storage struct {
	db     *gorm.DB
	logger *slog.Logger
}

type userRepository struct {
	db *gorm.DB
}

type planRepository struct {
	db *gorm.DB
}

type purchaseRepository struct {
	db *gorm.DB
}

type loginRepository struct {
	db *gorm.DB
}

var _ repository.Factory = (*Storage)(nil)

// Open opens (creating if needed) the database file at path and migrates the schema.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Storage, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	db, err := gorm.Open(sqlite.Open(withPragmas(path)), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// One writer at a time keeps the file free of SQLITE_BUSY errors.
	sqlDB.SetMaxOpenConns(1)

	storage := &Storage{db: db, logger: logger}
	if err := storage.migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return storage, nil
}

func withPragmas(path string) string {
	if strings.Contains(path, foreignKeysPragma) {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + foreignKeysPragma
}

func (s *Storage) migrate(ctx context.Context) error {
	records := []any{&userRecord{}, &planRecord{}, &purchaseRecord{}, &loginRecord{}}
	if err := s.db.WithContext(ctx).AutoMigrate(records...); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	s.logger.Info("sqlite schema ready", slog.Int("tables", len(records)))
	return nil
}

// Close releases the underlying connection pool.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	s.logger.Info("sqlite storage closed")
	return nil
}

func (s *Storage) Users() repository.UserRepository {
	return &userRepository{db: s.db}
}

func (s *Storage) Plans() repository.PlanRepository {
	return &planRepository{db: s.db}
}

func (s *Storage) Purchases() repository.PurchaseRepository {
	return &purchaseRepository{db: s.db}
}

func (s *Storage) Logins() repository.LoginRepository {
	return &loginRepository{db: s.db}
}

// HealthCheck verifies the database file is reachable.
func (s *Storage) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func storageError(err error) error {
	return fmt.Errorf("%w: %w", domainErrors.ErrStorage, err)
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, nu model.NewUser) (*model.User, error) {
	rec := userRecord{
		FirstName:    nu.FirstName,
		LastName:     nu.LastName,
		FullName:     nu.FullName,
		Email:        nu.Email,
		Mobile:       nu.Mobile,
		PasswordHash: nu.PasswordHash,
		Role:         nu.Role,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, storageError(err)
	}
	return rec.toModel(), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) first(ctx context.Context, cond string, arg any) (*model.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, storageError(err)
	}
	return rec.toModel(), nil
}

func (r *userRepository) List(ctx context.Context) ([]model.UserSummary, error) {
	var recs []userRecord
	if err := r.db.WithContext(ctx).Select("id", "fullname", "email", "role").Order("id").Find(&recs).Error; err != nil {
		return nil, storageError(err)
	}
	result := make([]model.UserSummary, 0, len(recs))
	for _, rec := range recs {
		result = append(result, rec.toModel().Summary())
	}
	return result, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	res := r.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return storageError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&userRecord{}).Where("role = ?", role).Count(&n).Error; err != nil {
		return 0, storageError(err)
	}
	return n, nil
}

// --- PlanRepository implementation ---

func (r *planRepository) List(ctx context.Context) ([]model.Plan, error) {
	var recs []planRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, storageError(err)
	}
	result := make([]model.Plan, 0, len(recs))
	for _, rec := range recs {
		result = append(result, rec.toModel())
	}
	return result, nil
}

func (r *planRepository) GetByID(ctx context.Context, id int64) (*model.Plan, error) {
	var rec planRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, storageError(err)
	}
	p := rec.toModel()
	return &p, nil
}

func (r *planRepository) CreateIfMissing(ctx context.Context, plan model.Plan) (bool, error) {
	rec := planRecord{Name: plan.Name, Price: plan.Price, ValidityDays: plan.ValidityDays, DataLimitGB: plan.DataLimitGB}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rec)
	if res.Error != nil {
		return false, storageError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *planRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&planRecord{}).Count(&n).Error; err != nil {
		return 0, storageError(err)
	}
	return n, nil
}

// --- PurchaseRepository implementation ---

func (r *purchaseRepository) Create(ctx context.Context, np model.NewPurchase) (*model.Purchase, error) {
	rec := purchaseRecord{
		UserID:      np.UserID,
		PlanID:      np.PlanID,
		PurchasedAt: np.PurchasedAt.UTC(),
		ExpiresAt:   np.ExpiresAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		if isForeignKeyViolation(err) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, storageError(err)
	}

	var loaded purchaseRecord
	if err := r.joined(ctx).Where("purchases.id = ?", rec.ID).First(&loaded).Error; err != nil {
		return nil, storageError(err)
	}
	p := loaded.toModel()
	return &p, nil
}

func (r *purchaseRepository) ListByUser(ctx context.Context, userID int64) ([]model.Purchase, error) {
	return r.list(r.joined(ctx).Where("purchases.user_id = ?", userID))
}

func (r *purchaseRepository) ListAll(ctx context.Context) ([]model.Purchase, error) {
	return r.list(r.joined(ctx))
}

func (r *purchaseRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Joins("User").Joins("Plan")
}

func (r *purchaseRepository) list(q *gorm.DB) ([]model.Purchase, error) {
	var recs []purchaseRecord
	if err := q.Order("purchases.purchased_at DESC").Order("purchases.id DESC").Find(&recs).Error; err != nil {
		return nil, storageError(err)
	}
	result := make([]model.Purchase, 0, len(recs))
	for _, rec := range recs {
		result = append(result, rec.toModel())
	}
	return result, nil
}

// --- LoginRepository implementation ---

func (r *loginRepository) Record(ctx context.Context, userID int64) error {
	rec := loginRecord{UserID: userID, LoggedAt: time.Now().UTC()}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		if isForeignKeyViolation(err) {
			return domainErrors.ErrNotFound
		}
		return storageError(err)
	}
	return nil
}

func (r *loginRepository) List(ctx context.Context) ([]model.LoginEvent, error) {
	var recs []loginRecord
	err := r.db.WithContext(ctx).
		Joins("User").
		Order("logins.logged_at DESC").
		Order("logins.id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, storageError(err)
	}
	result := make([]model.LoginEvent, 0, len(recs))
	for _, rec := range recs {
		result = append(result, rec.toModel())
	}
	return result, nil
}
