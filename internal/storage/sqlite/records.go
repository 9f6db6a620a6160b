package sqlite

import (
	"time"

	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
)

type userRecord struct {
	ID           int64      `gorm:"primaryKey"`
	FirstName    string     `gorm:"column:firstname;not null;default:''"`
	LastName     string     `gorm:"column:lastname;not null;default:''"`
	FullName     string     `gorm:"column:fullname;not null;default:''"`
	Email        string     `gorm:"uniqueIndex;not null"`
	Mobile       string     `gorm:"not null;default:''"`
	PasswordHash string     `gorm:"not null"`
	Role         model.Role `gorm:"not null;default:Customer;index"`
	CreatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

func (r userRecord) toModel() *model.User {
	return &model.User{
		ID:           r.ID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		FullName:     r.FullName,
		Email:        r.Email,
		Mobile:       r.Mobile,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		CreatedAt:    r.CreatedAt,
	}
}

type planRecord struct {
	ID           int64   `gorm:"primaryKey"`
	Name         string  `gorm:"uniqueIndex;not null"`
	Price        float64 `gorm:"not null"`
	ValidityDays int     `gorm:"not null"`
	DataLimitGB  float64 `gorm:"column:data_limit_gb;not null"`
}

func (planRecord) TableName() string { return "plans" }

func (r planRecord) toModel() model.Plan {
	return model.Plan{ID: r.ID, Name: r.Name, Price: r.Price, ValidityDays: r.ValidityDays, DataLimitGB: r.DataLimitGB}
}

type purchaseRecord struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"not null;index:idx_purchases_user,priority:1"`
	PlanID      int64     `gorm:"not null"`
	PurchasedAt time.Time `gorm:"not null;index:idx_purchases_user,priority:2"`
	ExpiresAt   time.Time `gorm:"not null"`

	User userRecord `gorm:"foreignKey:UserID"`
	Plan planRecord `gorm:"foreignKey:PlanID"`
}

func (purchaseRecord) TableName() string { return "purchases" }

func (r purchaseRecord) toModel() model.Purchase {
	return model.Purchase{
		ID:           r.ID,
		UserID:       r.UserID,
		PlanID:       r.PlanID,
		PurchasedAt:  r.PurchasedAt,
		ExpiresAt:    r.ExpiresAt,
		PlanName:     r.Plan.Name,
		Price:        r.Plan.Price,
		ValidityDays: r.Plan.ValidityDays,
		DataLimitGB:  r.Plan.DataLimitGB,
		UserFullName: r.User.FullName,
		UserEmail:    r.User.Email,
	}
}

type loginRecord struct {
	ID       int64     `gorm:"primaryKey"`
	UserID   int64     `gorm:"not null"`
	LoggedAt time.Time `gorm:"not null;index"`

	User userRecord `gorm:"foreignKey:UserID"`
}

func (loginRecord) TableName() string { return "logins" }

func (r loginRecord) toModel() model.LoginEvent {
	return model.LoginEvent{ID: r.ID, UserID: r.UserID, UserFullName: r.User.FullName, LoggedAt: r.LoggedAt}
}
