package auth

import (
	"time"

	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
)

// Claims is what a verified token says about its bearer.
type Claims struct {
	SessionID string
	UserID    int64
}

// Strategy signs and verifies session tokens handed to clients.
type Strategy interface {
	IssueToken(session model.Session) (string, error)
	ParseToken(token string) (Claims, error)
	Name() string
}

type Options struct {
	Issuer string
	Leeway time.Duration
}
