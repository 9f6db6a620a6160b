package test

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	pkgAuth "github.com/Shanthi551/telecom-data-plan/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return pkgAuth.ErrPasswordMismatch
	}
	return nil
}

// StrategyStub encodes tokens as "<session>|<user>" unless overridden.
type StrategyStub struct {
	IssueFn func(model.Session) (string, error)
	ParseFn func(string) (pkgAuth.Claims, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(session model.Session) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(session)
	}
	return fmt.Sprintf("%s|%d", session.ID, session.UserID), nil
}

// ParseToken reverses IssueToken.
func (s StrategyStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	sid, uid, ok := strings.Cut(token, "|")
	if !ok || sid == "" {
		return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
	}
	userID, err := strconv.ParseInt(uid, 10, 64)
	if err != nil {
		return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
	}
	return pkgAuth.Claims{SessionID: sid, UserID: userID}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
