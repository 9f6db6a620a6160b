package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/Shanthi551/telecom-data-plan/internal/domain/errors"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
)

const defaultTTL = 24 * time.Hour

// Manager keeps the live sessions of this process. Nothing survives a restart.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
	ttl      time.Duration

	now   func() time.Time
	newID func() string
}

// NewManager builds an empty registry; a non-positive ttl falls back to 24h.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{
		sessions: make(map[string]model.Session),
		ttl:      ttl,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create opens a fresh session for userID and drops any expired ones.
func (m *Manager) Create(userID int64) model.Session {
	now := m.now()
	s := model.Session{
		ID:        m.newID(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked(now)
	m.sessions[s.ID] = s
	return s
}

// Resolve returns the live session with the given id or ErrUnauthorized.
func (m *Manager) Resolve(id string) (model.Session, error) {
	now := m.now()

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return model.Session{}, domainErrors.ErrUnauthorized
	}
	if s.Expired(now) {
		m.Revoke(id)
		return model.Session{}, domainErrors.ErrUnauthorized
	}
	return s, nil
}

// Revoke ends a session. Unknown ids are ignored.
func (m *Manager) Revoke(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Active counts sessions that have not yet expired.
func (m *Manager) Active() int {
	now := m.now()
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, s := range m.sessions {
		if !s.Expired(now) {
			n++
		}
	}
	return n
}

func (m *Manager) sweepLocked(now time.Time) {
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
		}
	}
}
