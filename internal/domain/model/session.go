package model

import "time"

// Session binds an authenticated client to a user until logout or expiry.
type Session struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer usable at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Grant is what a successful login hands back: the signed client token and the session it names.
type Grant struct {
	Token   string
	Session Session
	User    *User
}
