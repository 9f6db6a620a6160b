package model

import "time"

// LoginEvent is an audit entry appended on every successful login.
type LoginEvent struct {
	ID           int64
	UserID       int64
	UserFullName string
	LoggedAt     time.Time
}
