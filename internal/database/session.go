package database

import (
	"context"
	"errors"
	"sync/atomic"

	"gorm.io/gorm"
)

// ErrSessionClosed is returned when a released session is used.
var ErrSessionClosed = errors.New("database session is closed")

// Session is a store handle scoped to one unit of work, typically an HTTP
// request. It must be released exactly when the work ends; Release is
// idempotent so it can always be deferred.
type Session struct {
	db       *gorm.DB
	parent   *Database
	released atomic.Bool
}

// Acquire opens a session whose statements run under ctx.
func (d *Database) Acquire(ctx context.Context) *Session {
	d.openSessions.Add(1)
	return &Session{
		db:     d.DB.WithContext(ctx),
		parent: d,
	}
}

// OpenSessions returns the number of acquired, not yet released sessions.
func (d *Database) OpenSessions() int64 {
	return d.openSessions.Load()
}

// DB returns the session's gorm handle.
func (s *Session) DB() (*gorm.DB, error) {
	if s.released.Load() {
		return nil, ErrSessionClosed
	}
	return s.db, nil
}

// Release ends the session.
func (s *Session) Release() {
	if s.released.CompareAndSwap(false, true) {
		s.parent.openSessions.Add(-1)
	}
}
