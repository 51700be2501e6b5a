// Package sessions holds the server-side refresh-session record and the
// contracts for its store and the access-token revocation list.
package sessions

import "time"

// Session is the one-per-user record of the currently valid refresh token.
// UserID carries a uniqueness constraint in the store; concurrent writers for
// the same user resolve last-write-wins through that constraint, not through
// in-process locks.
type Session struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the session's refresh token has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
