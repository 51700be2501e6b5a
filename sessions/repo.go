package sessions

import (
	"context"
	"time"
)

// Store persists refresh sessions. GetByUserID returns nil without error when
// no session exists for the user.
type Store interface {
	// Upsert creates the session row for userID or overwrites the existing
	// one. A second login replaces the prior session rather than creating a
	// duplicate.
	Upsert(ctx context.Context, userID int64, token string, expiresAt time.Time) error

	// DeleteByUser removes every session row belonging to userID.
	DeleteByUser(ctx context.Context, userID int64) error

	// GetByUserID retrieves the live session for userID, if any.
	GetByUserID(ctx context.Context, userID int64) (*Session, error)

	// Update replaces the token and expiry on an existing session row.
	Update(ctx context.Context, sessionID int64, token string, expiresAt time.Time) error

	// DeleteExpired prunes sessions whose expiry is before cutoff.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// RevocationList is the permanent deny-list of access tokens. Once inserted a
// token is rejected regardless of its embedded expiry.
type RevocationList interface {
	Insert(ctx context.Context, token string, expiresAt time.Time) error
	Contains(ctx context.Context, token string) (bool, error)

	// DeleteExpiredBefore prunes entries whose token expiry passed before
	// cutoff. A blacklisted token that has expired on its own terms can no
	// longer verify, so keeping its row is dead weight.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// TerminateStore is implemented by stores that can blacklist an access token
// and delete the owning user's sessions as a single atomic unit (logout).
type TerminateStore interface {
	Terminate(ctx context.Context, accessToken string, accessExpiresAt time.Time, userID int64) error
}
