package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/tareahub/go-tarea-server/sessions"
)

// SessionStore implements sessions.Store and sessions.TerminateStore. The
// sesiones table carries a unique constraint on user_id, which is what makes
// Upsert atomic under concurrent logins.
type SessionStore struct {
	pool *pgxpool.Pool
}

func NewSessionStore(pool *pgxpool.Pool) *SessionStore {
	return &SessionStore{pool: pool}
}

func (s *SessionStore) Upsert(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO sesiones (user_id, token, expires_at) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at`,
		userID, token, expiresAt)
	return errors.Wrap(err, "[SessionStore Upsert] exec")
}

func (s *SessionStore) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sesiones WHERE user_id = $1`, userID)
	return errors.Wrap(err, "[SessionStore DeleteByUser] exec")
}

func (s *SessionStore) GetByUserID(ctx context.Context, userID int64) (*sessions.Session, error) {
	var session sessions.Session
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, token, expires_at FROM sesiones WHERE user_id = $1`, userID).
		Scan(&session.ID, &session.UserID, &session.Token, &session.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[SessionStore GetByUserID] scan")
	}
	return &session, nil
}

func (s *SessionStore) Update(ctx context.Context, sessionID int64, token string, expiresAt time.Time) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE sesiones SET token = $2, expires_at = $3 WHERE id = $1`,
		sessionID, token, expiresAt)
	return errors.Wrap(err, "[SessionStore Update] exec")
}

func (s *SessionStore) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sesiones WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "[SessionStore DeleteExpired] exec")
	}
	return tag.RowsAffected(), nil
}

// Terminate blacklists the access token and removes the user's session in a
// single transaction, so a crash between the two cannot leave a live session
// with a revoked token.
func (s *SessionStore) Terminate(ctx context.Context, accessToken string, accessExpiresAt time.Time, userID int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "[SessionStore Terminate] begin")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx,
		`INSERT INTO blacklist (token, expires_at) VALUES ($1, $2) ON CONFLICT (token) DO NOTHING`,
		accessToken, accessExpiresAt); err != nil {
		return errors.Wrap(err, "[SessionStore Terminate] blacklist insert")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sesiones WHERE user_id = $1`, userID); err != nil {
		return errors.Wrap(err, "[SessionStore Terminate] session delete")
	}
	return errors.Wrap(tx.Commit(ctx), "[SessionStore Terminate] commit")
}

// RevocationStore implements sessions.RevocationList on the blacklist table.
type RevocationStore struct {
	pool *pgxpool.Pool
}

func NewRevocationStore(pool *pgxpool.Pool) *RevocationStore {
	return &RevocationStore{pool: pool}
}

func (s *RevocationStore) Insert(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO blacklist (token, expires_at) VALUES ($1, $2) ON CONFLICT (token) DO NOTHING`,
		token, expiresAt)
	return errors.Wrap(err, "[RevocationStore Insert] exec")
}

func (s *RevocationStore) Contains(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM blacklist WHERE token = $1)`, token).Scan(&exists)
	return exists, errors.Wrap(err, "[RevocationStore Contains] scan")
}

func (s *RevocationStore) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM blacklist WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "[RevocationStore DeleteExpiredBefore] exec")
	}
	return tag.RowsAffected(), nil
}
