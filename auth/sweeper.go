package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tareahub/go-tarea-server/sessions"
)

// Sweeper prunes expired session rows and dead blacklist entries in the
// background. Without it both tables grow without bound: a blacklisted token
// whose own expiry has passed can never verify again, so its row serves no
// purpose.
type Sweeper struct {
	sessions sessions.Store
	revoked  sessions.RevocationList
	interval time.Duration
	nowFunc  func() time.Time
}

// SweeperOption modifies a Sweeper.
type SweeperOption func(*Sweeper)

// WithSweeperNowFunc sets the clock (primarily for testing).
func WithSweeperNowFunc(now func() time.Time) SweeperOption {
	return func(s *Sweeper) {
		s.nowFunc = now
	}
}

// NewSweeper creates a Sweeper over the given stores.
func NewSweeper(sessionStore sessions.Store, revoked sessions.RevocationList, interval time.Duration, options ...SweeperOption) (*Sweeper, error) {
	if sessionStore == nil {
		return nil, errors.New("[auth.NewSweeper] session store is required")
	}
	if revoked == nil {
		return nil, errors.New("[auth.NewSweeper] revocation list is required")
	}
	if interval <= 0 {
		return nil, errors.New("[auth.NewSweeper] interval must be positive")
	}

	s := &Sweeper{
		sessions: sessionStore,
		revoked:  revoked,
		interval: interval,
		nowFunc:  time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Run sweeps on the configured interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, _, err := s.SweepOnce(ctx); err != nil {
				log.Error().Err(err).Msg("maintenance sweep failed")
			}
		}
	}
}

// SweepOnce removes expired sessions and dead blacklist entries, returning
// the number of rows pruned from each.
func (s *Sweeper) SweepOnce(ctx context.Context) (sessionsPruned, tokensPruned int64, err error) {
	cutoff := s.nowFunc()

	sessionsPruned, err = s.sessions.DeleteExpired(ctx, cutoff)
	if err != nil {
		return 0, 0, errors.Wrap(err, "[Sweeper.SweepOnce] DeleteExpired")
	}

	tokensPruned, err = s.revoked.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return sessionsPruned, 0, errors.Wrap(err, "[Sweeper.SweepOnce] DeleteExpiredBefore")
	}

	if sessionsPruned > 0 || tokensPruned > 0 {
		log.Info().
			Int64("sessions", sessionsPruned).
			Int64("revoked_tokens", tokensPruned).
			Msg("maintenance sweep pruned expired rows")
	}
	return sessionsPruned, tokensPruned, nil
}
