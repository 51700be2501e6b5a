// Package auth implements the session core: login, logout and the
// access/refresh verification gate every protected request passes through.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tareahub/go-tarea-server/internal/apperrors"
	"github.com/tareahub/go-tarea-server/sessions"
	"github.com/tareahub/go-tarea-server/tareas"
	"github.com/tareahub/go-tarea-server/token"
	"github.com/tareahub/go-tarea-server/users"
)

const bearerPrefix = "Bearer "

// Stores holds the store dependencies of the session core. Terminator is the
// atomic blacklist-and-delete used by logout; the Postgres store satisfies it
// with a transaction over the same tables Revoked and Sessions expose.
type Stores struct {
	Users      users.Store
	Sessions   sessions.Store
	Revoked    sessions.RevocationList
	Terminator sessions.TerminateStore
	Tareas     tareas.Store
}

// TokenPair is what login hands back to the client.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Service orchestrates the session state machine. It holds no mutable state
// of its own: single-session-per-user correctness rests on the store's
// uniqueness constraint, with concurrent writers resolved last-write-wins.
type Service struct {
	stores     Stores
	codec      *token.Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
	nowFunc    func() time.Time
}

// ServiceOption modifies a Service.
type ServiceOption func(*Service)

// WithNowFunc sets the clock (primarily for testing).
func WithNowFunc(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowFunc = now
	}
}

// WithTokenTTLs overrides the access and refresh token lifetimes.
func WithTokenTTLs(accessTTL, refreshTTL time.Duration) ServiceOption {
	return func(s *Service) {
		s.accessTTL = accessTTL
		s.refreshTTL = refreshTTL
	}
}

// NewService creates the session core with its store and codec dependencies.
func NewService(stores Stores, codec *token.Codec, options ...ServiceOption) (*Service, error) {
	if stores.Users == nil {
		return nil, errors.New("[auth.NewService] Users store is required")
	}
	if stores.Sessions == nil {
		return nil, errors.New("[auth.NewService] Sessions store is required")
	}
	if stores.Revoked == nil {
		return nil, errors.New("[auth.NewService] Revoked list is required")
	}
	if stores.Terminator == nil {
		return nil, errors.New("[auth.NewService] Terminator store is required")
	}
	if codec == nil {
		return nil, errors.New("[auth.NewService] codec is required")
	}

	s := &Service{
		stores:     stores,
		codec:      codec,
		accessTTL:  15 * time.Minute,
		refreshTTL: 7 * 24 * time.Hour,
		nowFunc:    time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Login checks the credentials and establishes the user's single refresh
// session. Unknown email and wrong password fail identically so the response
// never reveals whether the account exists. Nothing is written on failure.
func (s *Service) Login(ctx context.Context, correo, contrasena string) (*TokenPair, error) {
	user, err := s.stores.Users.GetByEmail(ctx, correo)
	if err != nil {
		return nil, apperrors.Internalf(err, "error during login")
	}
	if user == nil || !users.CheckPasswordHash(contrasena, user.Contrasena) {
		return nil, apperrors.Unauthorizedf("invalid credentials")
	}

	accessToken, err := s.codec.Issue(user.ID, s.accessTTL)
	if err != nil {
		return nil, apperrors.Internalf(err, "error during login")
	}
	refreshToken, err := s.codec.Issue(user.ID, s.refreshTTL)
	if err != nil {
		return nil, apperrors.Internalf(err, "error during login")
	}

	// Upsert: a second login replaces the prior session row.
	if err := s.stores.Sessions.Upsert(ctx, user.ID, refreshToken, s.nowFunc().Add(s.refreshTTL)); err != nil {
		return nil, apperrors.Internalf(err, "error during login")
	}

	return &TokenPair{Token: accessToken, RefreshToken: refreshToken}, nil
}

// Logout revokes the access token and deletes the subject's session as one
// atomic unit. An access token that has already expired still logs out
// cleanly: the subject is decoded from the payload and the session deleted,
// with nothing to blacklist since the token can no longer verify. The gate
// screens malformed tokens before this call, so one surfacing here is an
// internal error.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	v := s.codec.Verify(accessToken)
	switch v.Kind {
	case token.KindValid:
		if err := s.stores.Terminator.Terminate(ctx, accessToken, v.ExpiresAt, v.Subject); err != nil {
			return apperrors.Internalf(err, "error during logout")
		}
		return nil

	case token.KindExpired:
		if err := s.stores.Sessions.DeleteByUser(ctx, v.Subject); err != nil {
			return apperrors.Internalf(err, "error during logout")
		}
		log.Debug().Int64("user_id", v.Subject).Msg("logout of expired session")
		return nil

	default:
		return apperrors.Internalf(nil, "error during logout")
	}
}

// Authenticate is the verification gate. It classifies token failures into
// recoverable-by-rotation (expired but structurally valid) and terminal
// (blacklisted, or no session left to rotate from), so short access TTLs
// never force a re-login while the refresh token or the session row is
// alive.
//
// Stages:
//  1. no refresh token: reject before any cryptographic work
//  2. blacklisted access token: reject, terminal
//  3. valid access token: fast path, no store mutation
//  4. valid refresh token + live session: mint a new access token only
//  5. both tokens dead but a session row survives: rotate the full pair and
//     persist the new refresh token on the session
func (s *Service) Authenticate(ctx context.Context, authHeader, refreshToken string) (*Principal, error) {
	if refreshToken == "" {
		return nil, apperrors.Unauthorizedf("no refresh token provided")
	}

	// A missing or non-Bearer header is treated like a malformed access
	// token: the refresh path below may still recover the request.
	if accessToken, ok := extractBearer(authHeader); ok {
		revoked, err := s.stores.Revoked.Contains(ctx, accessToken)
		if err != nil {
			return nil, apperrors.Internalf(err, "error during authentication")
		}
		if revoked {
			return nil, apperrors.Unauthorizedf("invalid authentication token")
		}

		if v := s.codec.Verify(accessToken); v.Kind == token.KindValid {
			user, err := s.resolveUser(ctx, v.Subject)
			if err != nil {
				return nil, err
			}
			return &Principal{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
		}
	}

	if rv := s.codec.Verify(refreshToken); rv.Kind == token.KindValid {
		return s.refreshAccess(ctx, rv.Subject, refreshToken)
	}

	return s.recoverSession(ctx, refreshToken)
}

// refreshAccess mints a replacement access token against a verified refresh
// token. The refresh token itself is not rotated on this path.
func (s *Service) refreshAccess(ctx context.Context, subject int64, refreshToken string) (*Principal, error) {
	session, err := s.stores.Sessions.GetByUserID(ctx, subject)
	if err != nil {
		return nil, apperrors.Internalf(err, "error during authentication")
	}
	if session == nil {
		return nil, apperrors.NotFoundf("user session not found")
	}

	user, err := s.resolveUser(ctx, subject)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.codec.Issue(subject, s.accessTTL)
	if err != nil {
		return nil, apperrors.Internalf(err, "error during authentication")
	}

	log.Debug().Int64("user_id", subject).Msg("access token refreshed")
	return &Principal{
		User:          user,
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		AccessRotated: true,
	}, nil
}

// recoverSession is the last resort for an entirely expired token pair: if a
// session row still exists for the subject embedded in the refresh token, the
// client gets a freshly rotated pair; otherwise the session is over.
func (s *Service) recoverSession(ctx context.Context, refreshToken string) (*Principal, error) {
	subject, err := s.codec.DecodeUnverified(refreshToken)
	if err != nil {
		return nil, apperrors.Internalf(err, "error during refresh token verification")
	}

	session, err := s.stores.Sessions.GetByUserID(ctx, subject)
	if err != nil {
		return nil, apperrors.Internalf(err, "error during refresh token verification")
	}
	if session == nil {
		return nil, apperrors.Unauthorizedf("session ended")
	}

	user, err := s.resolveUser(ctx, subject)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.codec.Issue(subject, s.accessTTL)
	if err != nil {
		return nil, apperrors.Internalf(err, "error during refresh token verification")
	}
	newRefreshToken, err := s.codec.Issue(subject, s.refreshTTL)
	if err != nil {
		return nil, apperrors.Internalf(err, "error during refresh token verification")
	}

	if err := s.stores.Sessions.Update(ctx, session.ID, newRefreshToken, s.nowFunc().Add(s.refreshTTL)); err != nil {
		return nil, apperrors.Internalf(err, "error during refresh token verification")
	}

	log.Debug().Int64("user_id", subject).Msg("token pair rotated for dormant session")
	return &Principal{
		User:           user,
		AccessToken:    accessToken,
		RefreshToken:   newRefreshToken,
		AccessRotated:  true,
		RefreshRotated: true,
	}, nil
}

func (s *Service) resolveUser(ctx context.Context, id int64) (*users.User, error) {
	user, err := s.stores.Users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internalf(err, "error during authentication")
	}
	if user == nil {
		return nil, apperrors.Unauthorizedf("user not found")
	}
	return user, nil
}

func extractBearer(authHeader string) (string, bool) {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", false
	}
	raw := strings.TrimPrefix(authHeader, bearerPrefix)
	if raw == "" {
		return "", false
	}
	return raw, true
}
