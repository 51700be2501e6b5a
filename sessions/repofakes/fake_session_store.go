// Package repofakes provides in-memory sessions stores for tests.
package repofakes

import (
	"context"
	"sync"
	"time"

	"github.com/tareahub/go-tarea-server/sessions"
)

var (
	_ sessions.Store          = (*FakeSessionStore)(nil)
	_ sessions.TerminateStore = (*FakeSessionStore)(nil)
)

// FakeSessionStore keeps sessions keyed by user ID, mirroring the uniqueness
// constraint of the relational store. It couples to a FakeRevocationList so
// Terminate behaves atomically the way the Postgres transaction does.
type FakeSessionStore struct {
	byUser  map[int64]*sessions.Session
	nextID  int64
	revoked *FakeRevocationList
	lock    sync.RWMutex
}

func NewFakeSessionStore(revoked *FakeRevocationList) *FakeSessionStore {
	return &FakeSessionStore{
		byUser:  make(map[int64]*sessions.Session),
		nextID:  1,
		revoked: revoked,
	}
}

func (s *FakeSessionStore) Upsert(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if existing, ok := s.byUser[userID]; ok {
		existing.Token = token
		existing.ExpiresAt = expiresAt
		return nil
	}
	s.byUser[userID] = &sessions.Session{
		ID:        s.nextID,
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	s.nextID++
	return nil
}

func (s *FakeSessionStore) DeleteByUser(_ context.Context, userID int64) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.byUser, userID)
	return nil
}

func (s *FakeSessionStore) GetByUserID(_ context.Context, userID int64) (*sessions.Session, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	session, ok := s.byUser[userID]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (s *FakeSessionStore) Update(_ context.Context, sessionID int64, token string, expiresAt time.Time) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, session := range s.byUser {
		if session.ID == sessionID {
			session.Token = token
			session.ExpiresAt = expiresAt
			return nil
		}
	}
	return nil
}

func (s *FakeSessionStore) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	var removed int64
	for userID, session := range s.byUser {
		if session.Expired(cutoff) {
			delete(s.byUser, userID)
			removed++
		}
	}
	return removed, nil
}

func (s *FakeSessionStore) Terminate(ctx context.Context, accessToken string, accessExpiresAt time.Time, userID int64) error {
	if err := s.revoked.Insert(ctx, accessToken, accessExpiresAt); err != nil {
		return err
	}
	return s.DeleteByUser(ctx, userID)
}

// Count reports the number of live sessions (test helper).
func (s *FakeSessionStore) Count() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.byUser)
}
