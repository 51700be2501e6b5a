package repofakes

import (
	"context"
	"sync"
	"time"

	"github.com/tareahub/go-tarea-server/sessions"
)

var _ sessions.RevocationList = (*FakeRevocationList)(nil)

type FakeRevocationList struct {
	revoked map[string]time.Time
	lock    sync.RWMutex
}

func NewFakeRevocationList() *FakeRevocationList {
	return &FakeRevocationList{revoked: make(map[string]time.Time)}
}

func (l *FakeRevocationList) Insert(_ context.Context, token string, expiresAt time.Time) error {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.revoked[token] = expiresAt
	return nil
}

func (l *FakeRevocationList) Contains(_ context.Context, token string) (bool, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()
	_, ok := l.revoked[token]
	return ok, nil
}

func (l *FakeRevocationList) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	var removed int64
	for token, expiresAt := range l.revoked {
		if expiresAt.Before(cutoff) {
			delete(l.revoked, token)
			removed++
		}
	}
	return removed, nil
}
