// Package repofake provides an in-memory users.Store for tests.
package repofake

import (
	"context"
	"sort"
	"sync"

	"github.com/tareahub/go-tarea-server/users"
)

var _ users.Store = (*FakeUserStore)(nil)

type FakeUserStore struct {
	users    map[int64]*users.User
	emailIDs map[string]int64
	nextID   int64
	lock     sync.RWMutex
}

func NewFakeUserStore() *FakeUserStore {
	return &FakeUserStore{
		users:    make(map[int64]*users.User),
		emailIDs: make(map[string]int64),
		nextID:   1,
	}
}

func (s *FakeUserStore) GetByEmail(_ context.Context, correo string) (*users.User, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	id, ok := s.emailIDs[correo]
	if !ok {
		return nil, nil
	}
	copied := *s.users[id]
	return &copied, nil
}

func (s *FakeUserStore) GetByID(_ context.Context, id int64) (*users.User, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *FakeUserStore) List(_ context.Context) ([]*users.User, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	all := make([]*users.User, 0, len(s.users))
	for _, u := range s.users {
		copied := *u
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (s *FakeUserStore) Create(_ context.Context, user *users.User) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if user.ID == 0 {
		user.ID = s.nextID
		s.nextID++
	}
	copied := *user
	s.users[user.ID] = &copied
	s.emailIDs[user.Correo] = user.ID
	return nil
}

func (s *FakeUserStore) Update(_ context.Context, user *users.User) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	copied := *user
	s.users[user.ID] = &copied
	s.emailIDs[user.Correo] = user.ID
	return nil
}

func (s *FakeUserStore) Delete(_ context.Context, id int64) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if user, ok := s.users[id]; ok {
		delete(s.emailIDs, user.Correo)
		delete(s.users, id)
	}
	return nil
}
