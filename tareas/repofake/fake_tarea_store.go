// Package repofake provides an in-memory tareas.Store for tests.
package repofake

import (
	"context"
	"sort"
	"sync"

	"github.com/tareahub/go-tarea-server/tareas"
)

var _ tareas.Store = (*FakeTareaStore)(nil)

type FakeTareaStore struct {
	tareas map[int64]*tareas.Tarea
	nextID int64
	lock   sync.RWMutex
}

func NewFakeTareaStore() *FakeTareaStore {
	return &FakeTareaStore{
		tareas: make(map[int64]*tareas.Tarea),
		nextID: 1,
	}
}

func (s *FakeTareaStore) GetByID(_ context.Context, id int64) (*tareas.Tarea, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	tarea, ok := s.tareas[id]
	if !ok {
		return nil, nil
	}
	copied := *tarea
	return &copied, nil
}

func (s *FakeTareaStore) List(_ context.Context) ([]*tareas.Tarea, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	all := make([]*tareas.Tarea, 0, len(s.tareas))
	for _, tarea := range s.tareas {
		copied := *tarea
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (s *FakeTareaStore) ListByUser(_ context.Context, userID int64) ([]*tareas.Tarea, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	owned := make([]*tareas.Tarea, 0)
	for _, tarea := range s.tareas {
		if tarea.UserID == userID {
			copied := *tarea
			owned = append(owned, &copied)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })
	return owned, nil
}

func (s *FakeTareaStore) Create(_ context.Context, tarea *tareas.Tarea) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if tarea.ID == 0 {
		tarea.ID = s.nextID
		s.nextID++
	}
	copied := *tarea
	s.tareas[tarea.ID] = &copied
	return nil
}

func (s *FakeTareaStore) Update(_ context.Context, tarea *tareas.Tarea) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	copied := *tarea
	s.tareas[tarea.ID] = &copied
	return nil
}

func (s *FakeTareaStore) Delete(_ context.Context, id int64) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.tareas, id)
	return nil
}
