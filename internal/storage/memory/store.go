package memory

import (
	"context"
	"slices"
	"sync"

	"example.com/userapi/internal/domain"
	"example.com/userapi/internal/storage"
)

// Store keeps users in a map keyed by id. ids stays sorted ascending, which is
// also insertion order since every new id is larger than all present ones.
type Store struct {
	mu    sync.RWMutex
	users map[int64]domain.User
	ids   []int64
}

func New(seed ...domain.User) *Store {
	s := &Store{
		users: make(map[int64]domain.User, len(seed)+16),
		ids:   make([]int64, 0, len(seed)+16),
	}
	for _, u := range seed {
		if _, ok := s.users[u.ID]; !ok {
			s.ids = append(s.ids, u.ID)
		}
		s.users[u.ID] = u
	}
	slices.Sort(s.ids)
	return s
}

func (s *Store) ListUsers(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.users[id])
	}
	return out, nil
}

func (s *Store) CreateUser(_ context.Context, in domain.NewUser) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := int64(1)
	if n := len(s.ids); n > 0 {
		id = s.ids[n-1] + 1
	}
	u := in.WithID(id)
	s.users[id] = u
	s.ids = append(s.ids, id)
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id int64) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) DeleteUser(_ context.Context, id int64) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, storage.ErrNotFound
	}
	if i, found := slices.BinarySearch(s.ids, id); found {
		s.ids = slices.Delete(s.ids, i, i+1)
	}
	delete(s.users, id)
	return u, nil
}

// Len reports how many records are held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
