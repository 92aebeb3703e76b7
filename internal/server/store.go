package server

import (
	"errors"
	"sort"
	"sync"

	"itemstore/internal/shared"
)

var (
	ErrNotFound      = errors.New("item not found")
	ErrAlreadyExists = errors.New(shared.MsgItemExists)
)

// Store is the contract every backend honors. Each call is atomic with
// respect to every other call on the same Store.
type Store interface {
	List() ([]shared.Item, error)
	Get(id string) (shared.Item, error)
	Create(item shared.Item) error
	// Update replaces the record at id and re-keys it to item.ID.
	Update(id string, item shared.Item) error
	Delete(id string) error
	Len() (int, error)
}

// MemStore keeps items in a map guarded by a single lock. Items are plain
// values, so everything handed out is a copy.
type MemStore struct {
	mu    sync.RWMutex
	items map[string]shared.Item
}

func NewMemStore() *MemStore {
	return &MemStore{
		items: map[string]shared.Item{},
	}
}

// List returns a snapshot sorted by id.
func (s *MemStore) List() ([]shared.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]shared.Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) Get(id string) (shared.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return shared.Item{}, ErrNotFound
	}
	return it, nil
}

func (s *MemStore) Create(item shared.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ID]; ok {
		return ErrAlreadyExists
	}
	s.items[item.ID] = item
	return nil
}

func (s *MemStore) Update(id string, item shared.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	if item.ID != id {
		// re-key must not clobber a different record
		if _, taken := s.items[item.ID]; taken {
			return ErrAlreadyExists
		}
		delete(s.items, id)
	}
	s.items[item.ID] = item
	return nil
}

func (s *MemStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *MemStore) Len() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}
