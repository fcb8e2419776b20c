package session

import (
	"context"
	"sync"
	"time"

	"github.com/comandero/pos-api/internal/domain/entity"
	domainRepo "github.com/comandero/pos-api/internal/domain/repository"
)

const sweepInterval = 5 * time.Minute

type memoryEntry struct {
	cart      *entity.Cart
	removals  []entity.CartEntry
	expiresAt time.Time
}

type memoryStore struct {
	mu  sync.RWMutex
	ttl time.Duration

	carts    map[string]*memoryEntry
	removals map[string]*memoryEntry
}

// NewMemoryStore creates an in-process cart store. Entries expire after ttl
// of inactivity; a zero ttl keeps them forever.
func NewMemoryStore(ttl time.Duration) domainRepo.CartStore {
	s := &memoryStore{
		ttl:      ttl,
		carts:    make(map[string]*memoryEntry),
		removals: make(map[string]*memoryEntry),
	}
	if ttl > 0 {
		go s.sweep()
	}
	return s
}

func (s *memoryStore) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for k, e := range s.carts {
			if now.After(e.expiresAt) {
				delete(s.carts, k)
			}
		}
		for k, e := range s.removals {
			if now.After(e.expiresAt) {
				delete(s.removals, k)
			}
		}
		s.mu.Unlock()
	}
}

func (s *memoryStore) deadline() time.Time {
	if s.ttl <= 0 {
		return time.Now().AddDate(100, 0, 0)
	}
	return time.Now().Add(s.ttl)
}

func (s *memoryStore) Get(_ context.Context, key string) (*entity.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.carts[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, nil
	}
	return e.cart, nil
}

func (s *memoryStore) Put(_ context.Context, key string, cart *entity.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[key] = &memoryEntry{cart: cart, expiresAt: s.deadline()}
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, key)
	return nil
}

func (s *memoryStore) GetRemovals(_ context.Context, key string) ([]entity.CartEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.removals[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, nil
	}
	return e.removals, nil
}

func (s *memoryStore) PutRemovals(_ context.Context, key string, entries []entity.CartEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removals[key] = &memoryEntry{removals: entries, expiresAt: s.deadline()}
	return nil
}

func (s *memoryStore) DeleteRemovals(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.removals, key)
	return nil
}
