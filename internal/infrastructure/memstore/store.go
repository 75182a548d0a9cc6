package memstore

import (
	"context"
	"sync"

	"github.com/cardstream/payment-gateway/internal/domain/payment"
	"github.com/cardstream/payment-gateway/internal/domain/repository"
)

// Store is an in-memory PaymentRepository. Each instance owns its own map,
// so tests can run isolated stores in parallel.
type Store struct {
	mu       sync.RWMutex
	payments map[string]*payment.Payment
}

func New() *Store {
	return &Store{
		payments: make(map[string]*payment.Payment),
	}
}

func (s *Store) Save(_ context.Context, p *payment.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[p.ID()] = p
	return nil
}

func (s *Store) Find(_ context.Context, id string) (*payment.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (s *Store) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.payments[id]
	return ok, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.payments, id)
	return nil
}

func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.payments), nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = make(map[string]*payment.Payment)
	return nil
}
