package memory

import (
	"context"
	"fmt"
	"sync"

	"pagfx-engine/internal/core/domain"

	"github.com/google/uuid"
)

// entry pairs a record with its own lock so concurrent webhooks for the
// same transaction cannot interleave a read-modify-write. The outer map
// lock is held only long enough to resolve the entry.
type entry struct {
	mu sync.Mutex
	tx *domain.Transaction
}

// TransactionStore implements ports.TransactionRepository in process.
// It is the sole owner of its records: every read hands out a deep copy.
type TransactionStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
}

// NewTransactionStore creates an empty store.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{entries: make(map[uuid.UUID]*entry)}
}

// Create inserts a new record. Duplicate ids are a caller bug.
func (s *TransactionStore) Create(_ context.Context, t *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[t.ID]; exists {
		return fmt.Errorf("transaction %s already exists", t.ID)
	}
	s.entries[t.ID] = &entry{tx: t.Clone()}
	return nil
}

// GetByID returns a copy of the record, or (nil, nil) when absent.
func (s *TransactionStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Transaction, error) {
	e := s.lookup(id)
	if e == nil {
		return nil, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tx.Clone(), nil
}

// Mutate runs fn under the record's lock and persists the result.
// The mutation runs to completion once started; fn errors leave the
// stored record untouched. Returns (nil, nil) when the id is unknown.
func (s *TransactionStore) Mutate(_ context.Context, id uuid.UUID, fn func(*domain.Transaction) error) (*domain.Transaction, error) {
	e := s.lookup(id)
	if e == nil {
		return nil, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	working := e.tx.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	e.tx = working
	return working.Clone(), nil
}

func (s *TransactionStore) lookup(id uuid.UUID) *entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[id]
}

// Len reports the number of stored records (test helper).
func (s *TransactionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
