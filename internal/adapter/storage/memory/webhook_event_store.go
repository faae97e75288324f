package memory

import (
	"context"
	"sync"

	"pagfx-engine/internal/core/domain"

	"github.com/google/uuid"
)

// WebhookEventStore implements ports.WebhookEventRepository in process.
// Append-only; events are grouped by transaction for audit lookups.
type WebhookEventStore struct {
	mu     sync.RWMutex
	events map[uuid.UUID][]domain.WebhookEvent
}

// NewWebhookEventStore creates an empty audit log.
func NewWebhookEventStore() *WebhookEventStore {
	return &WebhookEventStore{events: make(map[uuid.UUID][]domain.WebhookEvent)}
}

// Append records an inbound event.
func (s *WebhookEventStore) Append(_ context.Context, event *domain.WebhookEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.TransactionID] = append(s.events[event.TransactionID], *event)
	return nil
}

// ListByTransaction returns the audit trail for one transaction in
// arrival order.
func (s *WebhookEventStore) ListByTransaction(_ context.Context, transactionID uuid.UUID) ([]domain.WebhookEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.events[transactionID]
	out := make([]domain.WebhookEvent, len(stored))
	copy(out, stored)
	return out, nil
}
