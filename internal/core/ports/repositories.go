package ports

import (
	"context"
	"time"

	"pagfx-engine/internal/core/domain"

	"github.com/google/uuid"
)

// TransactionRepository owns transaction records keyed by id. All repos
// return (nil, nil) for a missing id; mapping to NotFoundError is the
// service layer's job.
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	// Mutate runs fn on the record inside the per-key critical section
	// and persists the result. Concurrent Mutate calls for the same id
	// never interleave; different ids proceed in parallel. Returns the
	// updated record.
	Mutate(ctx context.Context, id uuid.UUID, fn func(*domain.Transaction) error) (*domain.Transaction, error)
}

// WebhookEventRepository is the append-only audit log of inbound
// provider events.
type WebhookEventRepository interface {
	Append(ctx context.Context, event *domain.WebhookEvent) error
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]domain.WebhookEvent, error)
}

// EventDedupStore short-circuits exact redelivery of a provider event id.
// CheckAndSet atomically checks if the event id was seen, marking it if
// not. Returns true when the id is new. Forget removes the mark so a
// retry of a failed delivery is not short-circuited. Best effort:
// callers must treat errors as a miss, never as a rejection.
type EventDedupStore interface {
	CheckAndSet(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
	Forget(ctx context.Context, eventID string) error
}

// HealthChecker checks external dependency health.
type HealthChecker interface {
	// Ping verifies connectivity. Returns nil if healthy.
	Ping(ctx context.Context) error
	// Name returns the dependency name (e.g., "postgresql", "redis").
	Name() string
}
