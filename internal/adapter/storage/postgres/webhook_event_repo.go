package postgres

import (
	"context"
	"fmt"

	"pagfx-engine/internal/core/domain"

	"github.com/google/uuid"
)

// WebhookEventRepo implements ports.WebhookEventRepository on PostgreSQL.
type WebhookEventRepo struct {
	pool Pool
}

// NewWebhookEventRepo creates a new WebhookEventRepo.
func NewWebhookEventRepo(pool Pool) *WebhookEventRepo {
	return &WebhookEventRepo{pool: pool}
}

// Append records an inbound provider event.
func (r *WebhookEventRepo) Append(ctx context.Context, event *domain.WebhookEvent) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO webhook_events (id, transaction_id, event, data, received_at, processed)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID, event.TransactionID, event.Event, []byte(event.Data),
		event.ReceivedAt, event.Processed,
	)
	if err != nil {
		return fmt.Errorf("insert webhook event: %w", err)
	}
	return nil
}

// ListByTransaction returns the audit trail for one transaction in
// arrival order.
func (r *WebhookEventRepo) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]domain.WebhookEvent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, transaction_id, event, data, received_at, processed
		 FROM webhook_events WHERE transaction_id = $1 ORDER BY received_at ASC`,
		transactionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list webhook events: %w", err)
	}
	defer rows.Close()

	var events []domain.WebhookEvent
	for rows.Next() {
		var e domain.WebhookEvent
		var data []byte
		if err := rows.Scan(&e.ID, &e.TransactionID, &e.Event, &data, &e.ReceivedAt, &e.Processed); err != nil {
			return nil, fmt.Errorf("scan webhook event: %w", err)
		}
		e.Data = data
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate webhook events: %w", err)
	}
	return events, nil
}
