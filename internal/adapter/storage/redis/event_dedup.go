package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// EventDedupStore implements ports.EventDedupStore using Redis SET NX.
// The webhook sender delivers at least once; this store lets the
// processor skip exact redelivery of an event id without touching the
// transaction store.
type EventDedupStore struct {
	client *goredis.Client
	prefix string
}

// NewEventDedupStore creates a new Redis-backed event dedup store.
func NewEventDedupStore(client *goredis.Client) *EventDedupStore {
	return &EventDedupStore{
		client: client,
		prefix: "webhook_event:",
	}
}

// CheckAndSet atomically checks if an event id was seen, marking it if not.
// Returns true if the id is new.
func (s *EventDedupStore) CheckAndSet(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	key := s.prefix + eventID
	result, err := s.client.SetArgs(ctx, key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists — event was already delivered
			return false, nil
		}
		return false, fmt.Errorf("redis event dedup check: %w", err)
	}
	return result == "OK", nil
}

// Forget removes the mark for an event id. The processor calls it when a
// delivery failed after the mark, so the sender's retry reaches the
// store instead of the fast path.
func (s *EventDedupStore) Forget(ctx context.Context, eventID string) error {
	if err := s.client.Del(ctx, s.prefix+eventID).Err(); err != nil {
		return fmt.Errorf("redis event dedup forget: %w", err)
	}
	return nil
}
