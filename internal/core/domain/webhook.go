package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Provider event types that settle a transaction.
const (
	EventTransactionApproved = "transaction.approved"
	EventTransactionDeclined = "transaction.declined"
	EventTransactionRefunded = "transaction.refunded"
	EventTransactionCanceled = "transaction.canceled"
)

var eventStatus = map[string]TransactionStatus{
	EventTransactionApproved: TransactionStatusApproved,
	EventTransactionDeclined: TransactionStatusDeclined,
	EventTransactionRefunded: TransactionStatusRefunded,
	EventTransactionCanceled: TransactionStatusCanceled,
}

// StatusForEvent maps a provider event type to the target terminal status.
// ok is false for unrecognized event types, which are accepted but ignored.
func StatusForEvent(event string) (TransactionStatus, bool) {
	s, ok := eventStatus[event]
	return s, ok
}

// WebhookEvent is the audit record appended for every recognized delivery,
// including deliveries that were no-ops on an already-settled transaction.
type WebhookEvent struct {
	ID            string          `json:"id"`
	TransactionID uuid.UUID       `json:"transaction_id"`
	Event         string          `json:"event"`
	Data          json.RawMessage `json:"data,omitempty"`
	ReceivedAt    time.Time       `json:"received_at"`
	Processed     bool            `json:"processed"`
}
