package service

import (
	"context"
	"time"

	"pagfx-engine/internal/core/domain"
	"pagfx-engine/internal/core/ports"
	"pagfx-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// How long a delivered event id is remembered by the dedup fast path.
const eventDedupTTL = 24 * time.Hour

// WebhookServiceImpl implements ports.WebhookService. The sender
// delivers at least once and possibly out of order; the store's
// terminal-state no-op inside Mutate is what makes redelivery safe, the
// dedup store only spares the row lock on exact redelivery.
type WebhookServiceImpl struct {
	txRepo    ports.TransactionRepository
	eventRepo ports.WebhookEventRepository
	dedup     ports.EventDedupStore // nil = fast path disabled
	log       zerolog.Logger
}

// NewWebhookService creates a new WebhookServiceImpl.
func NewWebhookService(
	txRepo ports.TransactionRepository,
	eventRepo ports.WebhookEventRepository,
	dedup ports.EventDedupStore,
	log zerolog.Logger,
) *WebhookServiceImpl {
	return &WebhookServiceImpl{
		txRepo:    txRepo,
		eventRepo: eventRepo,
		dedup:     dedup,
		log:       log,
	}
}

// Process applies one inbound provider event. Unrecognized event types
// are accepted and logged without touching any state. Recognized events
// always append an audit record, even when the transition was a no-op on
// an already-settled transaction.
func (s *WebhookServiceImpl) Process(ctx context.Context, event ports.InboundEvent) error {
	if event.Type == "" {
		return apperror.Validation("Tipo do evento é obrigatório")
	}
	if event.TransactionID == "" {
		return apperror.Validation("transactionId é obrigatório")
	}

	status, recognized := domain.StatusForEvent(event.Type)
	if !recognized {
		s.log.Info().
			Str("event", event.Type).
			Str("transaction_id", event.TransactionID).
			Msg("evento não reconhecido, ignorado")
		return nil
	}

	txID, err := uuid.Parse(event.TransactionID)
	if err != nil {
		return apperror.NotFound("Transação")
	}

	now := time.Now().UTC()

	duplicate := false
	if s.dedup != nil && event.ID != "" {
		fresh, err := s.dedup.CheckAndSet(ctx, event.ID, eventDedupTTL)
		if err != nil {
			s.log.Warn().Err(err).Str("event_id", event.ID).
				Msg("dedup store indisponível, seguindo para o store")
		} else if !fresh {
			duplicate = true
		}
	}

	if !duplicate {
		var changed bool
		updated, err := s.txRepo.Mutate(ctx, txID, func(t *domain.Transaction) error {
			changed = t.ApplyStatus(status, now)
			return nil
		})
		if err != nil {
			// The mark must not outlive a failed delivery: the sender
			// retries the same event id and the retry has to reach the
			// store.
			s.forgetEvent(ctx, event.ID)
			return apperror.Upstream("Falha ao atualizar transação", err)
		}
		if updated == nil {
			s.forgetEvent(ctx, event.ID)
			return apperror.NotFound("Transação")
		}

		s.log.Info().
			Str("tx_id", txID.String()).
			Str("event", event.Type).
			Str("status", string(updated.Status)).
			Bool("changed", changed).
			Msg("webhook aplicado")
	} else {
		s.log.Debug().
			Str("event_id", event.ID).
			Str("tx_id", txID.String()).
			Msg("evento já entregue, transição ignorada")
	}

	record := &domain.WebhookEvent{
		ID:            event.ID,
		TransactionID: txID,
		Event:         event.Type,
		Data:          event.Data,
		ReceivedAt:    now,
		Processed:     true,
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if err := s.eventRepo.Append(ctx, record); err != nil {
		return apperror.Upstream("Falha ao registrar evento", err)
	}

	return nil
}

// forgetEvent drops the dedup mark for an event whose delivery failed.
func (s *WebhookServiceImpl) forgetEvent(ctx context.Context, eventID string) {
	if s.dedup == nil || eventID == "" {
		return
	}
	if err := s.dedup.Forget(ctx, eventID); err != nil {
		s.log.Warn().Err(err).Str("event_id", eventID).
			Msg("falha ao liberar marca de dedup")
	}
}
