package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pagfx-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository on PostgreSQL.
// The per-key critical section of Mutate is a row lock: SELECT FOR
// UPDATE serializes concurrent webhooks for the same transaction while
// different rows proceed in parallel.
//
// Card details are never persisted; only the method, installment count
// and hash survive, which is enough to reconstruct the payment union.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

const txColumns = `id, customer_name, customer_email, customer_tax_id, customer_phone,
		product_name, product_price, product_quantity, shipping,
		payment_method, installments, card_hash,
		amount, status, environment,
		pix_qr_code, pix_payment_code, pix_expires_at,
		card_auth_code, card_provider_tx_id, card_last_four,
		created_at, updated_at`

// Create inserts a new transaction.
func (r *TransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (` + txColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`

	shipping, err := marshalShipping(t.Shipping)
	if err != nil {
		return err
	}

	var cardHash string
	if card, ok := t.Payment.(domain.CardPayment); ok {
		cardHash = card.CardHash
	}

	var pixQR, pixCode *string
	var pixExpires *time.Time
	if t.PixData != nil {
		pixQR, pixCode, pixExpires = &t.PixData.QRCode, &t.PixData.PaymentCode, &t.PixData.ExpiresAt
	}
	var cardAuth, cardProviderTx, cardLast4 *string
	if t.CardData != nil {
		cardAuth, cardProviderTx, cardLast4 = &t.CardData.AuthorizationCode, &t.CardData.ProviderTransactionID, &t.CardData.LastFour
	}

	_, err = r.pool.Exec(ctx, query,
		t.ID, t.Customer.Name, t.Customer.Email, t.Customer.TaxID, t.Customer.Phone,
		t.Product.Name, t.Product.Price, t.Product.Quantity, shipping,
		string(t.Payment.Method()), t.Payment.Installments(), cardHash,
		t.Amount, string(t.Status), string(t.Environment),
		pixQR, pixCode, pixExpires,
		cardAuth, cardProviderTx, cardLast4,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by UUID. Returns (nil, nil) when absent.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE id = $1`
	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// Mutate loads the row under FOR UPDATE, applies fn and writes back the
// mutable fields. Returns (nil, nil) when the id is unknown.
func (r *TransactionRepo) Mutate(ctx context.Context, id uuid.UUID, fn func(*domain.Transaction) error) (*domain.Transaction, error) {
	dbTx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	query := `SELECT ` + txColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`
	t, err := scanTransaction(dbTx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}

	if err := fn(t); err != nil {
		return nil, err
	}

	_, err = dbTx.Exec(ctx,
		`UPDATE transactions SET status = $1, updated_at = $2 WHERE id = $3`,
		string(t.Status), t.UpdatedAt, t.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return t, nil
}

// scanTransaction scans a single row into a Transaction.
func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	var shipping []byte
	var method string
	var installments int
	var cardHash string
	var status, environment string
	var pixQR, pixCode *string
	var pixExpires *time.Time
	var cardAuth, cardProviderTx, cardLast4 *string

	err := row.Scan(
		&t.ID, &t.Customer.Name, &t.Customer.Email, &t.Customer.TaxID, &t.Customer.Phone,
		&t.Product.Name, &t.Product.Price, &t.Product.Quantity, &shipping,
		&method, &installments, &cardHash,
		&t.Amount, &status, &environment,
		&pixQR, &pixCode, &pixExpires,
		&cardAuth, &cardProviderTx, &cardLast4,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}

	t.Status = domain.TransactionStatus(status)
	t.Environment = domain.Environment(environment)

	if len(shipping) > 0 {
		addr := &domain.Address{}
		if err := json.Unmarshal(shipping, addr); err != nil {
			return nil, fmt.Errorf("unmarshal shipping: %w", err)
		}
		t.Shipping = addr
	}

	switch domain.PaymentMethod(method) {
	case domain.MethodPix:
		t.Payment = domain.PixPayment{InstallmentCount: installments}
	default:
		t.Payment = domain.CardPayment{InstallmentCount: installments, CardHash: cardHash}
	}

	if pixQR != nil && pixCode != nil && pixExpires != nil {
		t.PixData = &domain.PixData{QRCode: *pixQR, PaymentCode: *pixCode, ExpiresAt: *pixExpires}
	}
	if cardAuth != nil && cardProviderTx != nil && cardLast4 != nil {
		t.CardData = &domain.CardData{
			AuthorizationCode:     *cardAuth,
			ProviderTransactionID: *cardProviderTx,
			LastFour:              *cardLast4,
		}
	}

	return t, nil
}

func marshalShipping(addr *domain.Address) ([]byte, error) {
	if addr == nil {
		return nil, nil
	}
	b, err := json.Marshal(addr)
	if err != nil {
		return nil, fmt.Errorf("marshal shipping: %w", err)
	}
	return b, nil
}
