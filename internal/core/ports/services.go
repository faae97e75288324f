package ports

import (
	"context"
	"encoding/json"
	"time"

	"pagfx-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Service Ports (Business Logic) ---

// FeeService computes tiered percentage+fixed fee quotes. Pure: no state,
// no I/O.
type FeeService interface {
	Quote(req FeeRequest) (*domain.FeeQuote, error)
}

// FeeRequest holds raw caller input for a fee quote. PaymentMethod is
// matched case-insensitively.
type FeeRequest struct {
	CompanyID     string
	Amount        decimal.Decimal
	PaymentMethod string
	Installments  int
}

// TransactionService creates transactions and exposes lookups. Status is
// only ever changed through the WebhookService.
type TransactionService interface {
	Create(ctx context.Context, req CreateTransactionRequest) (*domain.Transaction, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
}

// CreateTransactionRequest holds raw caller input for transaction
// creation. Pointer blocks distinguish "absent" from "empty" so the
// validation pass can name the missing block.
type CreateTransactionRequest struct {
	Customer    *domain.Customer
	Product     *domain.Product
	Shipping    *domain.Address
	Payment     *PaymentInput
	Environment domain.Environment
}

// PaymentInput is the untyped payment block before it is narrowed into
// the domain.Payment union.
type PaymentInput struct {
	Method       string
	Installments int
	Card         *domain.CardDetails
	CardHash     string
}

// WebhookService applies inbound provider events to the store.
type WebhookService interface {
	Process(ctx context.Context, event InboundEvent) error
}

// InboundEvent is a provider webhook delivery before resolution.
type InboundEvent struct {
	ID            string
	Type          string
	TransactionID string
	Data          json.RawMessage
}

// AcquirerGateway is the provider boundary that issues Pix charges and
// card authorizations. Failures surface as UpstreamError.
type AcquirerGateway interface {
	CreatePixCharge(ctx context.Context, transactionID uuid.UUID, amount decimal.Decimal) (*domain.PixData, error)
	AuthorizeCard(ctx context.Context, transactionID uuid.UUID, amount decimal.Decimal, card *domain.CardDetails, cardHash string) (*domain.CardData, error)
}

// CredentialService resolves environment-scoped provider credentials.
type CredentialService interface {
	Get(env domain.Environment) (*domain.Credentials, error)
	All() []domain.Credentials
}

// TokenService handles JWT token operations for the admin surface.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
}
