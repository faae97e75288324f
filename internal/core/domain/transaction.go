package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus represents the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusApproved TransactionStatus = "approved"
	TransactionStatusDeclined TransactionStatus = "declined"
	TransactionStatusRefunded TransactionStatus = "refunded"
	TransactionStatusCanceled TransactionStatus = "canceled"
)

// IsTerminal returns true for the four settled states. Pending is the
// only state with outbound transitions.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case TransactionStatusApproved, TransactionStatusDeclined,
		TransactionStatusRefunded, TransactionStatusCanceled:
		return true
	}
	return false
}

// Environment labels where a transaction was created. It never affects
// business rules, only routing and credentials.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Customer identifies the payer. Phone is the only optional field.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	TaxID string `json:"tax_id"`
	Phone string `json:"phone,omitempty"`
}

// Product is the purchased item.
type Product struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Address is the optional shipping block.
type Address struct {
	Street     string `json:"street,omitempty"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	ZipCode    string `json:"zip_code,omitempty"`
}

// PixData carries the charge payload for a Pix transaction.
type PixData struct {
	QRCode      string    `json:"qr_code"`
	PaymentCode string    `json:"payment_code"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// CardData carries the provider's authorization result for a card transaction.
type CardData struct {
	AuthorizationCode     string `json:"authorization_code"`
	ProviderTransactionID string `json:"provider_transaction_id"`
	LastFour              string `json:"last_four"`
}

// Transaction is the engine's central record. Amount and Status are never
// mutated by callers directly; all writes go through the store's accessor.
type Transaction struct {
	ID          uuid.UUID         `json:"id"`
	Customer    Customer          `json:"customer"`
	Product     Product           `json:"product"`
	Shipping    *Address          `json:"shipping,omitempty"`
	Payment     Payment           `json:"-"`
	Amount      decimal.Decimal   `json:"amount"` // product.price × product.quantity
	Status      TransactionStatus `json:"status"`
	Environment Environment       `json:"environment"`
	PixData     *PixData          `json:"pix_data,omitempty"`
	CardData    *CardData         `json:"card_data,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ApplyStatus moves the transaction to next if it is still pending and
// refreshes UpdatedAt. Returns false without touching the record when the
// transaction already settled — duplicate and out-of-order webhook
// deliveries land here and must not overwrite a terminal status.
func (t *Transaction) ApplyStatus(next TransactionStatus, at time.Time) bool {
	if t.Status != TransactionStatusPending || !next.IsTerminal() {
		return false
	}
	t.Status = next
	t.UpdatedAt = at
	return true
}

// Clone returns a deep copy so the store remains the sole owner of the
// canonical record.
func (t *Transaction) Clone() *Transaction {
	cp := *t
	if t.Shipping != nil {
		s := *t.Shipping
		cp.Shipping = &s
	}
	if t.PixData != nil {
		p := *t.PixData
		cp.PixData = &p
	}
	if t.CardData != nil {
		c := *t.CardData
		cp.CardData = &c
	}
	if t.Payment != nil {
		cp.Payment = t.Payment.clone()
	}
	return &cp
}
