// Package dto defines the wire types of the public API. Field names are
// camelCase to match the provider's conventions; amounts cross the wire
// as JSON numbers and are converted to decimals at this boundary.
package dto

import (
	"encoding/json"
	"time"

	"pagfx-engine/internal/core/domain"
	"pagfx-engine/internal/core/ports"

	"github.com/shopspring/decimal"
)

// CustomerRequest is the payer block.
type CustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	TaxID string `json:"taxId"`
	Phone string `json:"phone"`
}

// ProductRequest is the purchased item block.
type ProductRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// ShippingRequest is the optional delivery address block.
type ShippingRequest struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zipCode"`
}

// CardRequest is the full card block.
type CardRequest struct {
	Number      string `json:"number"`
	HolderName  string `json:"holderName"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CVV         string `json:"cvv"`
}

// PaymentRequest selects the payment instrument.
type PaymentRequest struct {
	Method       string       `json:"method"`
	Installments int          `json:"installments"`
	Card         *CardRequest `json:"card"`
	CardHash     string       `json:"cardHash"`
}

// CreateTransactionRequest is the body of POST /api/v1/transactions.
type CreateTransactionRequest struct {
	Customer    *CustomerRequest `json:"customer"`
	Product     *ProductRequest  `json:"product"`
	Shipping    *ShippingRequest `json:"shipping"`
	Payment     *PaymentRequest  `json:"payment"`
	Environment string           `json:"environment"`
}

// ToServiceRequest maps the wire request into the service input. Absent
// blocks stay nil so the service can name the missing block in its
// validation message.
func (r CreateTransactionRequest) ToServiceRequest() ports.CreateTransactionRequest {
	out := ports.CreateTransactionRequest{
		Environment: domain.Environment(r.Environment),
	}
	if r.Customer != nil {
		out.Customer = &domain.Customer{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			TaxID: r.Customer.TaxID,
			Phone: r.Customer.Phone,
		}
	}
	if r.Product != nil {
		out.Product = &domain.Product{
			Name:     r.Product.Name,
			Price:    decimal.NewFromFloat(r.Product.Price),
			Quantity: r.Product.Quantity,
		}
	}
	if r.Shipping != nil {
		out.Shipping = &domain.Address{
			Street:     r.Shipping.Street,
			Number:     r.Shipping.Number,
			Complement: r.Shipping.Complement,
			City:       r.Shipping.City,
			State:      r.Shipping.State,
			ZipCode:    r.Shipping.ZipCode,
		}
	}
	if r.Payment != nil {
		in := &ports.PaymentInput{
			Method:       r.Payment.Method,
			Installments: r.Payment.Installments,
			CardHash:     r.Payment.CardHash,
		}
		if r.Payment.Card != nil {
			in.Card = &domain.CardDetails{
				Number:      r.Payment.Card.Number,
				HolderName:  r.Payment.Card.HolderName,
				ExpiryMonth: r.Payment.Card.ExpiryMonth,
				ExpiryYear:  r.Payment.Card.ExpiryYear,
				CVV:         r.Payment.Card.CVV,
			}
		}
		out.Payment = in
	}
	return out
}

// WebhookData is the inner payload of a provider delivery.
type WebhookData struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}

// WebhookRequest is the body of POST /api/v1/webhookfx.
type WebhookRequest struct {
	ID    string          `json:"id"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ToInboundEvent parses the inner data block and builds the service
// event. The raw payload rides along for the audit log.
func (r WebhookRequest) ToInboundEvent() ports.InboundEvent {
	var data WebhookData
	// A malformed inner block leaves TransactionID empty; the service
	// rejects it with the right validation message.
	_ = json.Unmarshal(r.Data, &data)

	return ports.InboundEvent{
		ID:            r.ID,
		Type:          r.Event,
		TransactionID: data.TransactionID,
		Data:          r.Data,
	}
}

// FeeRequest is the body of POST /api/v1/taxas.
type FeeRequest struct {
	CompanyID     string  `json:"companyId"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	Installments  int     `json:"installments"`
}

// ToServiceRequest maps the wire request into the fee service input.
func (r FeeRequest) ToServiceRequest() ports.FeeRequest {
	return ports.FeeRequest{
		CompanyID:     r.CompanyID,
		Amount:        decimal.NewFromFloat(r.Amount),
		PaymentMethod: r.PaymentMethod,
		Installments:  r.Installments,
	}
}

// --- Responses ---

// PixDataResponse mirrors domain.PixData on the wire.
type PixDataResponse struct {
	QRCode      string    `json:"qrCode"`
	PaymentCode string    `json:"paymentCode"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// CardDataResponse mirrors domain.CardData on the wire. The card number
// itself never appears in any response.
type CardDataResponse struct {
	AuthorizationCode     string `json:"authorizationCode"`
	ProviderTransactionID string `json:"providerTransactionId"`
	LastFour              string `json:"lastFour"`
}

// TransactionResponse is the public shape of a transaction.
type TransactionResponse struct {
	ID            string            `json:"id"`
	Customer      CustomerRequest   `json:"customer"`
	Product       ProductRequest    `json:"product"`
	Shipping      *ShippingRequest  `json:"shipping,omitempty"`
	PaymentMethod string            `json:"paymentMethod"`
	Installments  int               `json:"installments"`
	Amount        float64           `json:"amount"`
	Status        string            `json:"status"`
	Environment   string            `json:"environment"`
	PixData       *PixDataResponse  `json:"pixData,omitempty"`
	CardData      *CardDataResponse `json:"cardData,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// FromTransaction maps a domain transaction to its wire shape.
func FromTransaction(t *domain.Transaction) TransactionResponse {
	amount, _ := t.Amount.Float64()
	price, _ := t.Product.Price.Float64()

	resp := TransactionResponse{
		ID: t.ID.String(),
		Customer: CustomerRequest{
			Name:  t.Customer.Name,
			Email: t.Customer.Email,
			TaxID: t.Customer.TaxID,
			Phone: t.Customer.Phone,
		},
		Product: ProductRequest{
			Name:     t.Product.Name,
			Price:    price,
			Quantity: t.Product.Quantity,
		},
		Amount:      amount,
		Status:      string(t.Status),
		Environment: string(t.Environment),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Payment != nil {
		resp.PaymentMethod = string(t.Payment.Method())
		resp.Installments = t.Payment.Installments()
	}
	if t.Shipping != nil {
		resp.Shipping = &ShippingRequest{
			Street:     t.Shipping.Street,
			Number:     t.Shipping.Number,
			Complement: t.Shipping.Complement,
			City:       t.Shipping.City,
			State:      t.Shipping.State,
			ZipCode:    t.Shipping.ZipCode,
		}
	}
	if t.PixData != nil {
		resp.PixData = &PixDataResponse{
			QRCode:      t.PixData.QRCode,
			PaymentCode: t.PixData.PaymentCode,
			ExpiresAt:   t.PixData.ExpiresAt,
		}
	}
	if t.CardData != nil {
		resp.CardData = &CardDataResponse{
			AuthorizationCode:     t.CardData.AuthorizationCode,
			ProviderTransactionID: t.CardData.ProviderTransactionID,
			LastFour:              t.CardData.LastFour,
		}
	}
	return resp
}

// FeeQuoteResponse is the public shape of a fee quote.
type FeeQuoteResponse struct {
	CompanyID        string  `json:"companyId"`
	OriginalAmount   float64 `json:"originalAmount"`
	PaymentMethod    string  `json:"paymentMethod"`
	Installments     int     `json:"installments"`
	PercentageRate   float64 `json:"percentageRate"`
	FixedFee         float64 `json:"fixedFee"`
	PercentageAmount float64 `json:"percentageAmount"`
	TotalAmount      float64 `json:"totalAmount"`
	NetAmount        float64 `json:"netAmount"`
}

// FromFeeQuote maps a domain quote to its wire shape.
func FromFeeQuote(q *domain.FeeQuote) FeeQuoteResponse {
	f := func(d decimal.Decimal) float64 {
		v, _ := d.Float64()
		return v
	}
	return FeeQuoteResponse{
		CompanyID:        q.CompanyID,
		OriginalAmount:   f(q.OriginalAmount),
		PaymentMethod:    string(q.PaymentMethod),
		Installments:     q.Installments,
		PercentageRate:   f(q.PercentageRate),
		FixedFee:         f(q.FixedFee),
		PercentageAmount: f(q.PercentageAmount),
		TotalAmount:      f(q.TotalAmount),
		NetAmount:        f(q.NetAmount),
	}
}

// CredentialResponse is one environment's credential pair.
type CredentialResponse struct {
	Environment string `json:"environment"`
	APIKey      string `json:"apiKey"`
	APISecret   string `json:"apiSecret"`
	MerchantID  string `json:"merchantId"`
}

// FromCredentials maps domain credentials to the wire shape.
func FromCredentials(all []domain.Credentials) []CredentialResponse {
	out := make([]CredentialResponse, 0, len(all))
	for _, c := range all {
		out = append(out, CredentialResponse{
			Environment: string(c.Environment),
			APIKey:      c.APIKey,
			APISecret:   c.APISecret,
			MerchantID:  c.MerchantID,
		})
	}
	return out
}

// WebhookResponse acknowledges a processed delivery.
type WebhookResponse struct {
	Received bool `json:"received"`
}
