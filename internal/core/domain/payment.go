package domain

import "strings"

// PaymentMethod identifies the payment rail. Matching is case-insensitive;
// use NormalizeMethod before comparing.
type PaymentMethod string

const (
	MethodPix        PaymentMethod = "pix"
	MethodCreditCard PaymentMethod = "credit_card"
	MethodDebitCard  PaymentMethod = "debit_card"
	MethodBoleto     PaymentMethod = "boleto"
)

// NormalizeMethod lowercases and trims a caller-supplied method string.
func NormalizeMethod(raw string) PaymentMethod {
	return PaymentMethod(strings.ToLower(strings.TrimSpace(raw)))
}

// Payment is the tagged union over payment instruments. The two variants
// are PixPayment and CardPayment; the unexported method seals the set so
// card-completeness checks happen in exactly one place.
type Payment interface {
	Method() PaymentMethod
	Installments() int
	clone() Payment
}

// PixPayment pays the full amount over the Pix rail. Installments above 1
// are carried for fee labeling only.
type PixPayment struct {
	InstallmentCount int `json:"installments"`
}

func (PixPayment) Method() PaymentMethod { return MethodPix }

func (p PixPayment) Installments() int {
	if p.InstallmentCount < 1 {
		return 1
	}
	return p.InstallmentCount
}

func (p PixPayment) clone() Payment { return p }

// CardDetails is the full card block. Required unless a hash is supplied.
type CardDetails struct {
	Number      string `json:"number"`
	HolderName  string `json:"holder_name"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	CVV         string `json:"cvv"`
}

// Complete reports whether every required card field is present.
func (c CardDetails) Complete() bool {
	return c.Number != "" && c.HolderName != "" &&
		c.ExpiryMonth != "" && c.ExpiryYear != "" && c.CVV != ""
}

// CardPayment pays by credit card, either with full card details or a
// pre-tokenized hash.
type CardPayment struct {
	InstallmentCount int          `json:"installments"`
	Card             *CardDetails `json:"card,omitempty"`
	CardHash         string       `json:"card_hash,omitempty"`
}

func (CardPayment) Method() PaymentMethod { return MethodCreditCard }

func (p CardPayment) Installments() int {
	if p.InstallmentCount < 1 {
		return 1
	}
	return p.InstallmentCount
}

func (p CardPayment) clone() Payment {
	cp := p
	if p.Card != nil {
		card := *p.Card
		cp.Card = &card
	}
	return cp
}
