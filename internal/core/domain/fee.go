package domain

import "github.com/shopspring/decimal"

// FeeQuote is the calculator's output. It is never persisted.
type FeeQuote struct {
	CompanyID        string          `json:"company_id"`
	OriginalAmount   decimal.Decimal `json:"original_amount"`
	PaymentMethod    PaymentMethod   `json:"payment_method"`
	Installments     int             `json:"installments"`
	PercentageRate   decimal.Decimal `json:"percentage_rate"`
	FixedFee         decimal.Decimal `json:"fixed_fee"`
	PercentageAmount decimal.Decimal `json:"percentage_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	NetAmount        decimal.Decimal `json:"net_amount"` // floored at zero
}
