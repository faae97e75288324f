package service

import (
	"strings"

	"pagfx-engine/internal/core/domain"
	"pagfx-engine/internal/core/ports"
	"pagfx-engine/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// Credit card MDR: flat for à vista, installment-tiered otherwise.
	creditBaseRate    = decimal.RequireFromString("2.99")
	creditTierBase    = decimal.RequireFromString("3.99")
	creditTierPerInst = decimal.RequireFromString("0.2")
	creditFixedFee    = decimal.RequireFromString("0.50")

	debitRate     = decimal.RequireFromString("1.99")
	debitFixedFee = decimal.RequireFromString("0.30")

	pixRate     = decimal.RequireFromString("0.99")
	pixFixedFee = decimal.RequireFromString("0.10")

	boletoRate     = decimal.RequireFromString("1.5")
	boletoFixedFee = decimal.RequireFromString("2.00")

	defaultRate     = decimal.RequireFromString("2.5")
	defaultFixedFee = decimal.RequireFromString("1.00")
)

// FeeServiceImpl implements ports.FeeService. Pure arithmetic over
// decimals; no state, no I/O.
type FeeServiceImpl struct {
	log zerolog.Logger
}

// NewFeeService creates a new FeeServiceImpl.
func NewFeeService(log zerolog.Logger) *FeeServiceImpl {
	return &FeeServiceImpl{log: log}
}

// Quote computes the fee schedule for one charge. Installments are not
// capped: the credit tier grows linearly and every other method ignores
// the count, so any positive value is accepted.
func (s *FeeServiceImpl) Quote(req ports.FeeRequest) (*domain.FeeQuote, error) {
	if strings.TrimSpace(req.CompanyID) == "" {
		return nil, apperror.Validation("companyId é obrigatório")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.Validation("Valor deve ser maior que zero")
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return nil, apperror.Validation("Método de pagamento é obrigatório")
	}
	if req.Installments <= 0 {
		return nil, apperror.Validation("Número de parcelas deve ser maior que zero")
	}

	method := domain.NormalizeMethod(req.PaymentMethod)
	rate, fixed := rateFor(method, req.Installments)

	percentageAmount := req.Amount.Mul(rate).Div(hundred).Round(2)
	totalAmount := req.Amount.Add(percentageAmount).Add(fixed)
	netAmount := req.Amount.Sub(percentageAmount).Sub(fixed)
	if netAmount.IsNegative() {
		netAmount = decimal.Zero
	}

	s.log.Debug().
		Str("company_id", req.CompanyID).
		Str("method", string(method)).
		Int("installments", req.Installments).
		Str("rate", rate.String()).
		Msg("fee quote computed")

	return &domain.FeeQuote{
		CompanyID:        req.CompanyID,
		OriginalAmount:   req.Amount,
		PaymentMethod:    method,
		Installments:     req.Installments,
		PercentageRate:   rate,
		FixedFee:         fixed,
		PercentageAmount: percentageAmount,
		TotalAmount:      totalAmount,
		NetAmount:        netAmount,
	}, nil
}

// rateFor selects the (percentage, fixed) tier. Unknown methods fall
// back to the default tier rather than erroring.
func rateFor(method domain.PaymentMethod, installments int) (decimal.Decimal, decimal.Decimal) {
	switch method {
	case domain.MethodCreditCard:
		if installments == 1 {
			return creditBaseRate, creditFixedFee
		}
		rate := creditTierBase.Add(creditTierPerInst.Mul(decimal.NewFromInt(int64(installments))))
		return rate, creditFixedFee
	case domain.MethodDebitCard:
		return debitRate, debitFixedFee
	case domain.MethodPix:
		return pixRate, pixFixedFee
	case domain.MethodBoleto:
		return boletoRate, boletoFixedFee
	default:
		return defaultRate, defaultFixedFee
	}
}
