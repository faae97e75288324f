package service

import (
	"io"
	"testing"

	"pagfx-engine/internal/core/domain"
	"pagfx-engine/internal/core/ports"
	"pagfx-engine/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func feeRequest(amount string, method string, installments int) ports.FeeRequest {
	return ports.FeeRequest{
		CompanyID:     "company-1",
		Amount:        decimal.RequireFromString(amount),
		PaymentMethod: method,
		Installments:  installments,
	}
}

func TestFeeService_Quote_CreditCardSingleInstallment(t *testing.T) {
	svc := NewFeeService(newTestLogger())

	quote, err := svc.Quote(feeRequest("100.00", "credit_card", 1))
	require.NoError(t, err)

	assert.Equal(t, "2.99", quote.PercentageRate.String())
	assert.Equal(t, "0.5", quote.FixedFee.String())
	assert.Equal(t, "2.99", quote.PercentageAmount.StringFixed(2))
	assert.Equal(t, "103.49", quote.TotalAmount.StringFixed(2))
	assert.Equal(t, "96.51", quote.NetAmount.StringFixed(2))
	assert.Equal(t, domain.MethodCreditCard, quote.PaymentMethod)
}

func TestFeeService_Quote_CreditCardInstallmentTier(t *testing.T) {
	svc := NewFeeService(newTestLogger())

	// 3 parcelas: 3.99 + 3*0.2 = 4.59%
	quote, err := svc.Quote(feeRequest("100.00", "credit_card", 3))
	require.NoError(t, err)

	assert.Equal(t, "4.59", quote.PercentageRate.StringFixed(2))
	assert.Equal(t, "4.59", quote.PercentageAmount.StringFixed(2))
	assert.Equal(t, "105.09", quote.TotalAmount.StringFixed(2))
	assert.Equal(t, "94.91", quote.NetAmount.StringFixed(2))
}

func TestFeeService_Quote_MethodTable(t *testing.T) {
	svc := NewFeeService(newTestLogger())

	cases := []struct {
		name      string
		method    string
		wantRate  string
		wantFixed string
	}{
		{"pix", "pix", "0.99", "0.1"},
		{"debit", "debit_card", "1.99", "0.3"},
		{"boleto", "boleto", "1.5", "2"},
		{"unknown falls back to default", "cripto", "2.5", "1"},
		{"case insensitive", "PIX", "0.99", "0.1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote, err := svc.Quote(feeRequest("200.00", tc.method, 1))
			require.NoError(t, err)
			assert.Equal(t, tc.wantRate, quote.PercentageRate.String())
			assert.Equal(t, tc.wantFixed, quote.FixedFee.String())
		})
	}
}

func TestFeeService_Quote_PixExample(t *testing.T) {
	svc := NewFeeService(newTestLogger())

	quote, err := svc.Quote(feeRequest("100.00", "pix", 1))
	require.NoError(t, err)

	assert.Equal(t, "0.99", quote.PercentageAmount.StringFixed(2))
	assert.Equal(t, "101.09", quote.TotalAmount.StringFixed(2))
	assert.Equal(t, "98.91", quote.NetAmount.StringFixed(2))
}

func TestFeeService_Quote_NetAmountFlooredAtZero(t *testing.T) {
	svc := NewFeeService(newTestLogger())

	// Fixed fee of 2.00 exceeds the 1.00 boleto amount.
	quote, err := svc.Quote(feeRequest("1.00", "boleto", 1))
	require.NoError(t, err)

	assert.True(t, quote.NetAmount.IsZero())
	assert.True(t, quote.TotalAmount.GreaterThan(quote.OriginalAmount))
}

func TestFeeService_Quote_ValidationErrors(t *testing.T) {
	svc := NewFeeService(newTestLogger())

	cases := []struct {
		name    string
		mutate  func(*ports.FeeRequest)
		wantMsg string
	}{
		{
			"missing company",
			func(r *ports.FeeRequest) { r.CompanyID = "  " },
			"companyId é obrigatório",
		},
		{
			"zero amount",
			func(r *ports.FeeRequest) { r.Amount = decimal.Zero },
			"Valor deve ser maior que zero",
		},
		{
			"negative amount",
			func(r *ports.FeeRequest) { r.Amount = decimal.NewFromInt(-5) },
			"Valor deve ser maior que zero",
		},
		{
			"missing method",
			func(r *ports.FeeRequest) { r.PaymentMethod = "" },
			"Método de pagamento é obrigatório",
		},
		{
			"zero installments",
			func(r *ports.FeeRequest) { r.Installments = 0 },
			"Número de parcelas deve ser maior que zero",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := feeRequest("100.00", "pix", 1)
			tc.mutate(&req)

			_, err := svc.Quote(req)
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindValidation))

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tc.wantMsg, appErr.Message)
		})
	}
}

func TestFeeService_Quote_HighInstallmentCountAccepted(t *testing.T) {
	svc := NewFeeService(newTestLogger())

	// No upper cap: 24 parcelas quotes 3.99 + 24*0.2 = 8.79%.
	quote, err := svc.Quote(feeRequest("1000.00", "credit_card", 24))
	require.NoError(t, err)
	assert.Equal(t, "8.79", quote.PercentageRate.StringFixed(2))
}
