package service

import (
	"context"
	"strings"
	"time"

	"pagfx-engine/internal/core/domain"
	"pagfx-engine/internal/core/ports"
	"pagfx-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TransactionServiceImpl implements ports.TransactionService.
type TransactionServiceImpl struct {
	repo     ports.TransactionRepository
	acquirer ports.AcquirerGateway
	log      zerolog.Logger
}

// NewTransactionService creates a new TransactionServiceImpl.
func NewTransactionService(
	repo ports.TransactionRepository,
	acquirer ports.AcquirerGateway,
	log zerolog.Logger,
) *TransactionServiceImpl {
	return &TransactionServiceImpl{repo: repo, acquirer: acquirer, log: log}
}

// Create validates the input, derives the amount, acquires the charge
// data from the provider and stores the pending record.
func (s *TransactionServiceImpl) Create(ctx context.Context, req ports.CreateTransactionRequest) (*domain.Transaction, error) {
	payment, err := buildPayment(req)
	if err != nil {
		return nil, err
	}

	env := req.Environment
	if env == "" {
		env = domain.EnvironmentDevelopment
	}

	now := time.Now().UTC()
	amount := req.Product.Price.Mul(decimal.NewFromInt(int64(req.Product.Quantity)))

	txn := &domain.Transaction{
		ID:          uuid.New(),
		Customer:    *req.Customer,
		Product:     *req.Product,
		Shipping:    req.Shipping,
		Payment:     payment,
		Amount:      amount,
		Status:      domain.TransactionStatusPending,
		Environment: env,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	switch p := payment.(type) {
	case domain.PixPayment:
		pixData, err := s.acquirer.CreatePixCharge(ctx, txn.ID, amount)
		if err != nil {
			return nil, apperror.Upstream("Falha ao criar cobrança Pix", err)
		}
		txn.PixData = pixData
	case domain.CardPayment:
		cardData, err := s.acquirer.AuthorizeCard(ctx, txn.ID, amount, p.Card, p.CardHash)
		if err != nil {
			return nil, apperror.Upstream("Falha ao autorizar cartão", err)
		}
		txn.CardData = cardData
	}

	if err := s.repo.Create(ctx, txn); err != nil {
		return nil, apperror.Upstream("Falha ao gravar transação", err)
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("method", string(payment.Method())).
		Str("amount", amount.StringFixed(2)).
		Str("environment", string(env)).
		Msg("transação criada")

	return txn, nil
}

// Get fetches a transaction by id.
func (s *TransactionServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	txn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Upstream("Falha ao consultar transação", err)
	}
	if txn == nil {
		return nil, apperror.NotFound("Transação")
	}
	return txn, nil
}

// buildPayment runs the single validation pass over the raw input and
// narrows the payment block into the domain union.
func buildPayment(req ports.CreateTransactionRequest) (domain.Payment, error) {
	if req.Customer == nil {
		return nil, apperror.Validation("Dados do cliente são obrigatórios")
	}
	if req.Customer.Name == "" || req.Customer.Email == "" || req.Customer.TaxID == "" {
		return nil, apperror.Validation("Nome, e-mail e CPF/CNPJ do cliente são obrigatórios")
	}
	if req.Product == nil {
		return nil, apperror.Validation("Dados do produto são obrigatórios")
	}
	if req.Product.Name == "" {
		return nil, apperror.Validation("Nome do produto é obrigatório")
	}
	if req.Product.Price.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.Validation("Preço do produto deve ser maior que zero")
	}
	if req.Product.Quantity <= 0 {
		return nil, apperror.Validation("Quantidade do produto deve ser maior que zero")
	}
	if req.Payment == nil {
		return nil, apperror.Validation("Dados de pagamento são obrigatórios")
	}
	if strings.TrimSpace(req.Payment.Method) == "" {
		return nil, apperror.Validation("Método de pagamento é obrigatório")
	}

	installments := req.Payment.Installments
	if installments < 1 {
		installments = 1
	}

	switch domain.NormalizeMethod(req.Payment.Method) {
	case domain.MethodPix:
		return domain.PixPayment{InstallmentCount: installments}, nil
	case domain.MethodCreditCard:
		if req.Payment.CardHash != "" {
			return domain.CardPayment{
				InstallmentCount: installments,
				CardHash:         req.Payment.CardHash,
			}, nil
		}
		if req.Payment.Card == nil || !req.Payment.Card.Complete() {
			return nil, apperror.Validation("Dados do cartão incompletos")
		}
		if len(req.Payment.Card.Number) < 4 {
			return nil, apperror.Validation("Número do cartão inválido")
		}
		card := *req.Payment.Card
		return domain.CardPayment{
			InstallmentCount: installments,
			Card:             &card,
		}, nil
	default:
		return nil, apperror.Validation("Método de pagamento não suportado")
	}
}
