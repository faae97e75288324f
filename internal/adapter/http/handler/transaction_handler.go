package handler

import (
	"pagfx-engine/internal/adapter/http/dto"
	"pagfx-engine/internal/core/domain"
	"pagfx-engine/internal/core/ports"
	"pagfx-engine/pkg/apperror"
	"pagfx-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles transaction creation and lookup.
type TransactionHandler struct {
	txSvc ports.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txSvc ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{txSvc: txSvc}
}

// Create handles POST /api/v1/transactions.
func (h *TransactionHandler) Create(c *gin.Context) {
	h.create(c, "", "")
}

// CreatePix handles the POST /api/v1/transactions/pix variants. The
// route fixes the method; the environment comes from the route variant.
func (h *TransactionHandler) CreatePix(env domain.Environment) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.create(c, domain.MethodPix, env)
	}
}

// CreateCard handles the POST /api/v1/transactions/card variants,
// including the card-hash form: the body decides whether card details or
// a hash are present, the service enforces that one of them is.
func (h *TransactionHandler) CreateCard(env domain.Environment) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.create(c, domain.MethodCreditCard, env)
	}
}

func (h *TransactionHandler) create(c *gin.Context, forceMethod domain.PaymentMethod, forceEnv domain.Environment) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Corpo da requisição inválido"))
		return
	}

	in := req.ToServiceRequest()
	if forceMethod != "" {
		if in.Payment == nil {
			in.Payment = &ports.PaymentInput{}
		}
		in.Payment.Method = string(forceMethod)
	}
	if forceEnv != "" {
		in.Environment = forceEnv
	}

	txn, err := h.txSvc.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.FromTransaction(txn))
}

// Get handles GET /api/v1/transactions/:id.
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NotFound("Transação"))
		return
	}

	txn, err := h.txSvc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromTransaction(txn))
}
