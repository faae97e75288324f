package handler

import (
	"net/http"

	"pagfx-engine/internal/adapter/http/dto"
	"pagfx-engine/internal/core/ports"
	"pagfx-engine/pkg/apperror"
	"pagfx-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// FeeHandler exposes the fee calculator.
type FeeHandler struct {
	feeSvc ports.FeeService
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(feeSvc ports.FeeService) *FeeHandler {
	return &FeeHandler{feeSvc: feeSvc}
}

// Quote handles POST /api/v1/taxas.
func (h *FeeHandler) Quote(c *gin.Context) {
	var req dto.FeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Corpo da requisição inválido"))
		return
	}

	quote, err := h.feeSvc.Quote(req.ToServiceRequest())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromFeeQuote(quote))
}

// CredentialHandler exposes the environment credential pairs.
type CredentialHandler struct {
	credSvc ports.CredentialService
}

// NewCredentialHandler creates a new CredentialHandler.
func NewCredentialHandler(credSvc ports.CredentialService) *CredentialHandler {
	return &CredentialHandler{credSvc: credSvc}
}

// List handles GET /api/v1/credentials.
func (h *CredentialHandler) List(c *gin.Context) {
	response.OK(c, dto.FromCredentials(h.credSvc.All()))
}

// HealthCheck handles GET /health. Deep check over the configured
// backends; any failure degrades the status.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
