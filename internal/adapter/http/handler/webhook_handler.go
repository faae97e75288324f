package handler

import (
	"pagfx-engine/internal/adapter/http/dto"
	"pagfx-engine/internal/core/ports"
	"pagfx-engine/pkg/apperror"
	"pagfx-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives provider status notifications.
type WebhookHandler struct {
	webhookSvc ports.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(webhookSvc ports.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookSvc: webhookSvc}
}

// Receive handles POST /api/v1/webhookfx.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Corpo da requisição inválido"))
		return
	}

	if err := h.webhookSvc.Process(c.Request.Context(), req.ToInboundEvent()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.WebhookResponse{Received: true})
}
