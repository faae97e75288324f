package handler

import (
	"pagfx-engine/internal/adapter/http/middleware"
	"pagfx-engine/internal/core/domain"
	"pagfx-engine/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	TransactionSvc ports.TransactionService
	WebhookSvc     ports.WebhookService
	FeeSvc         ports.FeeService
	CredentialSvc  ports.CredentialService
	TokenSvc       ports.TokenService
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	v1 := r.Group("/api/v1")

	txHandler := NewTransactionHandler(deps.TransactionSvc)
	transactions := v1.Group("/transactions")
	{
		transactions.POST("", txHandler.Create)
		transactions.POST("/pix", txHandler.CreatePix(domain.EnvironmentDevelopment))
		transactions.POST("/pix/prod", txHandler.CreatePix(domain.EnvironmentProduction))
		transactions.POST("/card", txHandler.CreateCard(domain.EnvironmentDevelopment))
		transactions.POST("/card/prod", txHandler.CreateCard(domain.EnvironmentProduction))
		transactions.POST("/card/hash", txHandler.CreateCard(domain.EnvironmentDevelopment))
		transactions.GET("/:id", txHandler.Get)
	}

	webhookHandler := NewWebhookHandler(deps.WebhookSvc)
	v1.POST("/webhookfx", webhookHandler.Receive)

	feeHandler := NewFeeHandler(deps.FeeSvc)
	v1.POST("/taxas", feeHandler.Quote)

	// Admin surface: credentials are returned verbatim, so the route is
	// bearer-token guarded.
	credHandler := NewCredentialHandler(deps.CredentialSvc)
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	v1.GET("/credentials", jwtAuth, credHandler.List)

	return r
}
