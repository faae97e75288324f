package middleware

import (
	"net/http"
	"time"

	"pagfx-engine/internal/core/ports"
	"pagfx-engine/pkg/apperror"
	"pagfx-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Context keys shared with handlers.
const (
	CtxRequestID = "request_id"
	CtxSubject   = "subject"
)

// RequestID assigns every request an id, echoed in the response header
// and in the envelope.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(CtxRequestID, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(CtxRequestID)).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   gin.H{"message": "Erro interno do servidor"},
				})
			}
		}()
		c.Next()
	}
}

// MaxBodySize rejects request bodies larger than the given byte limit.
func MaxBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// JWTAuth validates a bearer token on the admin routes.
func JWTAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			response.Error(c, apperror.Unauthorized("Token de autenticação ausente ou inválido"))
			c.Abort()
			return
		}

		claims, err := tokenSvc.Validate(authHeader[7:])
		if err != nil {
			log.Debug().Err(err).Msg("token rejected")
			response.Error(c, apperror.Unauthorized("Token de autenticação ausente ou inválido"))
			c.Abort()
			return
		}

		c.Set(CtxSubject, claims.Subject)
		c.Next()
	}
}
