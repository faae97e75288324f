package response

import (
	"errors"
	"net/http"

	"pagfx-engine/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Envelope is the uniform response body. Callers must check Success
// rather than relying on the presence of Data alone.
type Envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorBody  `json:"error,omitempty"`
	RequestID string      `json:"request_id"`
}

// ErrorBody carries the error kind and a human-readable message.
type ErrorBody struct {
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success:   true,
		Data:      data,
		RequestID: getRequestID(c),
	})
}

// Created sends a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{
		Success:   true,
		Data:      data,
		RequestID: getRequestID(c),
	})
}

// Error sends an error response. It checks if err is an *apperror.AppError
// and maps it accordingly, otherwise returns 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, Envelope{
			Success:   false,
			Error:     &ErrorBody{Kind: string(appErr.Kind), Message: appErr.Message},
			RequestID: getRequestID(c),
		})
		return
	}

	// Unknown error -> 500
	c.JSON(http.StatusInternalServerError, Envelope{
		Success:   false,
		Error:     &ErrorBody{Message: "Erro interno do servidor"},
		RequestID: getRequestID(c),
	})
}

// getRequestID retrieves request ID from context, or generates one.
func getRequestID(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return uuid.New().String()
}
