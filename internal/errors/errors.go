package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inc-tasks/task-api/internal/constants"
)

// APIError is the failure shape of the response envelope
type APIError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Predefined messages
const (
	MsgUnauthorized = "Authentication required"
	MsgForbidden    = "Access denied"
	MsgNotFound     = "Resource not found"
	MsgInvalidInput = "Invalid request body"
	MsgInternal     = "Internal server error"
)

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, APIError{
		Success: false,
		Message: message,
		Code:    code,
	})
}

// StatusFor maps a domain error kind to its HTTP status
func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Respond maps err to the envelope. DomainErrors keep their message; anything else is a 500
// whose detail is only exposed in debug mode.
func Respond(c *gin.Context, err error) {
	var de *DomainError
	if errors.As(err, &de) {
		RespondWithError(c, StatusFor(de.Kind), string(de.Kind), de.Message)
		return
	}

	requestID, _ := c.Get(constants.ContextKeyRequestID)
	slog.Default().Error("unexpected error",
		slog.Any("request_id", requestID),
		slog.String("path", c.FullPath()),
		slog.String("error", err.Error()),
	)

	body := APIError{Success: false, Message: MsgInternal, Code: "INTERNAL_ERROR"}
	if gin.Mode() == gin.DebugMode {
		body.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = MsgUnauthorized
	}
	RespondWithError(c, http.StatusUnauthorized, string(KindAuth), message)
}

// ForbiddenResponse sends a 403 response
func ForbiddenResponse(c *gin.Context, message string) {
	if message == "" {
		message = MsgForbidden
	}
	RespondWithError(c, http.StatusForbidden, string(KindForbidden), message)
}

// NotFoundResponse sends a 404 response
func NotFoundResponse(c *gin.Context, message string) {
	if message == "" {
		message = MsgNotFound
	}
	RespondWithError(c, http.StatusNotFound, string(KindNotFound), message)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = MsgInvalidInput
	}
	RespondWithError(c, http.StatusBadRequest, string(KindValidation), message)
}

// TooManyRequests sends a 429 response
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "Rate limit exceeded"
	}
	RespondWithError(c, http.StatusTooManyRequests, "RATE_LIMITED", message)
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = MsgInternal
	}
	RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", message)
}
