package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbill/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// HandleError maps a domain error onto the response envelope and logs
// anything unexpected.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status == http.StatusInternalServerError {
		log.Printf("handler: unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	RespondError(c, status, code, msg)
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, "VALIDATION_FAILED", vErr.Error()
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_FAILED", "request validation failed"
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, "PROFILE_NOT_FOUND", "buyer profile not found"
	case errors.Is(err, domain.ErrDuplicateProfileID):
		return http.StatusConflict, "DUPLICATE_PROFILE_ID", "profile id already exists"
	case errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusServiceUnavailable, "TEMPLATE_NOT_FOUND", "no invoice template is available"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrSequenceConflict):
		return http.StatusConflict, "SEQUENCE_CONFLICT", "invoice number already in use"
	case errors.Is(err, domain.ErrConversionFailed):
		return http.StatusBadGateway, "CONVERSION_FAILED", "PDF conversion failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}
