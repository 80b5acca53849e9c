package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"spherical/internal/domain"
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

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found"
	case errors.Is(err, domain.ErrAgentNotFound):
		return http.StatusNotFound, "AGENT_NOT_FOUND", "agent not found"
	case errors.Is(err, domain.ErrNoAnalysis):
		return http.StatusNotFound, "NO_ANALYSIS", "no analysis result available yet"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrNotOcrEligible):
		return http.StatusBadRequest, "NOT_OCR_ELIGIBLE", "document has no source file to OCR"
	case errors.Is(err, domain.ErrNoCombinedText):
		return http.StatusBadRequest, "NO_COMBINED_TEXT", "combine documents before running agents"
	case errors.Is(err, domain.ErrInvalidView):
		return http.StatusBadRequest, "INVALID_VIEW", "unknown view; allowed: documents, ocr, analysis, agents, dashboard"
	case errors.Is(err, domain.ErrOperationInFlight):
		return http.StatusConflict, "OPERATION_IN_FLIGHT", "this operation is already running"
	case errors.Is(err, domain.ErrOracleUnavailable):
		return http.StatusServiceUnavailable, "ORACLE_UNAVAILABLE", "analysis oracle is not configured; set the API key"
	case errors.Is(err, domain.ErrRenderFailed):
		return http.StatusBadGateway, "RENDER_FAILED", "failed to render document pages"
	case errors.Is(err, domain.ErrAgentRunFailed):
		return http.StatusBadGateway, "AGENT_RUN_FAILED", "agent execution failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
