package handlers

import (
	"net/http"

	"hotelbook/internal/domain"
	"hotelbook/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	msgUpstream  = "The booking service is unavailable. Please try again."
	msgMalformed = "The booking service returned an unexpected response."
	msgInternal  = "Something went wrong. Please try again."
)

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Redirect  string `json:"redirect,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Backend failures
// keep the backend message when it sent one.
func RespondDomainError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:     err.Error(),
			Code:      "conflict",
			Message:   err.Error(),
			Redirect:  domain.RedirectOf(err),
			RequestID: middleware.GetRequestID(c),
		})
	case domain.IsMalformedResponse(err):
		respondError(c, http.StatusBadGateway, "malformed_response", msgMalformed, nil)
	case domain.IsUpstream(err):
		msg := msgUpstream
		if m, ok := domain.RejectionMessage(err); ok {
			msg = m
		}
		respondError(c, http.StatusBadGateway, "upstream_error", msg, nil)
	case domain.IsRejected(err):
		msg, _ := domain.RejectionMessage(err)
		if msg == "" {
			msg = err.Error()
		}
		respondError(c, http.StatusUnprocessableEntity, "rejected", msg, nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", msgInternal, nil)
	}
}

func requestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

// panelStatus picks the HTTP status for an error that is rendered as a panel
// instead of the standard error body.
func panelStatus(err error) int {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case domain.IsMalformedResponse(err), domain.IsUpstream(err):
		return http.StatusBadGateway
	case domain.IsRejected(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
