package handlers

import (
	"errors"
	"net/http"

	"commuteai/internal/clients/hsl"
	"commuteai/internal/domain"
	"commuteai/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsUnauthorized(err):
		c.Header("WWW-Authenticate", "Bearer")
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	default:
		log.Error().Err(err).Str("request_id", middleware.GetRequestID(c)).
			Str("path", c.Request.URL.Path).Msg("unhandled error")
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

// respondRoutingError maps routing API failures: upstream API and data
// problems are 502, unreachable upstream is 503.
func respondRoutingError(c *gin.Context, err error) {
	var target *hsl.Error
	if !errors.As(err, &target) {
		RespondDomainError(c, err)
		return
	}
	switch target.Kind {
	case hsl.KindAPI:
		respondError(c, http.StatusBadGateway, "routing_api_error", target.Error(), nil)
	case hsl.KindData:
		respondError(c, http.StatusBadGateway, "routing_data_error", "invalid data from routing service", nil)
	case hsl.KindNetwork:
		respondError(c, http.StatusServiceUnavailable, "routing_unavailable", "routing service unavailable", nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "route search failed", nil)
	}
}
