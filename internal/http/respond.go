package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/OgheneDev/technest-frontend-sub001/internal/backend"
	"github.com/OgheneDev/technest-frontend-sub001/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleBackendError maps a failure from the sync layers or the backend
// client onto an HTTP response. Backend-reported messages pass through
// verbatim; transport failures get a generic message.
func handleBackendError(w http.ResponseWriter, err error) {
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		respondError(w, apiErr.StatusCode, "backend_error", apiErr.Message)
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrMissingProduct),
		errors.Is(err, service.ErrShippingAddressRequired),
		errors.Is(err, service.ErrPaymentMethodRequired),
		errors.Is(err, service.ErrNoPaymentReference):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, service.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "backend_timeout", "the store is taking too long to respond")
	default:
		log.Error().Err(err).Msg("backend call failed")
		respondError(w, http.StatusBadGateway, "backend_unavailable", "something went wrong, please try again")
	}
}
