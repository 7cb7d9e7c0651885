package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/OgheneDev/technest-frontend-sub001/internal/backend"
	"github.com/OgheneDev/technest-frontend-sub001/internal/domain"
	"github.com/OgheneDev/technest-frontend-sub001/internal/service"
	"github.com/OgheneDev/technest-frontend-sub001/internal/session"
)

type CheckoutHandler struct {
	flow     *service.CheckoutFlow
	backend  *backend.Client
	sessions *session.Manager
	timeout  time.Duration
}

func NewCheckoutHandler(flow *service.CheckoutFlow, client *backend.Client, sessions *session.Manager, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		flow:     flow,
		backend:  client,
		sessions: sessions,
		timeout:  timeout,
	}
}

type InitializeCheckoutRequestDTO struct {
	ShippingAddress string `json:"shippingAddress"`
	PaymentMethod   string `json:"paymentMethod"`
}

type CheckoutProgressDTO struct {
	State            string `json:"state"`
	ActiveStep       int    `json:"activeStep"`
	ShippingAddress  string `json:"shippingAddress,omitempty"`
	PaymentMethod    string `json:"paymentMethod,omitempty"`
	Reference        string `json:"reference,omitempty"`
	AuthorizationURL string `json:"authorizationUrl,omitempty"`
	LastError        string `json:"lastError,omitempty"`
	RedirectTo       string `json:"redirectTo,omitempty"`
}

func progressDTO(p session.CheckoutProgress) CheckoutProgressDTO {
	dto := CheckoutProgressDTO{
		State:            p.State.String(),
		ActiveStep:       p.ActiveStep,
		ShippingAddress:  p.ShippingAddress,
		PaymentMethod:    p.PaymentMethod,
		Reference:        p.Reference,
		AuthorizationURL: p.AuthorizationURL,
		LastError:        p.LastError,
	}
	if p.State == domain.CheckoutStateSucceeded {
		dto.RedirectTo = "/shop"
	}
	return dto
}

// POST /api/checkout/initialize
func (h *CheckoutHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req InitializeCheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	progress, err := h.flow.Initialize(ctx, token, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, progressDTO(progress))
}

// GET /api/checkout/verify/{reference} — the manual "Verify Payment" action.
func (h *CheckoutHandler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	progress, err := h.flow.Verify(ctx, token, chi.URLParam(r, "reference"))
	if err != nil {
		// A failed verification is retryable state, not a plain error: the UI
		// needs the flow state alongside the message.
		if progress.State == domain.CheckoutStateFailed {
			respondJSON(w, http.StatusUnprocessableEntity, progressDTO(progress))
			return
		}
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, progressDTO(progress))
}

// GET /api/checkout/callback?reference=…|trxref=… — the payment page redirect
// entry. Lands on the same verify path as the manual action; the per-token
// lock in the flow keeps the two from racing.
func (h *CheckoutHandler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		http.Redirect(w, r, "/login?from=%2Fcheckout", http.StatusFound)
		return
	}

	reference := r.URL.Query().Get("reference")
	if reference == "" {
		reference = r.URL.Query().Get("trxref")
	}

	progress, err := h.flow.Verify(ctx, token, reference)
	if err != nil || progress.State != domain.CheckoutStateSucceeded {
		http.Redirect(w, r, "/checkout?status=failed", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/shop", http.StatusFound)
}

// GET /api/checkout/progress
func (h *CheckoutHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	progress, err := h.flow.Progress(ctx, token)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, progressDTO(progress))
}

// DELETE /api/checkout/progress — back to the shipping form.
func (h *CheckoutHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	progress, err := h.flow.Reset(ctx, token)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, progressDTO(progress))
}

// GET /api/checkout/history
func (h *CheckoutHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.backend.CheckoutHistory(ctx, token)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// GET /api/checkout/{checkoutID}
func (h *CheckoutHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	checkoutID := chi.URLParam(r, "checkoutID")
	if checkoutID == "" {
		respondError(w, http.StatusBadRequest, "missing_checkout_id", "checkout id is required")
		return
	}

	order, err := h.backend.GetCheckout(ctx, token, checkoutID)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// PUT /api/checkout/{checkoutID}/cancel
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	checkoutID := chi.URLParam(r, "checkoutID")
	if checkoutID == "" {
		respondError(w, http.StatusBadRequest, "missing_checkout_id", "checkout id is required")
		return
	}

	order, err := h.backend.CancelCheckout(ctx, token, checkoutID)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// PUT /api/checkout/shipping — the saved shipping form fields.
func (h *CheckoutHandler) SaveShipping(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var details map[string]string
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.sessions.SaveShippingDetails(ctx, token, details); err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, details)
}

// GET /api/checkout/shipping
func (h *CheckoutHandler) GetShipping(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	details, err := h.sessions.ShippingDetails(ctx, token)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	if details == nil {
		details = map[string]string{}
	}

	respondJSON(w, http.StatusOK, details)
}
