package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/OgheneDev/technest-frontend-sub001/internal/service"
)

type CartHandler struct {
	carts   *service.CartService
	timeout time.Duration
}

func NewCartHandler(carts *service.CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CountResponseDTO struct {
	Count int `json:"count"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	result := h.carts.Get(ctx, token)
	if result.State == service.FetchFailed {
		handleBackendError(w, result.Err)
		return
	}

	respondJSON(w, http.StatusOK, result.Cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId is required")
		return
	}
	if req.Quantity < 1 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	cart, err := h.carts.AddItem(ctx, token, req.ProductID, req.Quantity)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, cart)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	productID := chi.URLParam(r, "productID")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// The quantity stepper never goes below one; clamp rather than reject so
	// a stale double-click on minus does not error.
	if req.Quantity < 1 {
		req.Quantity = 1
	}
	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	cart, err := h.carts.UpdateQuantity(ctx, token, productID, req.Quantity)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	productID := chi.URLParam(r, "productID")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id is required")
		return
	}

	cart, err := h.carts.RemoveItem(ctx, token, productID)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	cart, err := h.carts.Clear(ctx, token)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

// GetCount serves the header badge.
func (h *CartHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	count, err := h.carts.ItemCount(ctx, token)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CountResponseDTO{Count: count})
}
