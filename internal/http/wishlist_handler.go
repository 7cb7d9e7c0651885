package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/OgheneDev/technest-frontend-sub001/internal/service"
)

type WishlistHandler struct {
	wishlists *service.WishlistService
	timeout   time.Duration
}

func NewWishlistHandler(wishlists *service.WishlistService, timeout time.Duration) *WishlistHandler {
	return &WishlistHandler{
		wishlists: wishlists,
		timeout:   timeout,
	}
}

type AddWishlistRequestDTO struct {
	ProductID string `json:"productId"`
}

func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	result := h.wishlists.Get(ctx, token)
	if result.State == service.FetchFailed {
		handleBackendError(w, result.Err)
		return
	}

	respondJSON(w, http.StatusOK, result.Wishlist)
}

func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := tokenFromContext(r.Context())
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddWishlistRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId is required")
		return
	}

	wishlist, err := h.wishlists.Add(ctx, token, req.ProductID)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, wishlist)
}

func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
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

	wishlist, err := h.wishlists.Remove(ctx, token, productID)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, wishlist)
}
