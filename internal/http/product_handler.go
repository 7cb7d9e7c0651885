package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/OgheneDev/technest-frontend-sub001/internal/backend"
)

// ProductHandler passes catalog reads straight through to the backend; the
// gateway adds nothing to them beyond timeout and error shaping.
type ProductHandler struct {
	backend *backend.Client
	timeout time.Duration
}

func NewProductHandler(client *backend.Client, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		backend: client,
		timeout: timeout,
	}
}

type PostReviewRequestDTO struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.backend.ListProducts(ctx, r.URL.Query())
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "productID")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id is required")
		return
	}

	product, err := h.backend.GetProduct(ctx, productID)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "productID")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id is required")
		return
	}

	reviews, err := h.backend.ListReviews(ctx, productID)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, reviews)
}

func (h *ProductHandler) PostReview(w http.ResponseWriter, r *http.Request) {
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

	var req PostReviewRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		respondError(w, http.StatusBadRequest, "invalid_rating", "rating must be between 1 and 5")
		return
	}

	if err := h.backend.PostReview(ctx, token, productID, req.Rating, req.Comment); err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]bool{"success": true})
}
