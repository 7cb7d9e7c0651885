package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/OgheneDev/technest-frontend-sub001/internal/domain"
)

// ListProducts passes filter/sort/search/pagination query parameters through
// to the backend untouched; the catalog is opaque to the gateway.
func (c *Client) ListProducts(ctx context.Context, query url.Values) ([]domain.Product, error) {
	path := "/api/products"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var products []domain.Product
	if _, err := c.do(ctx, http.MethodGet, path, "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var product domain.Product
	if _, err := c.do(ctx, http.MethodGet, "/api/products/"+productID, "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) ListReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	var reviews []domain.Review
	if _, err := c.do(ctx, http.MethodGet, "/api/products/"+productID+"/reviews", "", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) PostReview(ctx context.Context, token, productID string, rating float64, comment string) error {
	body := map[string]any{"rating": rating, "comment": comment}
	_, err := c.do(ctx, http.MethodPost, "/api/products/"+productID+"/reviews", token, body, nil)
	return err
}
