package backend

import (
	"context"
	"net/http"

	"github.com/OgheneDev/technest-frontend-sub001/internal/domain"
)

func (c *Client) GetWishlist(ctx context.Context, token string) (*domain.Wishlist, error) {
	var wishlist domain.Wishlist
	if _, err := c.do(ctx, http.MethodGet, "/api/wishlist", token, nil, &wishlist); err != nil {
		return nil, err
	}
	return &wishlist, nil
}

func (c *Client) AddToWishlist(ctx context.Context, token, productID string) error {
	body := map[string]string{"productId": productID}
	_, err := c.do(ctx, http.MethodPost, "/api/wishlist", token, body, nil)
	return err
}

func (c *Client) RemoveFromWishlist(ctx context.Context, token, productID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/wishlist/"+productID, token, nil, nil)
	return err
}
