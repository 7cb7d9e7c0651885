package backend

import (
	"context"
	"net/http"

	"github.com/OgheneDev/technest-frontend-sub001/internal/domain"
)

func (c *Client) GetCart(ctx context.Context, token string) (*domain.Cart, error) {
	var cart domain.Cart
	if _, err := c.do(ctx, http.MethodGet, "/api/cart", token, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart may be rejected by the backend on insufficient stock; the error
// text is the backend's own message.
func (c *Client) AddToCart(ctx context.Context, token, productID string, quantity int) error {
	body := map[string]any{"productId": productID, "quantity": quantity}
	_, err := c.do(ctx, http.MethodPost, "/api/cart", token, body, nil)
	return err
}

// UpdateCartQuantity sets an absolute quantity for a line item.
func (c *Client) UpdateCartQuantity(ctx context.Context, token, productID string, quantity int) error {
	body := map[string]any{"quantity": quantity}
	_, err := c.do(ctx, http.MethodPut, "/api/cart/"+productID, token, body, nil)
	return err
}

func (c *Client) DeleteCartItem(ctx context.Context, token, productID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/cart/"+productID, token, nil, nil)
	return err
}

func (c *Client) ClearCart(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/cart", token, nil, nil)
	return err
}
