package backend

import (
	"context"
	"net/http"

	"github.com/OgheneDev/technest-frontend-sub001/internal/domain"
)

// InitializeCheckout asks the backend to create a pending order plus a payment
// session from the current server-side cart.
func (c *Client) InitializeCheckout(ctx context.Context, token, shippingAddress, paymentMethod string) (*domain.PaymentSession, error) {
	body := map[string]string{
		"shippingAddress": shippingAddress,
		"paymentMethod":   paymentMethod,
	}
	var session domain.PaymentSession
	if _, err := c.do(ctx, http.MethodPost, "/api/checkout/initialize", token, body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// VerifyPayment confirms a payment reference with the backend. Safe to invoke
// repeatedly with the same reference, the backend treats it idempotently.
func (c *Client) VerifyPayment(ctx context.Context, token, reference string) (*domain.VerifyResult, error) {
	var result domain.VerifyResult
	if _, err := c.do(ctx, http.MethodGet, "/api/checkout/verify/"+reference, token, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CheckoutHistory(ctx context.Context, token string) ([]domain.Order, error) {
	var orders []domain.Order
	if _, err := c.do(ctx, http.MethodGet, "/api/checkout/history", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetCheckout(ctx context.Context, token, checkoutID string) (*domain.Order, error) {
	var order domain.Order
	if _, err := c.do(ctx, http.MethodGet, "/api/checkout/"+checkoutID, token, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CancelCheckout(ctx context.Context, token, checkoutID string) (*domain.Order, error) {
	var order domain.Order
	if _, err := c.do(ctx, http.MethodPut, "/api/checkout/"+checkoutID+"/cancel", token, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
