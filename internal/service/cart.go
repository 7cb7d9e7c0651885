package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/OgheneDev/technest-frontend-sub001/internal/cache"
	"github.com/OgheneDev/technest-frontend-sub001/internal/domain"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrMissingProduct  = errors.New("product id is required")
)

// CartAPI is the slice of the backend surface the cart layer needs.
// Consumers define this interface, not the HTTP client.
type CartAPI interface {
	GetCart(ctx context.Context, token string) (*domain.Cart, error)
	AddToCart(ctx context.Context, token, productID string, quantity int) error
	UpdateCartQuantity(ctx context.Context, token, productID string, quantity int) error
	DeleteCartItem(ctx context.Context, token, productID string) error
	ClearCart(ctx context.Context, token string) error
}

// CartResult is the explicit tri-state outcome of a cart fetch.
type CartResult struct {
	State FetchState
	Cart  *domain.Cart
	Err   error
}

// CartService synchronizes the gateway's view of the server-resident cart.
// There is exactly one cart model: no mutation is reflected until the backend
// has confirmed it via a full refetch.
type CartService struct {
	api    CartAPI
	counts *cache.CountCache
	locks  keyedMutex
	sfg    singleflight.Group // Collapses concurrent refetches per token
}

func NewCartService(api CartAPI, counts *cache.CountCache) *CartService {
	return &CartService{api: api, counts: counts}
}

// Get fetches the current server cart. Failures are reported, never swallowed
// into an empty placeholder.
func (s *CartService) Get(ctx context.Context, token string) CartResult {
	v, err, _ := s.sfg.Do(token, func() (interface{}, error) {
		return s.api.GetCart(ctx, token)
	})
	if err != nil {
		return CartResult{State: FetchFailed, Err: err}
	}

	cart := v.(*domain.Cart)
	s.counts.Set(token, cart.ItemCount())
	if len(cart.Products) == 0 {
		return CartResult{State: FetchEmpty, Cart: cart}
	}
	return CartResult{State: FetchLoaded, Cart: cart}
}

// AddItem adds quantity units of a product, then refetches. The returned cart
// is the server's post-mutation truth. Insufficient stock surfaces as the
// backend's own error message.
func (s *CartService) AddItem(ctx context.Context, token, productID string, quantity int) (*domain.Cart, error) {
	if productID == "" {
		return nil, ErrMissingProduct
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	entry := s.locks.acquire(token)
	defer s.locks.release(token, entry)

	if err := s.api.AddToCart(ctx, token, productID, quantity); err != nil {
		return nil, err
	}
	return s.refetch(ctx, token)
}

// UpdateQuantity sets an absolute quantity for a line item. Values below 1
// are rejected here, before any network call; the UI clamps to a minimum of 1.
func (s *CartService) UpdateQuantity(ctx context.Context, token, productID string, quantity int) (*domain.Cart, error) {
	if productID == "" {
		return nil, ErrMissingProduct
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	entry := s.locks.acquire(token)
	defer s.locks.release(token, entry)

	if err := s.api.UpdateCartQuantity(ctx, token, productID, quantity); err != nil {
		return nil, err
	}
	return s.refetch(ctx, token)
}

func (s *CartService) RemoveItem(ctx context.Context, token, productID string) (*domain.Cart, error) {
	if productID == "" {
		return nil, ErrMissingProduct
	}

	entry := s.locks.acquire(token)
	defer s.locks.release(token, entry)

	if err := s.api.DeleteCartItem(ctx, token, productID); err != nil {
		return nil, err
	}
	return s.refetch(ctx, token)
}

func (s *CartService) Clear(ctx context.Context, token string) (*domain.Cart, error) {
	entry := s.locks.acquire(token)
	defer s.locks.release(token, entry)

	if err := s.api.ClearCart(ctx, token); err != nil {
		return nil, err
	}
	return s.refetch(ctx, token)
}

// ItemCount serves the header badge. Cache hit is display-only state; a miss
// falls through to a full cart fetch.
func (s *CartService) ItemCount(ctx context.Context, token string) (int, error) {
	if count, ok := s.counts.Get(token); ok {
		return count, nil
	}
	cart, err := s.api.GetCart(ctx, token)
	if err != nil {
		return 0, err
	}
	count := cart.ItemCount()
	s.counts.Set(token, count)
	return count, nil
}

// refetch pulls the post-mutation cart. The mutation itself already
// succeeded, so a refetch failure is reported as such rather than leaving the
// caller with a stale view presented as current.
func (s *CartService) refetch(ctx context.Context, token string) (*domain.Cart, error) {
	cart, err := s.api.GetCart(ctx, token)
	if err != nil {
		s.counts.Invalidate(token)
		return nil, fmt.Errorf("cart updated but refetch failed: %w", err)
	}
	s.counts.Set(token, cart.ItemCount())
	return cart, nil
}
