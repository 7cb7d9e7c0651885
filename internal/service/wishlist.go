package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/OgheneDev/technest-frontend-sub001/internal/domain"
)

type WishlistAPI interface {
	GetWishlist(ctx context.Context, token string) (*domain.Wishlist, error)
	AddToWishlist(ctx context.Context, token, productID string) error
	RemoveFromWishlist(ctx context.Context, token, productID string) error
}

type WishlistResult struct {
	State    FetchState
	Wishlist *domain.Wishlist
	Err      error
}

// WishlistService mirrors the cart layer's shape: explicit fetch results,
// refetch after every write, per-token mutation serialization.
type WishlistService struct {
	api   WishlistAPI
	locks keyedMutex
	sfg   singleflight.Group
}

func NewWishlistService(api WishlistAPI) *WishlistService {
	return &WishlistService{api: api}
}

func (s *WishlistService) Get(ctx context.Context, token string) WishlistResult {
	v, err, _ := s.sfg.Do(token, func() (interface{}, error) {
		return s.api.GetWishlist(ctx, token)
	})
	if err != nil {
		return WishlistResult{State: FetchFailed, Err: err}
	}

	wishlist := v.(*domain.Wishlist)
	if len(wishlist.Products) == 0 {
		return WishlistResult{State: FetchEmpty, Wishlist: wishlist}
	}
	return WishlistResult{State: FetchLoaded, Wishlist: wishlist}
}

func (s *WishlistService) Add(ctx context.Context, token, productID string) (*domain.Wishlist, error) {
	if productID == "" {
		return nil, ErrMissingProduct
	}

	entry := s.locks.acquire(token)
	defer s.locks.release(token, entry)

	if err := s.api.AddToWishlist(ctx, token, productID); err != nil {
		return nil, err
	}
	return s.refetch(ctx, token)
}

func (s *WishlistService) Remove(ctx context.Context, token, productID string) (*domain.Wishlist, error) {
	if productID == "" {
		return nil, ErrMissingProduct
	}

	entry := s.locks.acquire(token)
	defer s.locks.release(token, entry)

	if err := s.api.RemoveFromWishlist(ctx, token, productID); err != nil {
		return nil, err
	}
	return s.refetch(ctx, token)
}

func (s *WishlistService) refetch(ctx context.Context, token string) (*domain.Wishlist, error) {
	wishlist, err := s.api.GetWishlist(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("wishlist updated but refetch failed: %w", err)
	}
	return wishlist, nil
}
