package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OgheneDev/technest-frontend-sub001/internal/domain"
)

type mockWishlistAPI struct {
	mu    sync.Mutex
	list  domain.Wishlist
	err   error
	calls []string
}

func (m *mockWishlistAPI) GetWishlist(context.Context, string) (*domain.Wishlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "get")
	if m.err != nil {
		return nil, m.err
	}
	snapshot := m.list
	snapshot.Products = append([]domain.WishlistItem(nil), m.list.Products...)
	return &snapshot, nil
}

func (m *mockWishlistAPI) AddToWishlist(_ context.Context, _, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "add")
	if m.err != nil {
		return m.err
	}
	m.list.Products = append(m.list.Products, domain.WishlistItem{
		Product: domain.Product{ID: productID},
	})
	return nil
}

func (m *mockWishlistAPI) RemoveFromWishlist(_ context.Context, _, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "remove")
	if m.err != nil {
		return m.err
	}
	kept := m.list.Products[:0]
	for _, item := range m.list.Products {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	m.list.Products = kept
	return nil
}

func TestWishlistAddThenRemove_RefetchAfterWrite(t *testing.T) {
	api := &mockWishlistAPI{}
	svc := NewWishlistService(api)
	ctx := context.Background()

	list, err := svc.Add(ctx, "tok", "p1")
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, []string{"add", "get"}, api.calls)

	list, err = svc.Remove(ctx, "tok", "p1")
	require.NoError(t, err)
	assert.Empty(t, list.Products)
	assert.Equal(t, []string{"add", "get", "remove", "get"}, api.calls)
}

func TestWishlistGet_TriState(t *testing.T) {
	api := &mockWishlistAPI{}
	svc := NewWishlistService(api)
	ctx := context.Background()

	result := svc.Get(ctx, "tok")
	assert.Equal(t, FetchEmpty, result.State)

	_, err := svc.Add(ctx, "tok", "p1")
	require.NoError(t, err)

	result = svc.Get(ctx, "tok")
	assert.Equal(t, FetchLoaded, result.State)

	api.mu.Lock()
	api.err = errors.New("backend down")
	api.mu.Unlock()

	result = svc.Get(ctx, "tok")
	assert.Equal(t, FetchFailed, result.State)
	assert.Error(t, result.Err)
}

func TestWishlistAdd_MissingProduct(t *testing.T) {
	api := &mockWishlistAPI{}
	svc := NewWishlistService(api)

	_, err := svc.Add(context.Background(), "tok", "")
	assert.ErrorIs(t, err, ErrMissingProduct)
	assert.Empty(t, api.calls)
}
