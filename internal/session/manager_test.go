package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OgheneDev/technest-frontend-sub001/internal/domain"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	store, err := NewBoltStore(filepath.Join(t.TempDir(), "sessions.db"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewManager(store, 7*24*time.Hour, false)
}

func tokenCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == TokenCookieName {
			return cookie
		}
	}
	return nil
}

func TestSetTokenThenTokenFromRequest(t *testing.T) {
	m := newTestManager(t)
	rec := httptest.NewRecorder()

	require.NoError(t, m.SetToken(context.Background(), rec, "tok-abc"))

	cookie := tokenCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "tok-abc", cookie.Value)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), cookie.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: cookie.Value})
	assert.Equal(t, "tok-abc", m.TokenFromRequest(req))
}

func TestRemoveTokenClearsCookieAndStore(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetToken(ctx, rec, "tok-abc"))

	rec = httptest.NewRecorder()
	require.NoError(t, m.RemoveToken(ctx, rec, "tok-abc"))

	cookie := tokenCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)

	_, err := m.store.Get(ctx, "tok-abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestTokenFromRequest_BearerFallback(t *testing.T) {
	m := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer tok-header")
	assert.Equal(t, "tok-header", m.TokenFromRequest(req))

	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	assert.Empty(t, m.TokenFromRequest(req))
}

func TestProgressRoundTrip(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetToken(ctx, rec, "tok-abc"))

	progress, err := m.Progress(ctx, "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutStateIdle, progress.State)

	progress.State = domain.CheckoutStateAwaitingVerification
	progress.Reference = "REF123"
	progress.ShippingAddress = "12 Harbor Lane"
	require.NoError(t, m.SaveProgress(ctx, "tok-abc", progress))

	loaded, err := m.Progress(ctx, "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutStateAwaitingVerification, loaded.State)
	assert.Equal(t, "REF123", loaded.Reference)
	assert.Equal(t, "12 Harbor Lane", loaded.ShippingAddress)
}

func TestProgress_UnknownTokenIsIdle(t *testing.T) {
	m := newTestManager(t)

	progress, err := m.Progress(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutStateIdle, progress.State)
	assert.Empty(t, progress.Reference)
}

func TestRotateToken_CarriesProgress(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetToken(ctx, rec, "tok-old"))
	require.NoError(t, m.SaveProgress(ctx, "tok-old", CheckoutProgress{
		State:     domain.CheckoutStateAwaitingVerification,
		Reference: "REF123",
	}))

	rec = httptest.NewRecorder()
	require.NoError(t, m.RotateToken(ctx, rec, "tok-old", "tok-new"))

	cookie := tokenCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "tok-new", cookie.Value)

	progress, err := m.Progress(ctx, "tok-new")
	require.NoError(t, err)
	assert.Equal(t, "REF123", progress.Reference)

	_, err = m.store.Get(ctx, "tok-old")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestShippingDetailsRoundTrip(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	details := map[string]string{"address": "12 Harbor Lane", "city": "Lagos"}
	require.NoError(t, m.SaveShippingDetails(ctx, "tok-abc", details))

	loaded, err := m.ShippingDetails(ctx, "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, details, loaded)
}

func TestBoltStore_ExpiredRecordNotReturned(t *testing.T) {
	store, err := NewBoltStore(filepath.Join(t.TempDir(), "sessions.db"), 0)
	require.NoError(t, err)
	defer store.Close()

	rec := newRecord("tok-expired", -time.Minute)
	require.NoError(t, store.Put(context.Background(), rec))

	_, err = store.Get(context.Background(), "tok-expired")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
