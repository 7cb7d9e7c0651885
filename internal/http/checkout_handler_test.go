package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OgheneDev/technest-frontend-sub001/internal/cache"
	"github.com/OgheneDev/technest-frontend-sub001/internal/domain"
	"github.com/OgheneDev/technest-frontend-sub001/internal/service"
	"github.com/OgheneDev/technest-frontend-sub001/internal/session"
)

type checkoutAPIMock struct {
	mu           sync.Mutex
	initSession  *domain.PaymentSession
	initErr      error
	initCalls    int
	verifyResult *domain.VerifyResult
	verifyErr    error
}

func (m *checkoutAPIMock) InitializeCheckout(_ context.Context, _, _, _ string) (*domain.PaymentSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initCalls++
	if m.initErr != nil {
		return nil, m.initErr
	}
	return m.initSession, nil
}

func (m *checkoutAPIMock) VerifyPayment(_ context.Context, _, _ string) (*domain.VerifyResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	return m.verifyResult, nil
}

func newCheckoutRouter(t *testing.T, api service.CheckoutAPI, token string) http.Handler {
	t.Helper()
	store, err := session.NewBoltStore(filepath.Join(t.TempDir(), "sessions.db"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	sessions := session.NewManager(store, 7*24*time.Hour, false)
	counts := cache.NewCountCache(time.Minute)
	t.Cleanup(counts.Stop)

	flow := service.NewCheckoutFlow(api, sessions, counts)
	handler := NewCheckoutHandler(flow, nil, sessions, 5*time.Second)

	r := chi.NewRouter()
	r.Post("/api/checkout/initialize", handler.Initialize)
	r.Get("/api/checkout/verify/{reference}", handler.Verify)
	r.Get("/api/checkout/callback", handler.Callback)
	r.Get("/api/checkout/progress", handler.GetProgress)
	return withToken(token, r)
}

func TestInitialize_LocalValidationError(t *testing.T) {
	api := &checkoutAPIMock{}
	router := newCheckoutRouter(t, api, "tok")

	body, _ := json.Marshal(InitializeCheckoutRequestDTO{ShippingAddress: "  ", PaymentMethod: "card"})
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/initialize", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, api.initCalls)
}

func TestInitializeThenVerify_FullRoundTrip(t *testing.T) {
	api := &checkoutAPIMock{
		initSession:  &domain.PaymentSession{Reference: "REF123", AuthorizationURL: "https://pay.example/REF123"},
		verifyResult: &domain.VerifyResult{Status: domain.PaymentStatusSuccess},
	}
	router := newCheckoutRouter(t, api, "tok")

	body, _ := json.Marshal(InitializeCheckoutRequestDTO{ShippingAddress: "12 Harbor Lane", PaymentMethod: "card"})
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/initialize", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var progress CheckoutProgressDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &progress))
	assert.Equal(t, "AWAITING_VERIFICATION", progress.State)
	assert.Equal(t, "REF123", progress.Reference)

	req = httptest.NewRequest(http.MethodGet, "/api/checkout/verify/REF123", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	progress = CheckoutProgressDTO{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &progress))
	assert.Equal(t, "SUCCEEDED", progress.State)
	assert.Empty(t, progress.Reference)
	assert.Empty(t, progress.ShippingAddress)
	assert.Equal(t, "/shop", progress.RedirectTo)
}

func TestVerify_FailedStatusIsRetryableState(t *testing.T) {
	api := &checkoutAPIMock{
		initSession:  &domain.PaymentSession{Reference: "REF123"},
		verifyResult: &domain.VerifyResult{Status: "failed"},
	}
	router := newCheckoutRouter(t, api, "tok")

	body, _ := json.Marshal(InitializeCheckoutRequestDTO{ShippingAddress: "12 Harbor Lane", PaymentMethod: "card"})
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/initialize", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/checkout/verify/REF123", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var progress CheckoutProgressDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &progress))
	assert.Equal(t, "FAILED", progress.State)
	assert.Equal(t, "REF123", progress.Reference)
	assert.Empty(t, progress.RedirectTo)
}

func TestCallback_RedirectsToShopOnSuccess(t *testing.T) {
	api := &checkoutAPIMock{
		verifyResult: &domain.VerifyResult{Status: domain.PaymentStatusSuccess},
	}
	router := newCheckoutRouter(t, api, "tok")

	req := httptest.NewRequest(http.MethodGet, "/api/checkout/callback?trxref=REF123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/shop", rec.Header().Get("Location"))
}

func TestCallback_RedirectsToCheckoutOnFailure(t *testing.T) {
	api := &checkoutAPIMock{
		verifyResult: &domain.VerifyResult{Status: "abandoned"},
	}
	router := newCheckoutRouter(t, api, "tok")

	req := httptest.NewRequest(http.MethodGet, "/api/checkout/callback?reference=REF123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/checkout?status=failed", rec.Header().Get("Location"))
}

func TestProgress_SurvivesAcrossRequests(t *testing.T) {
	api := &checkoutAPIMock{
		initSession: &domain.PaymentSession{Reference: "REF123"},
	}
	router := newCheckoutRouter(t, api, "tok")

	body, _ := json.Marshal(InitializeCheckoutRequestDTO{ShippingAddress: "12 Harbor Lane", PaymentMethod: "card"})
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/initialize", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/checkout/progress", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var progress CheckoutProgressDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &progress))
	assert.Equal(t, "AWAITING_VERIFICATION", progress.State)
	assert.Equal(t, "REF123", progress.Reference)
	assert.Equal(t, "12 Harbor Lane", progress.ShippingAddress)
}
