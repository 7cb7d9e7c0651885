package gate

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OgheneDev/technest-frontend-sub001/internal/session"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		hasToken bool
		action   Action
		target   string
	}{
		{"protected path without token", "/cart", false, Redirect, "/login?from=%2Fcart"},
		{"checkout without token", "/checkout", false, Redirect, "/login?from=%2Fcheckout"},
		{"shop without token", "/shop", false, Redirect, "/login?from=%2Fshop"},
		{"home without token", "/", false, Allow, ""},
		{"login without token", "/login", false, Allow, ""},
		{"register without token", "/register", false, Allow, ""},
		{"forgot-password without token", "/forgot-password", false, Allow, ""},
		{"login with token bounces to shop", "/login", true, Redirect, "/shop"},
		{"register with token bounces to shop", "/register", true, Redirect, "/shop"},
		{"home with token stays allowed", "/", true, Allow, ""},
		{"protected path with token", "/cart", true, Allow, ""},
		{"profile with token", "/profile", true, Allow, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Decide(tt.path, tt.hasToken)
			assert.Equal(t, tt.action, decision.Action)
			assert.Equal(t, tt.target, decision.Target)
		})
	}
}

func TestMiddleware_RedirectsWithoutCookie(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/wishlist", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?from=%2Fwishlist", rec.Header().Get("Location"))
}

func TestMiddleware_AllowsWithCookie(t *testing.T) {
	called := false
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/wishlist", nil)
	req.AddCookie(&http.Cookie{Name: session.TokenCookieName, Value: "tok-123"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestMiddleware_EmptyCookieCountsAsAbsent(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: session.TokenCookieName, Value: ""})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
}
