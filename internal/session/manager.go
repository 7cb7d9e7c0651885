package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TokenCookieName is the cookie the route gate inspects. It carries the
// backend session token itself; the gate only checks presence, real
// authorization happens on every backend call.
const TokenCookieName = "frontendToken"

// Manager keeps the token cookie and the persisted session record in
// lockstep: every mutating call writes both. There is no reconciliation pass,
// so a failed store write is surfaced instead of being left to diverge
// silently.
type Manager struct {
	store  Store
	ttl    time.Duration
	secure bool
}

func NewManager(store Store, ttl time.Duration, secure bool) *Manager {
	return &Manager{store: store, ttl: ttl, secure: secure}
}

// SetToken persists a fresh session record for token and mirrors it into the
// cookie. Called on login, register and password rotation.
func (m *Manager) SetToken(ctx context.Context, w http.ResponseWriter, token string) error {
	if token == "" {
		return errors.New("empty session token")
	}
	if err := m.store.Put(ctx, newRecord(token, m.ttl)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		Secure:   m.secure,
	})
	return nil
}

// RotateToken replaces oldToken's session with newToken, carrying the
// checkout progress over. The backend invalidates the old token on password
// change; the gateway must not keep a record for it.
func (m *Manager) RotateToken(ctx context.Context, w http.ResponseWriter, oldToken, newToken string) error {
	rec, err := m.store.Get(ctx, oldToken)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	if err := m.SetToken(ctx, w, newToken); err != nil {
		return err
	}
	if rec != nil {
		fresh, getErr := m.store.Get(ctx, newToken)
		if getErr == nil {
			fresh.Checkout = rec.Checkout
			fresh.ShippingDetails = rec.ShippingDetails
			if putErr := m.store.Put(ctx, fresh); putErr != nil {
				return fmt.Errorf("carry over session state: %w", putErr)
			}
		}
	}
	return m.store.Delete(ctx, oldToken)
}

// RemoveToken deletes the persisted record and expires the cookie. Called on
// logout and account deletion.
func (m *Manager) RemoveToken(ctx context.Context, w http.ResponseWriter, token string) error {
	if token != "" {
		if err := m.store.Delete(ctx, token); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		Secure:   m.secure,
	})
	return nil
}

// TokenFromRequest returns the session token carried by the request, or "".
// The cookie is authoritative; a bearer header is accepted for non-browser
// clients.
func (m *Manager) TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			return token
		}
	}
	return ""
}

// Progress returns the stored checkout progress for token. A missing session
// yields a zero-value idle progress rather than an error: the flow controller
// treats "never checked out" and "progress lost" identically.
func (m *Manager) Progress(ctx context.Context, token string) (CheckoutProgress, error) {
	rec, err := m.store.Get(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		return newRecord(token, m.ttl).Checkout, nil
	}
	if err != nil {
		return CheckoutProgress{}, err
	}
	return rec.Checkout, nil
}

// SaveProgress writes checkout progress back, creating the record if the
// session row expired underneath a live cookie.
func (m *Manager) SaveProgress(ctx context.Context, token string, progress CheckoutProgress) error {
	rec, err := m.store.Get(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		rec = newRecord(token, m.ttl)
	} else if err != nil {
		return err
	}
	rec.Checkout = progress
	return m.store.Put(ctx, rec)
}

// ShippingDetails returns the saved shipping form fields, if any.
func (m *Manager) ShippingDetails(ctx context.Context, token string) (map[string]string, error) {
	rec, err := m.store.Get(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec.ShippingDetails, nil
}

func (m *Manager) SaveShippingDetails(ctx context.Context, token string, details map[string]string) error {
	rec, err := m.store.Get(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		rec = newRecord(token, m.ttl)
	} else if err != nil {
		return err
	}
	rec.ShippingDetails = details
	return m.store.Put(ctx, rec)
}
