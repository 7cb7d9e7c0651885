// Package session owns every piece of state the gateway persists on behalf of
// a browser: the backend session token (mirrored into a cookie for the route
// gate) and the checkout progress that survives a page reload.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/OgheneDev/technest-frontend-sub001/internal/domain"
)

var ErrSessionNotFound = errors.New("session not found")

// CheckoutProgress is the persisted checkout flow state: active step, the
// shipping form and the in-flight payment reference. Cleared on success.
type CheckoutProgress struct {
	State            domain.CheckoutState `json:"state"`
	ActiveStep       int                  `json:"activeStep"`
	ShippingAddress  string               `json:"shippingAddress"`
	PaymentMethod    string               `json:"paymentMethod"`
	Reference        string               `json:"reference"`
	AuthorizationURL string               `json:"authorizationUrl,omitempty"`
	LastError        string               `json:"lastError,omitempty"`
}

// Record is the per-token session state.
type Record struct {
	Token           string            `json:"token"`
	Checkout        CheckoutProgress  `json:"checkout"`
	ShippingDetails map[string]string `json:"shippingDetails,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	ExpiresAt       time.Time         `json:"expiresAt"`
}

func (r *Record) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && now.After(r.ExpiresAt)
}

// Store is the persistence behind the session manager. Consumers define this
// interface, not the bbolt or redis implementation.
type Store interface {
	Put(ctx context.Context, rec *Record) error
	Get(ctx context.Context, token string) (*Record, error)
	Delete(ctx context.Context, token string) error
	Close() error
}

func newRecord(token string, ttl time.Duration) *Record {
	now := time.Now()
	return &Record{
		Token: token,
		Checkout: CheckoutProgress{
			State: domain.CheckoutStateIdle,
		},
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}
