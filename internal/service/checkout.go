package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/OgheneDev/technest-frontend-sub001/internal/cache"
	"github.com/OgheneDev/technest-frontend-sub001/internal/domain"
	"github.com/OgheneDev/technest-frontend-sub001/internal/session"
)

var (
	ErrShippingAddressRequired = errors.New("shipping address is required")
	ErrPaymentMethodRequired   = errors.New("payment method is required")
	ErrNoPaymentReference      = errors.New("no payment verification in progress")
	ErrIllegalTransition       = errors.New("illegal checkout state transition")
)

type CheckoutAPI interface {
	InitializeCheckout(ctx context.Context, token, shippingAddress, paymentMethod string) (*domain.PaymentSession, error)
	VerifyPayment(ctx context.Context, token, reference string) (*domain.VerifyResult, error)
}

// ProgressStore persists checkout progress across requests and page reloads.
type ProgressStore interface {
	Progress(ctx context.Context, token string) (session.CheckoutProgress, error)
	SaveProgress(ctx context.Context, token string, progress session.CheckoutProgress) error
}

// CheckoutFlow drives the two-phase checkout protocol: initialize creates a
// pending order plus payment session on the backend, verify confirms the
// payment reference. All state movement goes through one transition table.
type CheckoutFlow struct {
	api      CheckoutAPI
	progress ProgressStore
	counts   *cache.CountCache
	locks    keyedMutex
}

func NewCheckoutFlow(api CheckoutAPI, progress ProgressStore, counts *cache.CountCache) *CheckoutFlow {
	return &CheckoutFlow{api: api, progress: progress, counts: counts}
}

// Progress returns the persisted flow state for token.
func (f *CheckoutFlow) Progress(ctx context.Context, token string) (session.CheckoutProgress, error) {
	return f.progress.Progress(ctx, token)
}

// Initialize validates the shipping form locally, then asks the backend for a
// payment session. A validation failure never issues a network call. On
// success the flow holds the payment reference and awaits verification; on
// backend failure it returns to idle with the backend's error surfaced.
func (f *CheckoutFlow) Initialize(ctx context.Context, token, shippingAddress, paymentMethod string) (session.CheckoutProgress, error) {
	shippingAddress = strings.TrimSpace(shippingAddress)
	paymentMethod = strings.TrimSpace(paymentMethod)
	if shippingAddress == "" {
		return session.CheckoutProgress{}, ErrShippingAddressRequired
	}
	if paymentMethod == "" {
		return session.CheckoutProgress{}, ErrPaymentMethodRequired
	}

	entry := f.locks.acquire(token)
	defer f.locks.release(token, entry)

	progress, err := f.progress.Progress(ctx, token)
	if err != nil {
		return session.CheckoutProgress{}, err
	}

	// Re-submitting the form abandons whatever the previous attempt left
	// behind; only an in-flight verification blocks a new initialize.
	if progress.State != domain.CheckoutStateIdle {
		if !domain.CanTransitionTo(progress.State, domain.CheckoutStateIdle) && progress.State != domain.CheckoutStateSucceeded {
			return progress, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, progress.State, domain.CheckoutStateInitializing)
		}
		progress = session.CheckoutProgress{State: domain.CheckoutStateIdle}
	}

	progress.State = domain.CheckoutStateInitializing
	progress.ShippingAddress = shippingAddress
	progress.PaymentMethod = paymentMethod
	progress.ActiveStep = 1

	paymentSession, err := f.api.InitializeCheckout(ctx, token, shippingAddress, paymentMethod)
	if err != nil {
		progress.State = domain.CheckoutStateIdle
		progress.LastError = err.Error()
		if saveErr := f.progress.SaveProgress(ctx, token, progress); saveErr != nil {
			log.Error().Err(saveErr).Msg("save checkout progress after failed initialize")
		}
		return progress, err
	}

	progress.State = domain.CheckoutStateAwaitingVerification
	progress.Reference = paymentSession.Reference
	progress.AuthorizationURL = paymentSession.AuthorizationURL
	progress.ActiveStep = 2
	progress.LastError = ""

	if err := f.progress.SaveProgress(ctx, token, progress); err != nil {
		return progress, fmt.Errorf("persist checkout progress: %w", err)
	}

	log.Info().Str("reference", paymentSession.Reference).Msg("checkout initialized")
	return progress, nil
}

// Verify confirms a payment reference. It is the single entry point for both
// the manual "Verify Payment" action and the redirect callback carrying a
// reference/trxref query parameter; a per-token lock serializes the two, so a
// second entrant observes the stored outcome instead of re-submitting.
func (f *CheckoutFlow) Verify(ctx context.Context, token, reference string) (session.CheckoutProgress, error) {
	entry := f.locks.acquire(token)
	defer f.locks.release(token, entry)

	progress, err := f.progress.Progress(ctx, token)
	if err != nil {
		return session.CheckoutProgress{}, err
	}

	if progress.State == domain.CheckoutStateSucceeded {
		// Double entry after success: nothing left to verify.
		return progress, nil
	}

	if reference == "" {
		reference = progress.Reference
	}
	if reference == "" {
		return progress, ErrNoPaymentReference
	}

	if !domain.CanTransitionTo(progress.State, domain.CheckoutStateVerifying) {
		return progress, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, progress.State, domain.CheckoutStateVerifying)
	}
	progress.State = domain.CheckoutStateVerifying

	result, err := f.api.VerifyPayment(ctx, token, reference)
	if err != nil {
		return f.fail(ctx, token, progress, err)
	}
	if result.Status != domain.PaymentStatusSuccess {
		return f.fail(ctx, token, progress, fmt.Errorf("payment verification returned status %q", result.Status))
	}

	// Success: drop the reference and the shipping form, invalidate the
	// header badge, send the user back to the shop.
	progress = session.CheckoutProgress{State: domain.CheckoutStateSucceeded}
	f.counts.Invalidate(token)

	if err := f.progress.SaveProgress(ctx, token, progress); err != nil {
		return progress, fmt.Errorf("persist checkout progress: %w", err)
	}

	log.Info().Str("reference", reference).Msg("payment verified")
	return progress, nil
}

// Reset returns a failed or pending flow to the shipping form. The form
// fields are kept so the user does not retype them.
func (f *CheckoutFlow) Reset(ctx context.Context, token string) (session.CheckoutProgress, error) {
	entry := f.locks.acquire(token)
	defer f.locks.release(token, entry)

	progress, err := f.progress.Progress(ctx, token)
	if err != nil {
		return session.CheckoutProgress{}, err
	}

	progress.State = domain.CheckoutStateIdle
	progress.Reference = ""
	progress.AuthorizationURL = ""
	progress.ActiveStep = 0
	progress.LastError = ""

	if err := f.progress.SaveProgress(ctx, token, progress); err != nil {
		return progress, err
	}
	return progress, nil
}

func (f *CheckoutFlow) fail(ctx context.Context, token string, progress session.CheckoutProgress, cause error) (session.CheckoutProgress, error) {
	progress.State = domain.CheckoutStateFailed
	progress.LastError = cause.Error()
	if saveErr := f.progress.SaveProgress(ctx, token, progress); saveErr != nil {
		log.Error().Err(saveErr).Msg("save checkout progress after failed verify")
	}
	return progress, cause
}
