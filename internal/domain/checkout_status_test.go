package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    CheckoutState
		to      CheckoutState
		allowed bool
	}{
		{"idle to initializing", CheckoutStateIdle, CheckoutStateInitializing, true},
		{"idle to verifying via redirect callback", CheckoutStateIdle, CheckoutStateVerifying, true},
		{"idle cannot skip to succeeded", CheckoutStateIdle, CheckoutStateSucceeded, false},
		{"initializing to awaiting", CheckoutStateInitializing, CheckoutStateAwaitingVerification, true},
		{"initializing back to idle on failure", CheckoutStateInitializing, CheckoutStateIdle, true},
		{"awaiting to verifying", CheckoutStateAwaitingVerification, CheckoutStateVerifying, true},
		{"awaiting back to form", CheckoutStateAwaitingVerification, CheckoutStateIdle, true},
		{"verifying to succeeded", CheckoutStateVerifying, CheckoutStateSucceeded, true},
		{"verifying to failed", CheckoutStateVerifying, CheckoutStateFailed, true},
		{"verifying cannot re-enter awaiting", CheckoutStateVerifying, CheckoutStateAwaitingVerification, false},
		{"failed retries verification", CheckoutStateFailed, CheckoutStateVerifying, true},
		{"failed back to form", CheckoutStateFailed, CheckoutStateIdle, true},
		{"succeeded is terminal", CheckoutStateSucceeded, CheckoutStateVerifying, false},
		{"succeeded cannot restart directly", CheckoutStateSucceeded, CheckoutStateInitializing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransitionTo(tt.from, tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, CheckoutStateSucceeded.IsTerminal())
	assert.True(t, CheckoutStateFailed.IsTerminal())
	assert.False(t, CheckoutStateIdle.IsTerminal())
	assert.False(t, CheckoutStateAwaitingVerification.IsTerminal())
	assert.False(t, CheckoutStateVerifying.IsTerminal())
}
