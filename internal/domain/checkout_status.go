package domain

// CheckoutState is the client-side checkout flow state. The flow is driven by
// one transition table instead of a collection of loading booleans, so every
// step the UI can observe has exactly one name.
type CheckoutState string

const (
	CheckoutStateIdle                 CheckoutState = "IDLE"
	CheckoutStateInitializing         CheckoutState = "INITIALIZING"
	CheckoutStateAwaitingVerification CheckoutState = "AWAITING_VERIFICATION"
	CheckoutStateVerifying            CheckoutState = "VERIFYING"
	CheckoutStateSucceeded            CheckoutState = "SUCCEEDED"
	CheckoutStateFailed               CheckoutState = "FAILED"
)

func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStateSucceeded || s == CheckoutStateFailed
}

// String representation (for logging)
func (s CheckoutState) String() string {
	return string(s)
}

var checkoutTransitions = map[CheckoutState][]CheckoutState{
	// A redirect callback carrying a reference may land on a session whose
	// progress was lost, so verification is reachable straight from idle.
	CheckoutStateIdle:                 {CheckoutStateInitializing, CheckoutStateVerifying},
	CheckoutStateInitializing:         {CheckoutStateAwaitingVerification, CheckoutStateIdle},
	CheckoutStateAwaitingVerification: {CheckoutStateVerifying, CheckoutStateIdle},
	CheckoutStateVerifying:            {CheckoutStateSucceeded, CheckoutStateFailed},
	// FAILED is retryable: the user can re-attempt verification with the same
	// reference or go back to the shipping form.
	CheckoutStateFailed: {CheckoutStateVerifying, CheckoutStateIdle},
}

// CanTransitionTo reports whether moving from one checkout state to another is
// legal. SUCCEEDED is terminal and has no outgoing transitions.
func CanTransitionTo(from, to CheckoutState) bool {
	for _, next := range checkoutTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
