package domain

// Order is the backend's checkout record. Created in a pending state by
// initialize, moved to a terminal state by verify. The gateway never mutates
// it directly, it only holds the payment reference while verification is in
// flight.
type Order struct {
	ID               string     `json:"_id"`
	ShippingAddress  string     `json:"shippingAddress"`
	PaymentMethod    string     `json:"paymentMethod"`
	Status           string     `json:"status"`
	PaymentReference string     `json:"paymentReference"`
	Products         []CartItem `json:"products,omitempty"`
	TotalPrice       float64    `json:"totalPrice"`
	CreatedAt        string     `json:"createdAt"`
}

// PaymentSession is what checkout initialization hands back: the reference we
// verify against later and the external payment page to send the user to.
type PaymentSession struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorizationUrl"`
	AccessCode       string `json:"accessCode,omitempty"`
}

// VerifyResult is the backend's answer to a verification call.
type VerifyResult struct {
	Status    string  `json:"status"`
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount,omitempty"`
}

// PaymentStatusSuccess is the only verify status that completes a checkout.
const PaymentStatusSuccess = "success"
