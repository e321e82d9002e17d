package types

// PaymentResult carries gateway metadata recorded against an order once a
// payment provider reports back. Empty for cash-on-delivery orders.
type PaymentResult struct {
	ID           string `json:"id,omitempty"`
	Status       string `json:"status,omitempty"`
	UpdateTime   string `json:"update_time,omitempty"`
	EmailAddress string `json:"email_address,omitempty"`
}
