package response

// WebhookAck is the body returned to the terminal provider.
type WebhookAck struct {
	Success   bool   `json:"success"`
	Duplicate bool   `json:"duplicate,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message,omitempty"`
}

type TerminalCheckout struct {
	CheckoutID    string `json:"checkout_id"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`
}
