package response

import "github.com/shopspring/decimal"

type Finalized struct {
	TransactionID string          `json:"transaction_id"`
	Replayed      bool            `json:"replayed"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TipAmount     decimal.Decimal `json:"tip_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// TransactionFinalized is published once a sale is committed.
type TransactionFinalized struct {
	TransactionID  string          `json:"transaction_id"`
	CustomerID     string          `json:"customer_id,omitempty"`
	StaffID        string          `json:"staff_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	AppointmentIDs []string        `json:"appointment_ids,omitempty"`
}
