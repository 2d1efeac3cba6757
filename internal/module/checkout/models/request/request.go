package request

import "github.com/shopspring/decimal"

type CartItem struct {
	ItemType      string          `json:"item_type" validate:"required,oneof=service product"`
	ItemID        string          `json:"item_id" validate:"required"`
	Quantity      int             `json:"quantity" validate:"required,min=1"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"min=0"`
	Discount      decimal.Decimal `json:"discount" validate:"min=0"`
	StaffID       string          `json:"staff_id" validate:"omitempty"`
	AppointmentID string          `json:"appointment_id" validate:"omitempty,uuid"`
}

type PaymentInstruction struct {
	Method string          `json:"method" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"min=0"`
}

type Finalize struct {
	CustomerID     string               `json:"customer_id" validate:"omitempty"`
	StaffID        string               `json:"staff_id" validate:"required"`
	CartItems      []CartItem           `json:"cart_items" validate:"required,min=1,dive"`
	PaymentMethods []PaymentInstruction `json:"payment_methods" validate:"required,min=1,dive"`
	TipAmount      decimal.Decimal      `json:"tip_amount" validate:"min=0"`
	IdempotencyKey string               `json:"idempotency_key" validate:"omitempty,max=255"`
	AppointmentID  string               `json:"appointment_id" validate:"omitempty,uuid"`
}

// LoyaltyAccrual is the payload of the loyalty retry task.
type LoyaltyAccrual struct {
	CustomerID    string `json:"customer_id"`
	TransactionID string `json:"transaction_id"`
	AmountCents   int64  `json:"amount_cents"`
}
