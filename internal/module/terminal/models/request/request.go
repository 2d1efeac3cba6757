package request

import (
	checkoutrequest "salon-booking-service/internal/module/checkout/models/request"
)

// Money is an amount in the smallest currency unit, as the terminal
// provider sends it.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type DeviceOptions struct {
	DeviceID string `json:"device_id"`
}

type Checkout struct {
	ID            string        `json:"id"`
	DeviceOptions DeviceOptions `json:"device_options"`
	AmountMoney   Money         `json:"amount_money"`
	TipMoney      Money         `json:"tip_money"`
	Status        string        `json:"status"`
	ReferenceID   string        `json:"reference_id"`
	CancelReason  string        `json:"cancel_reason"`
}

type WebhookEvent struct {
	MerchantID string `json:"merchant_id"`
	Type       string `json:"type"`
	EventID    string `json:"event_id"`
	CreatedAt  string `json:"created_at"`
	Data       struct {
		Type   string `json:"type"`
		ID     string `json:"id"`
		Object struct {
			Checkout Checkout `json:"checkout"`
		} `json:"object"`
	} `json:"data"`
}

// RegisterCheckout records what is being paid for before the terminal
// starts reporting on the checkout.
type RegisterCheckout struct {
	CheckoutID    string                     `json:"checkout_id" validate:"required,max=255"`
	DeviceID      string                     `json:"device_id" validate:"omitempty"`
	Currency      string                     `json:"currency" validate:"omitempty,len=3"`
	StaffID       string                     `json:"staff_id" validate:"required"`
	CustomerID    string                     `json:"customer_id" validate:"omitempty"`
	AppointmentID string                     `json:"appointment_id" validate:"omitempty,uuid"`
	CartItems     []checkoutrequest.CartItem `json:"cart_items" validate:"required,min=1,dive"`
}
