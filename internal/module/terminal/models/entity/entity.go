package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type CheckoutStatus string

const (
	CheckoutCreated    CheckoutStatus = "CREATED"
	CheckoutInProgress CheckoutStatus = "IN_PROGRESS"
	CheckoutCompleted  CheckoutStatus = "COMPLETED"
	CheckoutCanceled   CheckoutStatus = "CANCELED"
)

var CheckoutStatuses = []CheckoutStatus{CheckoutCreated, CheckoutInProgress, CheckoutCompleted, CheckoutCanceled}

// Rank orders statuses along the checkout lifecycle. COMPLETED and
// CANCELED are both final and share the top rank; an unknown status ranks 0.
func (s CheckoutStatus) Rank() int {
	switch s {
	case CheckoutCreated:
		return 1
	case CheckoutInProgress:
		return 2
	case CheckoutCompleted, CheckoutCanceled:
		return 3
	default:
		return 0
	}
}

func (s CheckoutStatus) Final() bool {
	return s.Rank() == 3
}

type TerminalCheckout struct {
	ID            string          `db:"id"`
	DeviceID      sql.NullString  `db:"device_id"`
	Amount        decimal.Decimal `db:"amount"`
	TipAmount     decimal.Decimal `db:"tip_amount"`
	Currency      string          `db:"currency"`
	Status        CheckoutStatus  `db:"status"`
	ReferenceID   sql.NullString  `db:"reference_id"`
	CancelReason  sql.NullString  `db:"cancel_reason"`
	TransactionID sql.NullString  `db:"transaction_id"`
	AppointmentID sql.NullString  `db:"appointment_id"`
	CustomerID    sql.NullString  `db:"customer_id"`
	StaffID       sql.NullString  `db:"staff_id"`
	// CartItems is the JSON cart snapshot taken when the checkout was sent
	// to the terminal.
	CartItems []byte         `db:"cart_items"`
	LastError sql.NullString `db:"last_error"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt sql.NullTime   `db:"updated_at"`
}
