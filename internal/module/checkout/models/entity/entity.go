package entity

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash            PaymentMethod = "CASH"
	PaymentCheck           PaymentMethod = "CHECK"
	PaymentCredit          PaymentMethod = "CREDIT"
	PaymentDebit           PaymentMethod = "DEBIT"
	PaymentGiftCertificate PaymentMethod = "GIFT_CERTIFICATE"
)

// PaymentMethods is the single source of accepted methods. The payments
// table CHECK constraint is generated from it.
var PaymentMethods = []PaymentMethod{
	PaymentCash,
	PaymentCheck,
	PaymentCredit,
	PaymentDebit,
	PaymentGiftCertificate,
}

func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

type TransactionStatus string

const (
	TransactionPending  TransactionStatus = "PENDING"
	TransactionPaid     TransactionStatus = "PAID"
	TransactionRefunded TransactionStatus = "REFUNDED"
)

var TransactionStatuses = []TransactionStatus{TransactionPending, TransactionPaid, TransactionRefunded}

type ItemType string

const (
	ItemService ItemType = "service"
	ItemProduct ItemType = "product"
)

var ItemTypes = []ItemType{ItemService, ItemProduct}

type Transaction struct {
	ID             uuid.UUID         `db:"id"`
	IdempotencyKey sql.NullString    `db:"idempotency_key"`
	CustomerID     sql.NullString    `db:"customer_id"`
	StaffID        string            `db:"staff_id"`
	Subtotal       decimal.Decimal   `db:"subtotal"`
	TaxAmount      decimal.Decimal   `db:"tax_amount"`
	TipAmount      decimal.Decimal   `db:"tip_amount"`
	TotalAmount    decimal.Decimal   `db:"total_amount"`
	Status         TransactionStatus `db:"status"`
	CheckoutTime   time.Time         `db:"checkout_time"`
}

type TransactionItem struct {
	ID            uuid.UUID       `db:"id"`
	TransactionID uuid.UUID       `db:"transaction_id"`
	ItemType      ItemType        `db:"item_type"`
	ItemID        string          `db:"item_id"`
	Quantity      int             `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	Discount      decimal.Decimal `db:"discount"`
	StaffID       sql.NullString  `db:"staff_id"`
	AppointmentID sql.NullString  `db:"appointment_id"`
}

type Payment struct {
	ID            uuid.UUID       `db:"id"`
	TransactionID uuid.UUID       `db:"transaction_id"`
	Method        PaymentMethod   `db:"method"`
	Amount        decimal.Decimal `db:"amount"`
}
