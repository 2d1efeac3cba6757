// Package schema holds the Postgres DDL the service runs against. Enum
// CHECK constraints are generated from the Go enums so the two cannot
// drift apart.
package schema

import (
	"fmt"
	"strings"

	bookingentity "salon-booking-service/internal/module/booking/models/entity"
	checkoutentity "salon-booking-service/internal/module/checkout/models/entity"
	groupentity "salon-booking-service/internal/module/group/models/entity"
	terminalentity "salon-booking-service/internal/module/terminal/models/entity"
)

// oneOf renders `column IN ('a', 'b')` for a CHECK constraint.
func oneOf[T ~string](column string, values []T) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, "'"+strings.ReplaceAll(string(v), "'", "''")+"'")
	}
	return fmt.Sprintf("%s IN (%s)", column, strings.Join(quoted, ", "))
}

// Statements returns the DDL in dependency order. Every statement is safe
// to run against an already migrated database.
func Statements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS staff (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS customers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS transactions (
	id UUID PRIMARY KEY,
	idempotency_key TEXT UNIQUE,
	customer_id TEXT REFERENCES customers (id) ON DELETE SET NULL,
	staff_id TEXT NOT NULL REFERENCES staff (id),
	subtotal NUMERIC(12, 2) NOT NULL,
	tax_amount NUMERIC(12, 2) NOT NULL,
	tip_amount NUMERIC(12, 2) NOT NULL DEFAULT 0,
	total_amount NUMERIC(12, 2) NOT NULL,
	status TEXT NOT NULL CHECK (` + oneOf("status", checkoutentity.TransactionStatuses) + `),
	checkout_time TIMESTAMPTZ NOT NULL
)`,
		// staff_id stays NULL for staggered group members until the desk
		// assigns someone.
		`CREATE TABLE IF NOT EXISTS appointments (
	id UUID PRIMARY KEY,
	staff_id TEXT REFERENCES staff (id),
	customer_id TEXT REFERENCES customers (id) ON DELETE SET NULL,
	appointment_date DATE NOT NULL,
	start_time TEXT NOT NULL,
	duration_minutes INTEGER NOT NULL CHECK (duration_minutes >= 0),
	status TEXT NOT NULL CHECK (` + oneOf("status", bookingentity.AppointmentStatuses) + `),
	transaction_id UUID REFERENCES transactions (id),
	group_member_id UUID,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ
)`,
		`CREATE INDEX IF NOT EXISTS appointments_staff_date_idx ON appointments (staff_id, appointment_date)`,
		`CREATE TABLE IF NOT EXISTS group_bookings (
	id UUID PRIMARY KEY,
	lead_customer_id TEXT NOT NULL REFERENCES customers (id),
	total_members INTEGER NOT NULL CHECK (total_members > 0),
	confirmed_members INTEGER NOT NULL DEFAULT 0 CHECK (confirmed_members <= total_members),
	scheduling_mode TEXT NOT NULL CHECK (` + oneOf("scheduling_mode", groupentity.SchedulingModes) + `),
	stagger_minutes INTEGER NOT NULL DEFAULT 0,
	booking_date DATE NOT NULL,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	subtotal NUMERIC(12, 2) NOT NULL,
	discount_amount NUMERIC(12, 2) NOT NULL DEFAULT 0,
	total_amount NUMERIC(12, 2) NOT NULL,
	deposit_amount NUMERIC(12, 2) NOT NULL DEFAULT 0 CHECK (deposit_amount <= total_amount),
	balance_due NUMERIC(12, 2) NOT NULL,
	payment_status TEXT NOT NULL CHECK (` + oneOf("payment_status", groupentity.PaymentStatuses) + `),
	status TEXT NOT NULL CHECK (` + oneOf("status", groupentity.GroupStatuses) + `),
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ
)`,
		`CREATE TABLE IF NOT EXISTS group_members (
	id UUID PRIMARY KEY,
	group_booking_id UUID NOT NULL REFERENCES group_bookings (id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	service_id TEXT NOT NULL,
	preferred_staff_id TEXT REFERENCES staff (id),
	staff_id TEXT REFERENCES staff (id),
	duration_minutes INTEGER NOT NULL CHECK (duration_minutes > 0),
	final_amount NUMERIC(12, 2) NOT NULL,
	appointment_id UUID REFERENCES appointments (id),
	UNIQUE (group_booking_id, position)
)`,
		`CREATE TABLE IF NOT EXISTS transaction_items (
	id UUID PRIMARY KEY,
	transaction_id UUID NOT NULL REFERENCES transactions (id) ON DELETE CASCADE,
	item_type TEXT NOT NULL CHECK (` + oneOf("item_type", checkoutentity.ItemTypes) + `),
	item_id TEXT NOT NULL,
	quantity INTEGER NOT NULL CHECK (quantity > 0),
	unit_price NUMERIC(12, 2) NOT NULL CHECK (unit_price >= 0),
	discount NUMERIC(12, 2) NOT NULL DEFAULT 0,
	staff_id TEXT REFERENCES staff (id),
	appointment_id UUID REFERENCES appointments (id)
)`,
		`CREATE TABLE IF NOT EXISTS payments (
	id UUID PRIMARY KEY,
	transaction_id UUID NOT NULL REFERENCES transactions (id) ON DELETE CASCADE,
	method TEXT NOT NULL CHECK (` + oneOf("method", checkoutentity.PaymentMethods) + `),
	amount NUMERIC(12, 2) NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS terminal_checkouts (
	id TEXT PRIMARY KEY,
	device_id TEXT,
	amount NUMERIC(12, 2) NOT NULL DEFAULT 0,
	tip_amount NUMERIC(12, 2) NOT NULL DEFAULT 0,
	currency TEXT NOT NULL,
	status TEXT NOT NULL CHECK (` + oneOf("status", terminalentity.CheckoutStatuses) + `),
	reference_id TEXT,
	cancel_reason TEXT,
	transaction_id UUID REFERENCES transactions (id),
	appointment_id UUID REFERENCES appointments (id),
	customer_id TEXT,
	staff_id TEXT,
	cart_items JSONB,
	last_error TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ
)`,
	}
}
