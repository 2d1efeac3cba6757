package entity

import (
	"database/sql"
	"fmt"
	"time"

	"salon-booking-service/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SchedulingMode string

const (
	ModeParallel   SchedulingMode = "parallel"
	ModeSequential SchedulingMode = "sequential"
	ModeStaggered  SchedulingMode = "staggered"
)

var SchedulingModes = []SchedulingMode{ModeParallel, ModeSequential, ModeStaggered}

type GroupStatus string

const (
	GroupPending    GroupStatus = "pending"
	GroupConfirmed  GroupStatus = "confirmed"
	GroupInProgress GroupStatus = "in_progress"
	GroupCompleted  GroupStatus = "completed"
	GroupCancelled  GroupStatus = "cancelled"
	GroupNoShow     GroupStatus = "no_show"
)

var GroupStatuses = []GroupStatus{GroupPending, GroupConfirmed, GroupInProgress, GroupCompleted, GroupCancelled, GroupNoShow}

type PaymentStatus string

const (
	PaymentUnpaid      PaymentStatus = "unpaid"
	PaymentDepositPaid PaymentStatus = "deposit_paid"
	PaymentPaid        PaymentStatus = "paid"
	PaymentRefunded    PaymentStatus = "refunded"
)

var PaymentStatuses = []PaymentStatus{PaymentUnpaid, PaymentDepositPaid, PaymentPaid, PaymentRefunded}

type GroupBooking struct {
	ID               uuid.UUID       `db:"id"`
	LeadCustomerID   string          `db:"lead_customer_id"`
	TotalMembers     int             `db:"total_members"`
	ConfirmedMembers int             `db:"confirmed_members"`
	SchedulingMode   SchedulingMode  `db:"scheduling_mode"`
	StaggerMinutes   int             `db:"stagger_minutes"`
	BookingDate      time.Time       `db:"booking_date"`
	StartTime        string          `db:"start_time"`
	EndTime          string          `db:"end_time"`
	Subtotal         decimal.Decimal `db:"subtotal"`
	DiscountAmount   decimal.Decimal `db:"discount_amount"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	DepositAmount    decimal.Decimal `db:"deposit_amount"`
	BalanceDue       decimal.Decimal `db:"balance_due"`
	PaymentStatus    PaymentStatus   `db:"payment_status"`
	Status           GroupStatus     `db:"status"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        sql.NullTime    `db:"updated_at"`
}

type GroupMember struct {
	ID               uuid.UUID       `db:"id"`
	GroupBookingID   uuid.UUID       `db:"group_booking_id"`
	Position         int             `db:"position"`
	Name             string          `db:"name"`
	ServiceID        string          `db:"service_id"`
	PreferredStaffID sql.NullString  `db:"preferred_staff_id"`
	StaffID          sql.NullString  `db:"staff_id"`
	DurationMinutes  int             `db:"duration_minutes"`
	FinalAmount      decimal.Decimal `db:"final_amount"`
	AppointmentID    sql.NullString  `db:"appointment_id"`
}

// CheckInvariants verifies the money and roster rules of a group booking
// against its members.
func (g GroupBooking) CheckInvariants(members []GroupMember) error {
	if g.ConfirmedMembers > g.TotalMembers {
		return fmt.Errorf("confirmed members %d exceed total members %d", g.ConfirmedMembers, g.TotalMembers)
	}
	if len(members) != g.TotalMembers {
		return fmt.Errorf("roster has %d members, booking expects %d", len(members), g.TotalMembers)
	}

	var memberSum money.Cents
	for _, m := range members {
		memberSum += money.FromDecimal(m.FinalAmount)
	}
	discount := money.FromDecimal(g.DiscountAmount)
	total := money.FromDecimal(g.TotalAmount)
	deposit := money.FromDecimal(g.DepositAmount)

	if memberSum-discount != total {
		return fmt.Errorf("member amounts %s minus discount %s do not reconcile to total %s", memberSum, discount, total)
	}
	if deposit > total {
		return fmt.Errorf("deposit %s exceeds total %s", deposit, total)
	}
	if money.FromDecimal(g.BalanceDue) != total-deposit {
		return fmt.Errorf("balance due %s does not equal total %s minus deposit %s", money.FromDecimal(g.BalanceDue), total, deposit)
	}
	return nil
}
