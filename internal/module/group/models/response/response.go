package response

import "github.com/shopspring/decimal"

type GroupMember struct {
	ID               string          `json:"id"`
	Position         int             `json:"position"`
	Name             string          `json:"name"`
	ServiceID        string          `json:"service_id"`
	PreferredStaffID string          `json:"preferred_staff_id,omitempty"`
	StaffID          string          `json:"staff_id,omitempty"`
	DurationMinutes  int             `json:"duration_minutes"`
	FinalAmount      decimal.Decimal `json:"final_amount"`
	AppointmentID    string          `json:"appointment_id,omitempty"`
}

type GroupBooking struct {
	ID               string          `json:"id"`
	LeadCustomerID   string          `json:"lead_customer_id"`
	TotalMembers     int             `json:"total_members"`
	ConfirmedMembers int             `json:"confirmed_members"`
	SchedulingMode   string          `json:"scheduling_mode"`
	BookingDate      string          `json:"booking_date"`
	StartTime        string          `json:"start_time"`
	EndTime          string          `json:"end_time"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	DepositAmount    decimal.Decimal `json:"deposit_amount"`
	BalanceDue       decimal.Decimal `json:"balance_due"`
	PaymentStatus    string          `json:"payment_status"`
	Status           string          `json:"status"`
	Members          []GroupMember   `json:"members"`
}

type Assignment struct {
	MemberID        string `json:"member_id"`
	StaffID         string `json:"staff_id"`
	AppointmentID   string `json:"appointment_id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

type Schedule struct {
	GroupBookingID string       `json:"group_booking_id"`
	Status         string       `json:"status"`
	Assignments    []Assignment `json:"assignments"`
}
