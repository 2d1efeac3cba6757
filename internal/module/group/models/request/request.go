package request

import "github.com/shopspring/decimal"

type GroupMember struct {
	Name             string          `json:"name" validate:"required,max=120"`
	ServiceID        string          `json:"service_id" validate:"required"`
	PreferredStaffID string          `json:"preferred_staff_id" validate:"omitempty"`
	DurationMinutes  int             `json:"duration_minutes" validate:"required,min=5,max=720"`
	Price            decimal.Decimal `json:"price" validate:"min=0"`
}

type CreateGroupBooking struct {
	LeadCustomerID string          `json:"lead_customer_id" validate:"required"`
	SchedulingMode string          `json:"scheduling_mode" validate:"required,oneof=parallel sequential staggered"`
	StaggerMinutes int             `json:"stagger_minutes" validate:"omitempty,min=5,max=240"`
	BookingDate    string          `json:"booking_date" validate:"required,datetime=2006-01-02"`
	StartTime      string          `json:"start_time" validate:"required,datetime=15:04"`
	EndTime        string          `json:"end_time" validate:"required,datetime=15:04"`
	DiscountAmount decimal.Decimal `json:"discount_amount" validate:"min=0"`
	DepositAmount  decimal.Decimal `json:"deposit_amount" validate:"min=0"`
	Members        []GroupMember   `json:"members" validate:"required,min=1,max=50,dive"`
}

type ScheduleGroupBooking struct {
	CandidateStaff []string `json:"candidate_staff" validate:"omitempty,dive,required"`
}
