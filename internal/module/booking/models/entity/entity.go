package entity

import (
	"database/sql"
	"fmt"
	"time"

	"salon-booking-service/internal/pkg/timegrid"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentRequested    AppointmentStatus = "requested"
	AppointmentAccepted     AppointmentStatus = "accepted"
	AppointmentConfirmed    AppointmentStatus = "confirmed"
	AppointmentReadyToStart AppointmentStatus = "ready_to_start"
	AppointmentInProgress   AppointmentStatus = "in_progress"
	AppointmentCompleted    AppointmentStatus = "completed"
	AppointmentNoShow       AppointmentStatus = "no_show"
	AppointmentCancelled    AppointmentStatus = "cancelled"
	AppointmentPersonalTask AppointmentStatus = "personal_task"
)

// AppointmentStatuses is the full status enum; the store CHECK constraint is
// generated from it.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentRequested,
	AppointmentAccepted,
	AppointmentConfirmed,
	AppointmentReadyToStart,
	AppointmentInProgress,
	AppointmentCompleted,
	AppointmentNoShow,
	AppointmentCancelled,
	AppointmentPersonalTask,
}

type Appointment struct {
	ID              uuid.UUID         `db:"id"`
	StaffID         string            `db:"staff_id"`
	CustomerID      sql.NullString    `db:"customer_id"`
	AppointmentDate time.Time         `db:"appointment_date"`
	StartTime       string            `db:"start_time"`
	DurationMinutes int               `db:"duration_minutes"`
	Status          AppointmentStatus `db:"status"`
	TransactionID   sql.NullString    `db:"transaction_id"`
	GroupMemberID   sql.NullString    `db:"group_member_id"`
	CreatedAt       time.Time         `db:"created_at"`
	UpdatedAt       sql.NullTime      `db:"updated_at"`
}

// Interval returns the [start, start+duration) range the appointment occupies.
func (a Appointment) Interval() (timegrid.Interval, error) {
	start, err := timegrid.ParseClock(a.StartTime)
	if err != nil {
		return timegrid.Interval{}, err
	}
	if a.DurationMinutes < 0 {
		return timegrid.Interval{}, fmt.Errorf("appointment %s: negative duration", a.ID)
	}
	return timegrid.Interval{Start: start, Duration: time.Duration(a.DurationMinutes) * time.Minute}, nil
}
