package repositories

import (
	"context"
	"time"

	"salon-booking-service/internal/module/booking/models/entity"
	"salon-booking-service/internal/pkg/errors"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type repositories struct {
	db      *sqlx.DB
	log     *otelzap.Logger
	timeout time.Duration
}

type Repositories interface {
	FindActiveAppointmentsByStaffAndDate(ctx context.Context, staffID string, date time.Time) ([]entity.Appointment, error)
}

func New(db *sqlx.DB, log *otelzap.Logger, timeout time.Duration) Repositories {
	return &repositories{
		db:      db,
		log:     log,
		timeout: timeout,
	}
}

const queryActiveAppointments = `SELECT id, staff_id, customer_id, appointment_date, start_time, duration_minutes, status, transaction_id, group_member_id, created_at, updated_at
FROM appointments
WHERE staff_id = $1 AND appointment_date = $2 AND status <> $3
ORDER BY start_time`

// FindActiveAppointmentsByStaffAndDate implements Repositories.
func (r *repositories) FindActiveAppointmentsByStaffAndDate(ctx context.Context, staffID string, date time.Time) ([]entity.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var appointments []entity.Appointment
	err := r.db.SelectContext(ctx, &appointments, queryActiveAppointments, staffID, date.Format("2006-01-02"), string(entity.AppointmentCancelled))
	if err != nil {
		r.log.Ctx(ctx).Error("error find appointments by staff and date", zap.Error(err), zap.String("staff_id", staffID))
		return nil, errors.FromStore(err, "error find appointments by staff and date")
	}
	return appointments, nil
}
