package repositories

import (
	"context"
	"time"

	bookingentity "salon-booking-service/internal/module/booking/models/entity"
	"salon-booking-service/internal/module/group/models/entity"
	"salon-booking-service/internal/pkg/errors"

	"github.com/google/uuid"
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
	CreateGroupBooking(ctx context.Context, booking entity.GroupBooking, members []entity.GroupMember) error
	FindGroupBookingByID(ctx context.Context, id uuid.UUID) (entity.GroupBooking, error)
	FindGroupMembersByBookingID(ctx context.Context, groupBookingID uuid.UUID) ([]entity.GroupMember, error)
	// SaveAllocation writes every appointment of a scheduled group and
	// confirms the group in one transaction. A group that is no longer
	// pending yields a conflict and nothing is written.
	SaveAllocation(ctx context.Context, groupBookingID uuid.UUID, appointments []bookingentity.Appointment) error
}

func New(db *sqlx.DB, log *otelzap.Logger, timeout time.Duration) Repositories {
	return &repositories{
		db:      db,
		log:     log,
		timeout: timeout,
	}
}

const (
	queryInsertGroupBooking = `INSERT INTO group_bookings (id, lead_customer_id, total_members, confirmed_members, scheduling_mode, stagger_minutes, booking_date, start_time, end_time, subtotal, discount_amount, total_amount, deposit_amount, balance_due, payment_status, status, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	queryInsertGroupMember = `INSERT INTO group_members (id, group_booking_id, position, name, service_id, preferred_staff_id, duration_minutes, final_amount) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	queryFindGroupBooking = `SELECT id, lead_customer_id, total_members, confirmed_members, scheduling_mode, stagger_minutes, booking_date, start_time, end_time, subtotal, discount_amount, total_amount, deposit_amount, balance_due, payment_status, status, created_at, updated_at FROM group_bookings WHERE id = $1`

	queryFindGroupMembers = `SELECT id, group_booking_id, position, name, service_id, preferred_staff_id, staff_id, duration_minutes, final_amount, appointment_id FROM group_members WHERE group_booking_id = $1 ORDER BY position`

	queryInsertAppointment = `INSERT INTO appointments (id, staff_id, customer_id, appointment_date, start_time, duration_minutes, status, group_member_id, created_at) VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9)`

	queryLinkGroupMember = `UPDATE group_members SET appointment_id = $1, staff_id = NULLIF($2, '') WHERE id = $3 AND group_booking_id = $4`

	queryConfirmGroupBooking = `UPDATE group_bookings SET status = $1, confirmed_members = total_members, updated_at = $2 WHERE id = $3 AND status = $4`
)

// CreateGroupBooking implements Repositories.
func (r *repositories) CreateGroupBooking(ctx context.Context, booking entity.GroupBooking, members []entity.GroupMember) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.log.Ctx(ctx).Error("error starting transaction", zap.Error(err))
		return errors.FromStore(err, "error starting transaction")
	}

	_, err = tx.ExecContext(ctx, queryInsertGroupBooking,
		booking.ID.String(), booking.LeadCustomerID, booking.TotalMembers, booking.ConfirmedMembers,
		string(booking.SchedulingMode), booking.StaggerMinutes, booking.BookingDate.Format("2006-01-02"),
		booking.StartTime, booking.EndTime, booking.Subtotal, booking.DiscountAmount, booking.TotalAmount,
		booking.DepositAmount, booking.BalanceDue, string(booking.PaymentStatus), string(booking.Status), booking.CreatedAt)
	if err != nil {
		tx.Rollback()
		r.log.Ctx(ctx).Error("error insert group booking", zap.Error(err))
		return r.writeError(err, "error insert group booking",
			errors.Reference{Column: "lead_customer_id", Entity: "customer", ID: booking.LeadCustomerID})
	}

	for _, m := range members {
		_, err = tx.ExecContext(ctx, queryInsertGroupMember,
			m.ID.String(), booking.ID.String(), m.Position, m.Name, m.ServiceID, m.PreferredStaffID,
			m.DurationMinutes, m.FinalAmount)
		if err != nil {
			tx.Rollback()
			r.log.Ctx(ctx).Error("error insert group member", zap.Error(err), zap.String("member_id", m.ID.String()))
			return r.writeError(err, "error insert group member",
				errors.Reference{Column: "preferred_staff_id", Entity: "staff", ID: m.PreferredStaffID.String})
		}
	}

	if err = tx.Commit(); err != nil {
		r.log.Ctx(ctx).Error("error committing transaction", zap.Error(err))
		return errors.StoreWriteFailure("error committing transaction")
	}
	return nil
}

// FindGroupBookingByID implements Repositories.
func (r *repositories) FindGroupBookingByID(ctx context.Context, id uuid.UUID) (entity.GroupBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var booking entity.GroupBooking
	if err := r.db.GetContext(ctx, &booking, queryFindGroupBooking, id.String()); err != nil {
		r.log.Ctx(ctx).Error("error find group booking", zap.Error(err), zap.String("group_booking_id", id.String()))
		return entity.GroupBooking{}, errors.FromStore(err, "group booking not found")
	}
	return booking, nil
}

// FindGroupMembersByBookingID implements Repositories.
func (r *repositories) FindGroupMembersByBookingID(ctx context.Context, groupBookingID uuid.UUID) ([]entity.GroupMember, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var members []entity.GroupMember
	if err := r.db.SelectContext(ctx, &members, queryFindGroupMembers, groupBookingID.String()); err != nil {
		r.log.Ctx(ctx).Error("error find group members", zap.Error(err), zap.String("group_booking_id", groupBookingID.String()))
		return nil, errors.FromStore(err, "error find group members")
	}
	return members, nil
}

// SaveAllocation implements Repositories.
func (r *repositories) SaveAllocation(ctx context.Context, groupBookingID uuid.UUID, appointments []bookingentity.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.log.Ctx(ctx).Error("error starting transaction", zap.Error(err))
		return errors.FromStore(err, "error starting transaction")
	}

	for _, a := range appointments {
		_, err = tx.ExecContext(ctx, queryInsertAppointment,
			a.ID.String(), a.StaffID, a.CustomerID, a.AppointmentDate.Format("2006-01-02"), a.StartTime,
			a.DurationMinutes, string(a.Status), a.GroupMemberID, a.CreatedAt)
		if err != nil {
			tx.Rollback()
			r.log.Ctx(ctx).Error("error insert appointment", zap.Error(err), zap.String("staff_id", a.StaffID))
			return r.writeError(err, "error insert appointment",
				errors.Reference{Column: "staff_id", Entity: "staff", ID: a.StaffID},
				errors.Reference{Column: "customer_id", Entity: "customer", ID: a.CustomerID.String})
		}

		_, err = tx.ExecContext(ctx, queryLinkGroupMember, a.ID.String(), a.StaffID, a.GroupMemberID.String, groupBookingID.String())
		if err != nil {
			tx.Rollback()
			r.log.Ctx(ctx).Error("error link group member", zap.Error(err), zap.String("member_id", a.GroupMemberID.String))
			return r.writeError(err, "error link group member",
				errors.Reference{Column: "appointment_id", Entity: "appointment", ID: a.ID.String()},
				errors.Reference{Column: "staff_id", Entity: "staff", ID: a.StaffID})
		}
	}

	res, err := tx.ExecContext(ctx, queryConfirmGroupBooking,
		string(entity.GroupConfirmed), time.Now().UTC(), groupBookingID.String(), string(entity.GroupPending))
	if err != nil {
		tx.Rollback()
		r.log.Ctx(ctx).Error("error confirm group booking", zap.Error(err))
		return r.writeError(err, "error confirm group booking")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return errors.FromStore(err, "error confirm group booking")
	}
	if affected == 0 {
		tx.Rollback()
		return errors.Conflict("group booking is no longer pending")
	}

	if err = tx.Commit(); err != nil {
		r.log.Ctx(ctx).Error("error committing transaction", zap.Error(err))
		return errors.StoreWriteFailure("error committing transaction")
	}
	return nil
}

func (r *repositories) writeError(err error, message string, refs ...errors.Reference) error {
	if missing := errors.MissingReference(err, refs...); missing != nil {
		return missing
	}
	classified := errors.FromStore(err, message)
	if errors.Is(classified, errors.CodeTransient) {
		return errors.StoreWriteFailure(message)
	}
	return classified
}
