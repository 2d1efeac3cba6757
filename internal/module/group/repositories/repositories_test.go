package repositories_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	bookingentity "salon-booking-service/internal/module/booking/models/entity"
	"salon-booking-service/internal/module/group/models/entity"
	"salon-booking-service/internal/module/group/repositories"
	"salon-booking-service/internal/pkg/errors"
	log_internal "salon-booking-service/internal/pkg/log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlxmock "github.com/zhashkevych/go-sqlxmock"
)

var (
	mock sqlxmock.Sqlmock
	dbx  *sqlx.DB
	date = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
)

func setup() repositories.Repositories {
	dbx, mock, _ = sqlxmock.Newx()
	return repositories.New(dbx, log_internal.Nop(), time.Second)
}

func groupBooking() entity.GroupBooking {
	return entity.GroupBooking{
		ID:             uuid.New(),
		LeadCustomerID: "cust-1",
		TotalMembers:   1,
		SchedulingMode: entity.ModeParallel,
		BookingDate:    date,
		StartTime:      "10:00",
		EndTime:        "12:00",
		Subtotal:       decimal.New(80, 0),
		TotalAmount:    decimal.New(80, 0),
		BalanceDue:     decimal.New(80, 0),
		PaymentStatus:  entity.PaymentUnpaid,
		Status:         entity.GroupPending,
		CreatedAt:      date,
	}
}

func TestCreateGroupBooking(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := setup()
		defer dbx.Close()
		booking := groupBooking()
		member := entity.GroupMember{ID: uuid.New(), GroupBookingID: booking.ID, Name: "Ana", ServiceID: "svc-1", DurationMinutes: 60, FinalAmount: decimal.New(80, 0)}

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO group_bookings")).
			WithArgs(booking.ID.String(), "cust-1", 1, 0, "parallel", 0, "2026-03-14", "10:00", "12:00", "80", "0", "80", "0", "80", "unpaid", "pending", date).
			WillReturnResult(sqlxmock.NewResult(1, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO group_members")).
			WithArgs(member.ID.String(), booking.ID.String(), 0, "Ana", "svc-1", nil, 60, "80").
			WillReturnResult(sqlxmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.CreateGroupBooking(context.Background(), booking, []entity.GroupMember{member})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown preferred staff", func(t *testing.T) {
		repo := setup()
		defer dbx.Close()
		booking := groupBooking()
		member := entity.GroupMember{ID: uuid.New(), Name: "Ana", ServiceID: "svc-1", PreferredStaffID: sql.NullString{String: "ghost", Valid: true}, DurationMinutes: 60, FinalAmount: decimal.New(80, 0)}

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO group_bookings")).WillReturnResult(sqlxmock.NewResult(1, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO group_members")).WillReturnError(&pq.Error{Code: "23503"})
		mock.ExpectRollback()

		err := repo.CreateGroupBooking(context.Background(), booking, []entity.GroupMember{member})

		custom, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, errors.CodeReferencedEntityMissing, custom.Code)
		assert.Equal(t, "ghost", custom.Details["id"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindGroupBookingByID(t *testing.T) {
	repo := setup()
	defer dbx.Close()
	query := regexp.QuoteMeta("FROM group_bookings WHERE id = $1")

	t.Run("found", func(t *testing.T) {
		id := uuid.New()
		rows := sqlxmock.NewRows([]string{"id", "lead_customer_id", "total_members", "confirmed_members", "scheduling_mode", "stagger_minutes", "booking_date", "start_time", "end_time", "subtotal", "discount_amount", "total_amount", "deposit_amount", "balance_due", "payment_status", "status", "created_at", "updated_at"}).
			AddRow(id.String(), "cust-1", 2, 0, "sequential", 0, date, "10:00", "14:00", "160.00", "10.00", "150.00", "50.00", "100.00", "deposit_paid", "pending", date, nil)
		mock.ExpectQuery(query).WithArgs(id.String()).WillReturnRows(rows)

		got, err := repo.FindGroupBookingByID(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, entity.ModeSequential, got.SchedulingMode)
		assert.Equal(t, "100.00", got.BalanceDue.StringFixed(2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(query).WithArgs(id.String()).WillReturnError(sql.ErrNoRows)

		_, err := repo.FindGroupBookingByID(context.Background(), id)

		assert.True(t, errors.Is(err, errors.CodeNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSaveAllocation(t *testing.T) {
	groupID := uuid.New()
	memberID := uuid.New()
	appointment := bookingentity.Appointment{
		ID:              uuid.New(),
		StaffID:         "staff-1",
		CustomerID:      sql.NullString{String: "cust-1", Valid: true},
		AppointmentDate: date,
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          bookingentity.AppointmentConfirmed,
		GroupMemberID:   sql.NullString{String: memberID.String(), Valid: true},
		CreatedAt:       date,
	}

	expectWrites := func() {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO appointments")).
			WithArgs(appointment.ID.String(), "staff-1", "cust-1", "2026-03-14", "10:00", 60, "confirmed", memberID.String(), date).
			WillReturnResult(sqlxmock.NewResult(1, 1))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE group_members SET appointment_id = $1")).
			WithArgs(appointment.ID.String(), "staff-1", memberID.String(), groupID.String()).
			WillReturnResult(sqlxmock.NewResult(0, 1))
	}

	t.Run("confirms the group", func(t *testing.T) {
		repo := setup()
		defer dbx.Close()
		expectWrites()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE group_bookings SET status = $1")).
			WithArgs("confirmed", sqlxmock.AnyArg(), groupID.String(), "pending").
			WillReturnResult(sqlxmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SaveAllocation(context.Background(), groupID, []bookingentity.Appointment{appointment})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("group already scheduled", func(t *testing.T) {
		repo := setup()
		defer dbx.Close()
		expectWrites()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE group_bookings SET status = $1")).
			WithArgs("confirmed", sqlxmock.AnyArg(), groupID.String(), "pending").
			WillReturnResult(sqlxmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.SaveAllocation(context.Background(), groupID, []bookingentity.Appointment{appointment})

		assert.True(t, errors.Is(err, errors.CodeConflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing customer is named by the violated constraint", func(t *testing.T) {
		repo := setup()
		defer dbx.Close()
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO appointments")).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "appointments_customer_id_fkey"})
		mock.ExpectRollback()

		err := repo.SaveAllocation(context.Background(), groupID, []bookingentity.Appointment{appointment})

		custom, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, errors.CodeReferencedEntityMissing, custom.Code)
		assert.Equal(t, "customer", custom.Details["entity"])
		assert.Equal(t, "cust-1", custom.Details["id"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store failure rolls back", func(t *testing.T) {
		repo := setup()
		defer dbx.Close()
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO appointments")).WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		err := repo.SaveAllocation(context.Background(), groupID, []bookingentity.Appointment{appointment})

		assert.True(t, errors.Is(err, errors.CodeStoreWriteFailure))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
