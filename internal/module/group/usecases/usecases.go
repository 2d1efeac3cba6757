package usecases

import (
	"context"
	"database/sql"
	"time"

	bookingentity "salon-booking-service/internal/module/booking/models/entity"
	"salon-booking-service/internal/module/group/allocator"
	"salon-booking-service/internal/module/group/models/entity"
	"salon-booking-service/internal/module/group/models/request"
	"salon-booking-service/internal/module/group/models/response"
	"salon-booking-service/internal/module/group/repositories"
	"salon-booking-service/internal/pkg/errors"
	"salon-booking-service/internal/pkg/messagestream"
	"salon-booking-service/internal/pkg/money"
	"salon-booking-service/internal/pkg/timegrid"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

type usecase struct {
	repo      repositories.Repositories
	allocator *allocator.Allocator
	publisher message.Publisher
	log       *otelzap.Logger
}

type Usecase interface {
	CreateGroupBooking(ctx context.Context, req request.CreateGroupBooking) (response.GroupBooking, error)
	GetGroupBooking(ctx context.Context, id string) (response.GroupBooking, error)
	// Schedule allocates every member of a pending group booking and
	// persists the resulting appointments atomically.
	Schedule(ctx context.Context, id string, req request.ScheduleGroupBooking) (response.Schedule, error)
}

func New(repo repositories.Repositories, alloc *allocator.Allocator, publisher message.Publisher, log *otelzap.Logger) Usecase {
	return &usecase{
		repo:      repo,
		allocator: alloc,
		publisher: publisher,
		log:       log,
	}
}

func (u *usecase) CreateGroupBooking(ctx context.Context, req request.CreateGroupBooking) (response.GroupBooking, error) {
	span, ctx := apm.StartSpan(ctx, "CreateGroupBooking", "usecase")
	defer span.End()

	date, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		return response.GroupBooking{}, errors.BadRequest("booking_date must be YYYY-MM-DD")
	}
	start, err := timegrid.ParseClock(req.StartTime)
	if err != nil {
		return response.GroupBooking{}, errors.BadRequest("start_time must be HH:MM")
	}
	end, err := timegrid.ParseClock(req.EndTime)
	if err != nil {
		return response.GroupBooking{}, errors.BadRequest("end_time must be HH:MM")
	}
	if end <= start {
		return response.GroupBooking{}, errors.BadRequest("end_time must be after start_time")
	}

	booking := entity.GroupBooking{
		ID:             uuid.New(),
		LeadCustomerID: req.LeadCustomerID,
		TotalMembers:   len(req.Members),
		SchedulingMode: entity.SchedulingMode(req.SchedulingMode),
		StaggerMinutes: req.StaggerMinutes,
		BookingDate:    date,
		StartTime:      start.String(),
		EndTime:        end.String(),
		PaymentStatus:  entity.PaymentUnpaid,
		Status:         entity.GroupPending,
		CreatedAt:      time.Now().UTC(),
	}

	members := make([]entity.GroupMember, 0, len(req.Members))
	var subtotal money.Cents
	for i, m := range req.Members {
		price := money.FromDecimal(m.Price)
		subtotal += price
		members = append(members, entity.GroupMember{
			ID:               uuid.New(),
			GroupBookingID:   booking.ID,
			Position:         i,
			Name:             m.Name,
			ServiceID:        m.ServiceID,
			PreferredStaffID: sql.NullString{String: m.PreferredStaffID, Valid: m.PreferredStaffID != ""},
			DurationMinutes:  m.DurationMinutes,
			FinalAmount:      price.Decimal(),
		})
	}

	discount := money.FromDecimal(req.DiscountAmount)
	deposit := money.FromDecimal(req.DepositAmount)
	total := subtotal - discount
	if total < 0 {
		return response.GroupBooking{}, errors.BadRequest("discount exceeds the sum of member prices")
	}
	if deposit > total {
		return response.GroupBooking{}, errors.BadRequest("deposit exceeds the total amount")
	}
	booking.Subtotal = subtotal.Decimal()
	booking.DiscountAmount = discount.Decimal()
	booking.TotalAmount = total.Decimal()
	booking.DepositAmount = deposit.Decimal()
	booking.BalanceDue = (total - deposit).Decimal()

	if err := booking.CheckInvariants(members); err != nil {
		u.log.Ctx(ctx).Error("error group booking invariants", zap.Error(err))
		return response.GroupBooking{}, errors.BadRequest(err.Error())
	}

	if err := u.repo.CreateGroupBooking(ctx, booking, members); err != nil {
		return response.GroupBooking{}, err
	}

	return toResponse(booking, members), nil
}

func (u *usecase) GetGroupBooking(ctx context.Context, id string) (response.GroupBooking, error) {
	span, ctx := apm.StartSpan(ctx, "GetGroupBooking", "usecase")
	defer span.End()

	booking, members, err := u.load(ctx, id)
	if err != nil {
		return response.GroupBooking{}, err
	}
	return toResponse(booking, members), nil
}

func (u *usecase) Schedule(ctx context.Context, id string, req request.ScheduleGroupBooking) (response.Schedule, error) {
	span, ctx := apm.StartSpan(ctx, "Schedule", "usecase")
	defer span.End()

	booking, members, err := u.load(ctx, id)
	if err != nil {
		return response.Schedule{}, err
	}
	if booking.Status != entity.GroupPending {
		return response.Schedule{}, errors.Conflict("group booking is " + string(booking.Status) + ", only pending bookings can be scheduled")
	}

	start, err := timegrid.ParseClock(booking.StartTime)
	if err != nil {
		return response.Schedule{}, errors.InternalServerError("stored start_time is corrupt")
	}
	end, err := timegrid.ParseClock(booking.EndTime)
	if err != nil {
		return response.Schedule{}, errors.InternalServerError("stored end_time is corrupt")
	}

	toAllocate := make([]allocator.Member, 0, len(members))
	for _, m := range members {
		toAllocate = append(toAllocate, allocator.Member{
			ID:             m.ID.String(),
			PreferredStaff: m.PreferredStaffID.String,
			Duration:       time.Duration(m.DurationMinutes) * time.Minute,
		})
	}

	assignments, err := u.allocator.Allocate(ctx, allocator.Booking{
		Mode:    booking.SchedulingMode,
		Date:    booking.BookingDate,
		Start:   start,
		End:     end,
		Stagger: time.Duration(booking.StaggerMinutes) * time.Minute,
	}, toAllocate, req.CandidateStaff)
	if err != nil {
		u.log.Ctx(ctx).Error("error allocate group booking", zap.Error(err), zap.String("group_booking_id", id))
		return response.Schedule{}, err
	}

	now := time.Now().UTC()
	appointments := make([]bookingentity.Appointment, 0, len(assignments))
	resp := response.Schedule{GroupBookingID: booking.ID.String(), Status: string(entity.GroupConfirmed)}
	for _, a := range assignments {
		appointment := bookingentity.Appointment{
			ID:              uuid.New(),
			StaffID:         a.StaffID,
			CustomerID:      sql.NullString{String: booking.LeadCustomerID, Valid: booking.LeadCustomerID != ""},
			AppointmentDate: a.Date,
			StartTime:       a.Start.String(),
			DurationMinutes: int(a.Duration / time.Minute),
			Status:          bookingentity.AppointmentConfirmed,
			GroupMemberID:   sql.NullString{String: a.MemberID, Valid: true},
			CreatedAt:       now,
		}
		appointments = append(appointments, appointment)
		resp.Assignments = append(resp.Assignments, response.Assignment{
			MemberID:        a.MemberID,
			StaffID:         a.StaffID,
			AppointmentID:   appointment.ID.String(),
			Date:            a.Date.Format("2006-01-02"),
			StartTime:       appointment.StartTime,
			DurationMinutes: appointment.DurationMinutes,
		})
	}

	if err := u.repo.SaveAllocation(ctx, booking.ID, appointments); err != nil {
		return response.Schedule{}, err
	}

	if err := messagestream.PublishJSON(u.publisher, messagestream.TopicGroupBookingScheduled, resp); err != nil {
		// the schedule is committed; notification delivery is best effort
		u.log.Ctx(ctx).Error("error publish group booking scheduled", zap.Error(err), zap.String("group_booking_id", id))
	}

	return resp, nil
}

func (u *usecase) load(ctx context.Context, id string) (entity.GroupBooking, []entity.GroupMember, error) {
	groupID, err := uuid.Parse(id)
	if err != nil {
		return entity.GroupBooking{}, nil, errors.BadRequest("invalid group booking id")
	}
	booking, err := u.repo.FindGroupBookingByID(ctx, groupID)
	if err != nil {
		return entity.GroupBooking{}, nil, err
	}
	members, err := u.repo.FindGroupMembersByBookingID(ctx, groupID)
	if err != nil {
		return entity.GroupBooking{}, nil, err
	}
	return booking, members, nil
}

func toResponse(booking entity.GroupBooking, members []entity.GroupMember) response.GroupBooking {
	resp := response.GroupBooking{
		ID:               booking.ID.String(),
		LeadCustomerID:   booking.LeadCustomerID,
		TotalMembers:     booking.TotalMembers,
		ConfirmedMembers: booking.ConfirmedMembers,
		SchedulingMode:   string(booking.SchedulingMode),
		BookingDate:      booking.BookingDate.Format("2006-01-02"),
		StartTime:        booking.StartTime,
		EndTime:          booking.EndTime,
		Subtotal:         booking.Subtotal,
		DiscountAmount:   booking.DiscountAmount,
		TotalAmount:      booking.TotalAmount,
		DepositAmount:    booking.DepositAmount,
		BalanceDue:       booking.BalanceDue,
		PaymentStatus:    string(booking.PaymentStatus),
		Status:           string(booking.Status),
		Members:          make([]response.GroupMember, 0, len(members)),
	}
	for _, m := range members {
		resp.Members = append(resp.Members, response.GroupMember{
			ID:               m.ID.String(),
			Position:         m.Position,
			Name:             m.Name,
			ServiceID:        m.ServiceID,
			PreferredStaffID: m.PreferredStaffID.String,
			StaffID:          m.StaffID.String,
			DurationMinutes:  m.DurationMinutes,
			FinalAmount:      m.FinalAmount,
			AppointmentID:    m.AppointmentID.String,
		})
	}
	return resp
}
