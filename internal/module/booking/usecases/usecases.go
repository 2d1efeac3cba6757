package usecases

import (
	"context"
	"time"

	"salon-booking-service/config"
	"salon-booking-service/internal/module/booking/models/response"
	"salon-booking-service/internal/module/booking/repositories"
	"salon-booking-service/internal/pkg/errors"
	"salon-booking-service/internal/pkg/timegrid"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

type usecase struct {
	repo     repositories.Repositories
	log      *otelzap.Logger
	grid     timegrid.Grid
	failOpen bool
}

type Usecase interface {
	// Availability reports every grid slot of date for staffID. A nil staffID
	// means the customer has not picked anyone yet, so nothing is blocked.
	Availability(ctx context.Context, staffID *string, date time.Time) (response.Availability, error)
	Grid() timegrid.Grid
}

func New(repo repositories.Repositories, log *otelzap.Logger, grid timegrid.Grid, readFailurePolicy string) Usecase {
	return &usecase{
		repo:     repo,
		log:      log,
		grid:     grid,
		failOpen: readFailurePolicy != config.ReadFailurePolicyClosed,
	}
}

func (u *usecase) Grid() timegrid.Grid {
	return u.grid
}

func (u *usecase) Availability(ctx context.Context, staffID *string, date time.Time) (response.Availability, error) {
	span, ctx := apm.StartSpan(ctx, "Availability", "usecase")
	defer span.End()

	resp := response.Availability{Date: date.Format("2006-01-02")}
	if staffID == nil || *staffID == "" {
		resp.Slots = u.slots(nil)
		return resp, nil
	}
	resp.StaffID = *staffID

	appointments, err := u.repo.FindActiveAppointmentsByStaffAndDate(ctx, *staffID, date)
	if err != nil {
		if !u.failOpen {
			u.log.Ctx(ctx).Error("error read appointments, failing closed", zap.Error(err), zap.String("staff_id", *staffID))
			return response.Availability{}, errors.AvailabilityUnavailable("availability is temporarily unavailable")
		}
		u.log.Ctx(ctx).Error("error read appointments, reporting all slots available", zap.Error(err), zap.String("staff_id", *staffID))
		resp.Slots = u.slots(nil)
		resp.Degraded = true
		return resp, nil
	}

	busy := make([]timegrid.Interval, 0, len(appointments))
	for _, a := range appointments {
		interval, err := a.Interval()
		if err != nil {
			// a corrupt row must not hide the rest of the day
			u.log.Ctx(ctx).Error("error parse appointment interval", zap.Error(err), zap.String("appointment_id", a.ID.String()))
			continue
		}
		busy = append(busy, interval)
	}

	resp.Slots = u.slots(busy)
	return resp, nil
}

func (u *usecase) slots(busy []timegrid.Interval) []response.Slot {
	clocks := u.grid.Clocks()
	slots := make([]response.Slot, 0, len(clocks))
	for _, c := range clocks {
		slot := timegrid.Interval{Start: c, Duration: u.grid.Step}
		available := true
		for _, b := range busy {
			if slot.Overlaps(b) {
				available = false
				break
			}
		}
		slots = append(slots, response.Slot{Time: c.String(), Available: available, Clock: c})
	}
	return slots
}
