package usecases_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"salon-booking-service/config"
	"salon-booking-service/internal/module/booking/mocks"
	"salon-booking-service/internal/module/booking/models/entity"
	"salon-booking-service/internal/module/booking/usecases"
	"salon-booking-service/internal/pkg/errors"
	log_internal "salon-booking-service/internal/pkg/log"
	"salon-booking-service/internal/pkg/timegrid"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	date = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	ctx  = context.Background()
)

func newGrid(t *testing.T) timegrid.Grid {
	t.Helper()
	g, err := timegrid.New(timegrid.MustParseClock("09:00"), timegrid.MustParseClock("12:00"), 30*time.Minute)
	require.NoError(t, err)
	return g
}

func appointment(start string, minutes int) entity.Appointment {
	return entity.Appointment{
		ID:              uuid.New(),
		StaffID:         "staff-1",
		AppointmentDate: date,
		StartTime:       start,
		DurationMinutes: minutes,
		Status:          entity.AppointmentConfirmed,
	}
}

func availableMap(t *testing.T, uc usecases.Usecase, staffID *string) map[string]bool {
	t.Helper()
	resp, err := uc.Availability(ctx, staffID, date)
	require.NoError(t, err)
	out := make(map[string]bool, len(resp.Slots))
	for _, s := range resp.Slots {
		out[s.Time] = s.Available
	}
	return out
}

func TestAvailability(t *testing.T) {
	staffID := "staff-1"

	t.Run("marks overlapping slots unavailable", func(t *testing.T) {
		repoMock := mocks.NewRepositories(t)
		uc := usecases.New(repoMock, log_internal.Nop(), newGrid(t), config.ReadFailurePolicyOpen)

		repoMock.On("FindActiveAppointmentsByStaffAndDate", mock.Anything, staffID, date).
			Return([]entity.Appointment{appointment("09:30", 45), appointment("11:30", 30)}, nil)

		got := availableMap(t, uc, &staffID)

		assert.Equal(t, map[string]bool{
			"09:00": true,
			"09:30": false,
			"10:00": false,
			"10:30": true,
			"11:00": true,
			"11:30": false,
		}, got)
	})

	t.Run("no staff selected", func(t *testing.T) {
		repoMock := mocks.NewRepositories(t)
		uc := usecases.New(repoMock, log_internal.Nop(), newGrid(t), config.ReadFailurePolicyOpen)

		resp, err := uc.Availability(ctx, nil, date)

		require.NoError(t, err)
		assert.Len(t, resp.Slots, 6)
		for _, s := range resp.Slots {
			assert.True(t, s.Available)
		}
		repoMock.AssertNotCalled(t, "FindActiveAppointmentsByStaffAndDate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("read failure fails open", func(t *testing.T) {
		repoMock := mocks.NewRepositories(t)
		uc := usecases.New(repoMock, log_internal.Nop(), newGrid(t), config.ReadFailurePolicyOpen)

		repoMock.On("FindActiveAppointmentsByStaffAndDate", mock.Anything, staffID, date).
			Return(nil, errors.Transient("db down"))

		resp, err := uc.Availability(ctx, &staffID, date)

		require.NoError(t, err)
		assert.True(t, resp.Degraded)
		for _, s := range resp.Slots {
			assert.True(t, s.Available)
		}
	})

	t.Run("read failure fails closed", func(t *testing.T) {
		repoMock := mocks.NewRepositories(t)
		uc := usecases.New(repoMock, log_internal.Nop(), newGrid(t), config.ReadFailurePolicyClosed)

		repoMock.On("FindActiveAppointmentsByStaffAndDate", mock.Anything, staffID, date).
			Return(nil, errors.Transient("db down"))

		_, err := uc.Availability(ctx, &staffID, date)

		assert.True(t, errors.Is(err, errors.CodeAvailabilityUnavailable))
	})

	t.Run("repeated polling is stable", func(t *testing.T) {
		repoMock := mocks.NewRepositories(t)
		uc := usecases.New(repoMock, log_internal.Nop(), newGrid(t), config.ReadFailurePolicyOpen)

		repoMock.On("FindActiveAppointmentsByStaffAndDate", mock.Anything, staffID, date).
			Return([]entity.Appointment{appointment("10:00", 30)}, nil)

		first := availableMap(t, uc, &staffID)
		second := availableMap(t, uc, &staffID)
		assert.Equal(t, first, second)
	})

	t.Run("corrupt row is skipped", func(t *testing.T) {
		repoMock := mocks.NewRepositories(t)
		uc := usecases.New(repoMock, log_internal.Nop(), newGrid(t), config.ReadFailurePolicyOpen)

		repoMock.On("FindActiveAppointmentsByStaffAndDate", mock.Anything, staffID, date).
			Return([]entity.Appointment{appointment("bogus", 30), appointment("09:00", 30)}, nil)

		got := availableMap(t, uc, &staffID)
		assert.False(t, got["09:00"])
		assert.True(t, got["09:30"])
	})
}

// Every slot reported unavailable must overlap some appointment and every
// slot overlapping an appointment must be reported unavailable.
func TestAvailabilityMatchesAppointmentIntervals(t *testing.T) {
	grid, err := timegrid.New(timegrid.MustParseClock("08:00"), timegrid.MustParseClock("20:00"), 15*time.Minute)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(42))
	staffID := "staff-1"

	for run := 0; run < 200; run++ {
		var appointments []entity.Appointment
		for i := 0; i < rng.Intn(6); i++ {
			start := timegrid.Clock(7*60 + rng.Intn(13*60))
			appointments = append(appointments, appointment(start.String(), 5+rng.Intn(120)))
		}

		repoMock := &mocks.Repositories{}
		repoMock.On("FindActiveAppointmentsByStaffAndDate", mock.Anything, staffID, date).Return(appointments, nil)
		uc := usecases.New(repoMock, log_internal.Nop(), grid, config.ReadFailurePolicyOpen)

		resp, err := uc.Availability(ctx, &staffID, date)
		require.NoError(t, err)

		for _, slot := range resp.Slots {
			slotInterval := timegrid.Interval{Start: slot.Clock, Duration: grid.Step}
			overlapsAny := false
			for _, a := range appointments {
				interval, err := a.Interval()
				require.NoError(t, err)
				if slotInterval.Overlaps(interval) {
					overlapsAny = true
				}
			}
			assert.Equal(t, !overlapsAny, slot.Available, fmt.Sprintf("run %d slot %s", run, slot.Time))
		}
	}
}
