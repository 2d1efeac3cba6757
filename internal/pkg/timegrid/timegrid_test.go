package timegrid_test

import (
	"testing"
	"time"

	"salon-booking-service/internal/pkg/timegrid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	c, err := timegrid.ParseClock("14:30")
	require.NoError(t, err)
	assert.Equal(t, timegrid.Clock(870), c)
	assert.Equal(t, "14:30", c.String())

	c, err = timegrid.ParseClock("09:15:00")
	require.NoError(t, err)
	assert.Equal(t, "09:15", c.String())

	_, err = timegrid.ParseClock("25:00")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	_, err := timegrid.New(timegrid.MustParseClock("18:00"), timegrid.MustParseClock("09:00"), 30*time.Minute)
	assert.ErrorIs(t, err, timegrid.ErrInvalidRange)

	_, err = timegrid.New(timegrid.MustParseClock("09:00"), timegrid.MustParseClock("09:00"), 30*time.Minute)
	assert.ErrorIs(t, err, timegrid.ErrInvalidRange)

	_, err = timegrid.New(timegrid.MustParseClock("09:00"), timegrid.MustParseClock("18:00"), 0)
	assert.Error(t, err)
}

func TestSlotsFor(t *testing.T) {
	g, err := timegrid.New(timegrid.MustParseClock("09:00"), timegrid.MustParseClock("11:00"), 30*time.Minute)
	require.NoError(t, err)

	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	slots := g.SlotsFor(date)

	require.Len(t, slots, 4)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), slots[0])
	assert.Equal(t, time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC), slots[3])

	t.Run("step that does not divide the day drops the partial slot", func(t *testing.T) {
		g, err := timegrid.New(timegrid.MustParseClock("09:00"), timegrid.MustParseClock("12:00"), 90*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, []timegrid.Clock{540, 630}, g.Clocks())

		g, err = timegrid.New(timegrid.MustParseClock("09:00"), timegrid.MustParseClock("11:00"), 90*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, []timegrid.Clock{540}, g.Clocks())
	})
}

func TestOverlaps(t *testing.T) {
	nine := timegrid.MustParseClock("09:00")
	nineThirty := timegrid.MustParseClock("09:30")

	testCases := []struct {
		name     string
		aStart   timegrid.Clock
		aDur     time.Duration
		bStart   timegrid.Clock
		bDur     time.Duration
		expected bool
	}{
		{"identical", nine, 30 * time.Minute, nine, 30 * time.Minute, true},
		{"touching end to start", nine, 30 * time.Minute, nineThirty, 30 * time.Minute, false},
		{"partial", nine, 45 * time.Minute, nineThirty, 30 * time.Minute, true},
		{"contained", nine, 2 * time.Hour, nineThirty, 15 * time.Minute, true},
		{"zero length", nine, 0, nine, 30 * time.Minute, false},
		{"b before a", nineThirty, 30 * time.Minute, nine, 30 * time.Minute, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := timegrid.Overlaps(tc.aStart, tc.aDur, tc.bStart, tc.bDur)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)

			reversed, err := timegrid.Overlaps(tc.bStart, tc.bDur, tc.aStart, tc.aDur)
			require.NoError(t, err)
			assert.Equal(t, got, reversed)
		})
	}

	_, err := timegrid.Overlaps(nine, -time.Minute, nine, time.Minute)
	assert.ErrorIs(t, err, timegrid.ErrInvalidRange)
}

func TestAlign(t *testing.T) {
	g, err := timegrid.New(timegrid.MustParseClock("09:00"), timegrid.MustParseClock("18:00"), 30*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, timegrid.MustParseClock("09:00"), g.Align(timegrid.MustParseClock("08:00")))
	assert.Equal(t, timegrid.MustParseClock("09:30"), g.Align(timegrid.MustParseClock("09:30")))
	assert.Equal(t, timegrid.MustParseClock("10:00"), g.Align(timegrid.MustParseClock("09:31")))
}

func TestContains(t *testing.T) {
	g, err := timegrid.New(timegrid.MustParseClock("09:00"), timegrid.MustParseClock("18:00"), 30*time.Minute)
	require.NoError(t, err)

	assert.True(t, g.Contains(timegrid.Interval{Start: timegrid.MustParseClock("17:00"), Duration: time.Hour}))
	assert.False(t, g.Contains(timegrid.Interval{Start: timegrid.MustParseClock("17:30"), Duration: time.Hour}))
	assert.False(t, g.Contains(timegrid.Interval{Start: timegrid.MustParseClock("08:30"), Duration: time.Hour}))
}
