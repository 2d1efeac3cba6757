// Package timegrid models a business day as fixed-width slots and does the
// interval arithmetic used by availability and group scheduling.
package timegrid

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRange = errors.New("timegrid: end before start")

// Clock is a time of day in minutes since midnight.
type Clock int

func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		// stored values sometimes carry seconds
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return 0, fmt.Errorf("timegrid: parse clock %q: %w", s, err)
		}
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) Add(d time.Duration) Clock {
	return c + Clock(d/time.Minute)
}

// On returns the instant of c on the calendar day of date, in date's location.
func (c Clock) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, int(c)/60, int(c)%60, 0, 0, date.Location())
}

// Interval is the half-open range [Start, Start+Duration).
type Interval struct {
	Start    Clock
	Duration time.Duration
}

func (i Interval) End() Clock {
	return i.Start.Add(i.Duration)
}

// Overlaps reports whether the two half-open intervals intersect. Empty
// intervals never overlap anything.
func (i Interval) Overlaps(o Interval) bool {
	if i.Duration <= 0 || o.Duration <= 0 {
		return false
	}
	return i.Start < o.End() && o.Start < i.End()
}

// Overlaps reports whether [aStart, aStart+aDur) and [bStart, bStart+bDur)
// intersect. Zero-length intervals never overlap anything.
func Overlaps(aStart Clock, aDur time.Duration, bStart Clock, bDur time.Duration) (bool, error) {
	if aDur < 0 || bDur < 0 {
		return false, ErrInvalidRange
	}
	return Interval{Start: aStart, Duration: aDur}.Overlaps(Interval{Start: bStart, Duration: bDur}), nil
}

type Grid struct {
	Open  Clock
	Close Clock
	Step  time.Duration
}

func New(open, close Clock, step time.Duration) (Grid, error) {
	if close <= open {
		return Grid{}, ErrInvalidRange
	}
	if step < time.Minute {
		return Grid{}, fmt.Errorf("timegrid: step %s must be at least one minute", step)
	}
	return Grid{Open: open, Close: close, Step: step}, nil
}

// Clocks returns every slot start. The last slot ends at or before Close.
func (g Grid) Clocks() []Clock {
	var slots []Clock
	for c := g.Open; c.Add(g.Step) <= g.Close; c = c.Add(g.Step) {
		slots = append(slots, c)
	}
	return slots
}

// SlotsFor returns the slot start instants on date, in order.
func (g Grid) SlotsFor(date time.Time) []time.Time {
	clocks := g.Clocks()
	slots := make([]time.Time, 0, len(clocks))
	for _, c := range clocks {
		slots = append(slots, c.On(date))
	}
	return slots
}

// Contains reports whether the interval lies within business hours.
func (g Grid) Contains(i Interval) bool {
	return i.Start >= g.Open && i.End() <= g.Close
}

// Align rounds c up to the next slot boundary.
func (g Grid) Align(c Clock) Clock {
	step := Clock(g.Step / time.Minute)
	if c <= g.Open {
		return g.Open
	}
	offset := (c - g.Open) % step
	if offset == 0 {
		return c
	}
	return c + step - offset
}
