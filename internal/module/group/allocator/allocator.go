// Package allocator assigns group booking members to staff and start times.
// It reads availability but never writes; the caller persists the result.
package allocator

import (
	"context"
	"time"

	bookingresponse "salon-booking-service/internal/module/booking/models/response"
	"salon-booking-service/internal/module/group/models/entity"
	"salon-booking-service/internal/pkg/errors"
	"salon-booking-service/internal/pkg/timegrid"
)

type AvailabilityReader interface {
	Availability(ctx context.Context, staffID *string, date time.Time) (bookingresponse.Availability, error)
}

type Booking struct {
	Mode    entity.SchedulingMode
	Date    time.Time
	Start   timegrid.Clock
	End     timegrid.Clock
	Stagger time.Duration
}

type Member struct {
	ID             string
	PreferredStaff string
	Duration       time.Duration
}

type Assignment struct {
	MemberID string
	StaffID  string
	Date     time.Time
	Start    timegrid.Clock
	Duration time.Duration
}

type Allocator struct {
	availability   AvailabilityReader
	grid           timegrid.Grid
	defaultStagger time.Duration
}

func New(availability AvailabilityReader, grid timegrid.Grid, defaultStagger time.Duration) *Allocator {
	return &Allocator{
		availability:   availability,
		grid:           grid,
		defaultStagger: defaultStagger,
	}
}

// Allocate returns one assignment per member, in member order, or an error
// and no assignments at all.
func (a *Allocator) Allocate(ctx context.Context, booking Booking, members []Member, candidateStaff []string) ([]Assignment, error) {
	if len(members) == 0 {
		return nil, errors.BadRequest("group booking has no members")
	}
	if booking.End <= booking.Start {
		return nil, errors.BadRequest("booking window ends before it starts")
	}

	switch booking.Mode {
	case entity.ModeParallel:
		book, err := a.loadBook(ctx, booking.Date, pool(members, candidateStaff))
		if err != nil {
			return nil, err
		}
		return a.parallel(booking, members, book)
	case entity.ModeSequential:
		book, err := a.loadBook(ctx, booking.Date, pool(members, candidateStaff))
		if err != nil {
			return nil, err
		}
		return a.sequential(booking, members, book)
	case entity.ModeStaggered:
		return a.staggered(booking, members, candidateStaff)
	default:
		return nil, errors.BadRequest("unknown scheduling mode " + string(booking.Mode))
	}
}

// pool is the candidate roster plus any preferred staff, without duplicates,
// in first-seen order.
func pool(members []Member, candidateStaff []string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
	}
	for _, id := range candidateStaff {
		add(id)
	}
	for _, m := range members {
		add(m.PreferredStaff)
	}
	return out
}

// staffBook holds the free slots of every staff member for one date.
type staffBook struct {
	grid  timegrid.Grid
	order []string
	free  map[string]map[timegrid.Clock]bool
}

func (a *Allocator) loadBook(ctx context.Context, date time.Time, staff []string) (*staffBook, error) {
	book := &staffBook{grid: a.grid, order: staff, free: make(map[string]map[timegrid.Clock]bool, len(staff))}
	for _, id := range staff {
		staffID := id
		resp, err := a.availability.Availability(ctx, &staffID, date)
		if err != nil {
			return nil, err
		}
		// a degraded read shows every slot free; never schedule on it
		if resp.Degraded {
			return nil, errors.AvailabilityUnavailable("availability for staff " + id + " could not be read")
		}
		slots := make(map[timegrid.Clock]bool, len(resp.Slots))
		for _, s := range resp.Slots {
			slots[s.Clock] = s.Available
		}
		book.free[id] = slots
	}
	return book, nil
}

// isFree reports whether staffID has every slot touching [start, start+d)
// available and the window sits inside business hours.
func (b *staffBook) isFree(staffID string, start timegrid.Clock, d time.Duration) bool {
	window := timegrid.Interval{Start: start, Duration: d}
	if !b.grid.Contains(window) {
		return false
	}
	slots := b.free[staffID]
	for _, c := range b.grid.Clocks() {
		if c >= window.End() {
			break
		}
		if !window.Overlaps(timegrid.Interval{Start: c, Duration: b.grid.Step}) {
			continue
		}
		if !slots[c] {
			return false
		}
	}
	return true
}

// earliestFit finds the first grid-aligned start at or after from where d fits
// for staffID and ends no later than limit.
func (b *staffBook) earliestFit(staffID string, from, limit timegrid.Clock, d time.Duration) (timegrid.Clock, bool) {
	for t := b.grid.Align(from); t.Add(d) <= limit; t = t.Add(b.grid.Step) {
		if b.isFree(staffID, t, d) {
			return t, true
		}
	}
	return 0, false
}

func (a *Allocator) parallel(booking Booking, members []Member, book *staffBook) ([]Assignment, error) {
	for _, m := range members {
		if end := booking.Start.Add(m.Duration); end > booking.End {
			return nil, errors.WindowExceeded(m.ID, end.String(), booking.End.String())
		}
	}
	if len(members) > len(book.order) {
		return nil, errors.InsufficientStaff(len(members), len(book.order))
	}

	assigned := make(map[int]string, len(members))
	used := make(map[string]bool, len(members))

	// members who asked for someone get them first
	for i, m := range members {
		if m.PreferredStaff == "" {
			continue
		}
		if used[m.PreferredStaff] || !book.isFree(m.PreferredStaff, booking.Start, m.Duration) {
			return nil, errors.SlotConflict(m.ID, m.PreferredStaff, booking.Start.String())
		}
		used[m.PreferredStaff] = true
		assigned[i] = m.PreferredStaff
	}

	var open []int
	for i := range members {
		if _, ok := assigned[i]; !ok {
			open = append(open, i)
		}
	}
	matched := matchStaff(booking.Start, members, open, book, used)
	for _, i := range open {
		if _, ok := matched[i]; !ok {
			return nil, errors.InsufficientStaff(len(members), len(assigned)+len(matched))
		}
	}
	for i, staffID := range matched {
		assigned[i] = staffID
	}

	out := make([]Assignment, 0, len(members))
	for i, m := range members {
		out = append(out, Assignment{
			MemberID: m.ID,
			StaffID:  assigned[i],
			Date:     booking.Date,
			Start:    booking.Start,
			Duration: m.Duration,
		})
	}
	return out, nil
}

// matchStaff finds a maximum matching between the open members and the
// unpinned staff free for each member's whole service (augmenting paths).
// Members who cannot all be seated come back missing from the result.
func matchStaff(start timegrid.Clock, members []Member, open []int, book *staffBook, pinned map[string]bool) map[int]string {
	edges := make(map[int][]string, len(open))
	for _, i := range open {
		for _, staffID := range book.order {
			if !pinned[staffID] && book.isFree(staffID, start, members[i].Duration) {
				edges[i] = append(edges[i], staffID)
			}
		}
	}

	holder := make(map[string]int)
	var augment func(i int, seen map[string]bool) bool
	augment = func(i int, seen map[string]bool) bool {
		// an idle staff member first, so roster order wins when nothing is contended
		for _, staffID := range edges[i] {
			if _, taken := holder[staffID]; !taken && !seen[staffID] {
				holder[staffID] = i
				return true
			}
		}
		for _, staffID := range edges[i] {
			if seen[staffID] {
				continue
			}
			seen[staffID] = true
			other, taken := holder[staffID]
			if !taken || augment(other, seen) {
				holder[staffID] = i
				return true
			}
		}
		return false
	}
	for _, i := range open {
		augment(i, make(map[string]bool))
	}

	out := make(map[int]string, len(holder))
	for staffID, i := range holder {
		out[i] = staffID
	}
	return out
}

func (a *Allocator) sequential(booking Booking, members []Member, book *staffBook) ([]Assignment, error) {
	if len(book.order) == 0 {
		return nil, errors.InsufficientStaff(1, 0)
	}

	// per-staff cursor arena, local to this call
	cursor := make(map[string]timegrid.Clock, len(book.order))
	for _, staffID := range book.order {
		cursor[staffID] = booking.Start
	}

	out := make([]Assignment, 0, len(members))
	for _, m := range members {
		candidates := book.order
		if m.PreferredStaff != "" {
			candidates = []string{m.PreferredStaff}
		}

		bestStaff := ""
		var bestStart timegrid.Clock
		for _, staffID := range candidates {
			start, ok := book.earliestFit(staffID, cursor[staffID], booking.End, m.Duration)
			if !ok {
				continue
			}
			if bestStaff == "" || start < bestStart {
				bestStaff, bestStart = staffID, start
			}
		}

		if bestStaff == "" {
			earliest := booking.End
			for _, staffID := range candidates {
				if cursor[staffID] < earliest {
					earliest = cursor[staffID]
				}
			}
			if m.PreferredStaff != "" {
				return nil, errors.SlotConflict(m.ID, m.PreferredStaff, earliest.String())
			}
			return nil, errors.WindowExceeded(m.ID, earliest.Add(m.Duration).String(), booking.End.String())
		}

		cursor[bestStaff] = bestStart.Add(m.Duration)
		out = append(out, Assignment{
			MemberID: m.ID,
			StaffID:  bestStaff,
			Date:     booking.Date,
			Start:    bestStart,
			Duration: m.Duration,
		})
	}
	return out, nil
}

func (a *Allocator) staggered(booking Booking, members []Member, candidateStaff []string) ([]Assignment, error) {
	step := booking.Stagger
	if step <= 0 {
		step = a.defaultStagger
	}

	out := make([]Assignment, 0, len(members))
	for i, m := range members {
		start := booking.Start.Add(time.Duration(i) * step)
		if end := start.Add(m.Duration); end > booking.End {
			return nil, errors.WindowExceeded(m.ID, end.String(), booking.End.String())
		}

		staffID := m.PreferredStaff
		if staffID == "" && len(candidateStaff) > 0 {
			staffID = candidateStaff[i%len(candidateStaff)]
		}

		out = append(out, Assignment{
			MemberID: m.ID,
			StaffID:  staffID,
			Date:     booking.Date,
			Start:    start,
			Duration: m.Duration,
		})
	}
	return out, nil
}
