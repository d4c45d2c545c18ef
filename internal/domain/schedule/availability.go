package schedule

import (
	"time"

	"github.com/google/uuid"
)

// BookedInterval is the projection of a non-cancelled booking the calculator
// needs: which court is taken over which half-open UTC interval.
type BookedInterval struct {
	CourtID uuid.UUID
	Start   time.Time
	End     time.Time
}

type SlotAvailability struct {
	Slot            time.Time
	AvailableCourts int
}

const slotStep = SlotMinutes * time.Minute

// windowSlots covers 36 hours from local midnight, wide enough that every
// slot of the requested club-local date is present whatever the UTC offset
// does around day boundaries.
const windowSlots = 72

// Availability computes per-slot available-court counts for one club-local
// calendar date. Closed slots are absent from the result, fully booked open
// slots report zero. Slots whose end is not after now are excluded.
//
// The calculator is pure: callers load the schedule, the active courts and
// every non-cancelled booking overlapping the window, and pass them in.
func Availability(
	year int, month time.Month, day int,
	loc *time.Location,
	ws WeeklySchedule,
	activeCourts []uuid.UUID,
	bookings []BookedInterval,
	now time.Time,
) []SlotAvailability {
	localMidnight := time.Date(year, month, day, 0, 0, 0, 0, loc)
	windowStart := localMidnight.UTC()

	active := make(map[uuid.UUID]struct{}, len(activeCourts))
	for _, id := range activeCourts {
		active[id] = struct{}{}
	}

	// Map each 30-minute instant to the set of active courts booked then by
	// walking every booking from start to end in slot steps.
	booked := make(map[time.Time]map[uuid.UUID]struct{})
	for _, b := range bookings {
		if _, ok := active[b.CourtID]; !ok {
			continue
		}
		for t := b.Start.UTC(); t.Before(b.End); t = t.Add(slotStep) {
			set, ok := booked[t]
			if !ok {
				set = make(map[uuid.UUID]struct{})
				booked[t] = set
			}
			set[b.CourtID] = struct{}{}
		}
	}

	result := make([]SlotAvailability, 0, SlotsPerDay)
	for i := 0; i < windowSlots; i++ {
		slot := windowStart.Add(time.Duration(i) * slotStep)
		local := slot.In(loc)

		ly, lm, ld := local.Date()
		if ly != year || lm != month || ld != day {
			continue
		}
		if !ws.IsOpen(local) {
			continue
		}
		if !slot.Add(slotStep).After(now) {
			continue
		}

		result = append(result, SlotAvailability{
			Slot:            slot,
			AvailableCourts: len(activeCourts) - len(booked[slot]),
		})
	}

	return result
}
