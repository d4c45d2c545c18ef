package queries

import (
	"context"
	"time"

	"padel-club-api/internal/domain/schedule"
	"padel-club-api/internal/pkg/clock"

	"github.com/google/uuid"
)

type AvailabilitySlotView struct {
	Slot            time.Time `json:"slot"`
	AvailableCourts int       `json:"available_courts"`
}

type AvailabilityQueries interface {
	// ForDate reports, for one club-local calendar date, how many active
	// courts are free at each open 30-minute slot.
	ForDate(ctx context.Context, year int, month time.Month, day int) ([]*AvailabilitySlotView, error)
}

type BookedIntervalRepo interface {
	// FindBlockingInRange loads (court, interval) pairs of pending and
	// confirmed bookings overlapping [from, to).
	FindBlockingInRange(ctx context.Context, from, to time.Time) ([]schedule.BookedInterval, error)
	FindActiveCourtIDs(ctx context.Context) ([]uuid.UUID, error)
}

type availabilityQueriesImpl struct {
	repo  BookedIntervalRepo
	hours *schedule.WeeklySchedule
	loc   *time.Location
	clock clock.Clock
}

func NewAvailabilityQueries(repo BookedIntervalRepo, hours *schedule.WeeklySchedule, loc *time.Location, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{repo: repo, hours: hours, loc: loc, clock: clk}
}

func (q *availabilityQueriesImpl) ForDate(ctx context.Context, year int, month time.Month, day int) ([]*AvailabilitySlotView, error) {
	windowStart := time.Date(year, month, day, 0, 0, 0, 0, q.loc).UTC()
	windowEnd := windowStart.Add(36 * time.Hour)

	courts, err := q.repo.FindActiveCourtIDs(ctx)
	if err != nil {
		return nil, err
	}
	booked, err := q.repo.FindBlockingInRange(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	slots := schedule.Availability(year, month, day, q.loc, *q.hours, courts, booked, q.clock.Now())

	views := make([]*AvailabilitySlotView, 0, len(slots))
	for _, s := range slots {
		views = append(views, &AvailabilitySlotView{Slot: s.Slot, AvailableCourts: s.AvailableCourts})
	}
	return views, nil
}
