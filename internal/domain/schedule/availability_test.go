//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"padel-club-api/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var buenosAires = func() *time.Location {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		panic(err)
	}
	return loc
}()

func mustSchedule(t *testing.T, open, close string, overrides [7]string) schedule.WeeklySchedule {
	t.Helper()
	ws, err := schedule.NewWeeklySchedule(open, close, overrides)
	require.NoError(t, err)
	return ws
}

func slotFor(result []schedule.SlotAvailability, slot time.Time) (schedule.SlotAvailability, bool) {
	for _, s := range result {
		if s.Slot.Equal(slot) {
			return s, true
		}
	}
	return schedule.SlotAvailability{}, false
}

func TestWeeklySchedule(t *testing.T) {
	t.Run("default hours apply every day", func(t *testing.T) {
		ws := mustSchedule(t, "09:00", "23:00", [7]string{})

		monday := time.Date(2026, 3, 16, 10, 15, 0, 0, buenosAires)
		assert.True(t, ws.IsOpen(monday))

		early := time.Date(2026, 3, 16, 8, 30, 0, 0, buenosAires)
		assert.False(t, ws.IsOpen(early))

		late := time.Date(2026, 3, 16, 23, 0, 0, 0, buenosAires)
		assert.False(t, ws.IsOpen(late))
	})

	t.Run("closed override shuts the whole day", func(t *testing.T) {
		var overrides [7]string
		overrides[time.Monday] = "closed"
		ws := mustSchedule(t, "09:00", "23:00", overrides)

		monday := time.Date(2026, 3, 16, 12, 0, 0, 0, buenosAires)
		assert.False(t, ws.IsOpen(monday))

		tuesday := time.Date(2026, 3, 17, 12, 0, 0, 0, buenosAires)
		assert.True(t, ws.IsOpen(tuesday))
	})

	t.Run("midnight close means open through end of day", func(t *testing.T) {
		ws := mustSchedule(t, "18:00", "00:00", [7]string{})

		lastSlot := time.Date(2026, 3, 16, 23, 30, 0, 0, buenosAires)
		assert.True(t, ws.IsOpen(lastSlot))

		morning := time.Date(2026, 3, 16, 10, 0, 0, 0, buenosAires)
		assert.False(t, ws.IsOpen(morning))
	})

	t.Run("hours crossing midnight keep small hours open", func(t *testing.T) {
		ws := mustSchedule(t, "18:00", "02:00", [7]string{})

		night := time.Date(2026, 3, 16, 23, 30, 0, 0, buenosAires)
		assert.True(t, ws.IsOpen(night))

		smallHours := time.Date(2026, 3, 16, 1, 30, 0, 0, buenosAires)
		assert.True(t, ws.IsOpen(smallHours))

		afternoon := time.Date(2026, 3, 16, 15, 0, 0, 0, buenosAires)
		assert.False(t, ws.IsOpen(afternoon))
	})

	t.Run("invalid clock rejected", func(t *testing.T) {
		_, err := schedule.NewWeeklySchedule("25:00", "23:00", [7]string{})
		assert.ErrorIs(t, err, schedule.ErrInvalidClock)

		var overrides [7]string
		overrides[time.Friday] = "oops"
		_, err = schedule.NewWeeklySchedule("09:00", "23:00", overrides)
		assert.ErrorIs(t, err, schedule.ErrInvalidRange)
	})
}

func TestAvailability(t *testing.T) {
	courtA := uuid.New()
	courtB := uuid.New()
	active := []uuid.UUID{courtA, courtB}

	// Far in the past relative to nothing: use a fixed "now" well before the
	// requested date so no slots are filtered by the time cutoff.
	dayBefore := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	ws := mustSchedule(t, "09:00", "23:00", [7]string{})

	t.Run("open slots report full court count when nothing is booked", func(t *testing.T) {
		result := schedule.Availability(2026, 3, 16, buenosAires, ws, active, nil, dayBefore)

		// 09:00 to 23:00 is 28 half-hour slots.
		require.Len(t, result, 28)
		for _, s := range result {
			assert.Equal(t, 2, s.AvailableCourts)
		}

		first := time.Date(2026, 3, 16, 9, 0, 0, 0, buenosAires).UTC()
		assert.Equal(t, first, result[0].Slot)
	})

	t.Run("bookings subtract per covered slot only", func(t *testing.T) {
		start := time.Date(2026, 3, 16, 18, 0, 0, 0, buenosAires).UTC()
		booked := []schedule.BookedInterval{
			{CourtID: courtA, Start: start, End: start.Add(90 * time.Minute)},
			{CourtID: courtB, Start: start, End: start.Add(30 * time.Minute)},
		}

		result := schedule.Availability(2026, 3, 16, buenosAires, ws, active, booked, dayBefore)

		s, ok := slotFor(result, start)
		require.True(t, ok)
		assert.Equal(t, 0, s.AvailableCourts)

		s, ok = slotFor(result, start.Add(30*time.Minute))
		require.True(t, ok)
		assert.Equal(t, 1, s.AvailableCourts)

		s, ok = slotFor(result, start.Add(90*time.Minute))
		require.True(t, ok)
		assert.Equal(t, 2, s.AvailableCourts)
	})

	t.Run("inactive court bookings are ignored", func(t *testing.T) {
		retired := uuid.New()
		start := time.Date(2026, 3, 16, 18, 0, 0, 0, buenosAires).UTC()
		booked := []schedule.BookedInterval{
			{CourtID: retired, Start: start, End: start.Add(time.Hour)},
		}

		result := schedule.Availability(2026, 3, 16, buenosAires, ws, active, booked, dayBefore)

		s, ok := slotFor(result, start)
		require.True(t, ok)
		assert.Equal(t, 2, s.AvailableCourts)
	})

	t.Run("past slots are excluded", func(t *testing.T) {
		now := time.Date(2026, 3, 16, 12, 10, 0, 0, buenosAires)
		result := schedule.Availability(2026, 3, 16, buenosAires, ws, active, nil, now.UTC())

		// The 12:00 slot is still running, so it stays; 11:30 is gone.
		running := time.Date(2026, 3, 16, 12, 0, 0, 0, buenosAires).UTC()
		_, ok := slotFor(result, running)
		assert.True(t, ok)

		finished := time.Date(2026, 3, 16, 11, 30, 0, 0, buenosAires).UTC()
		_, ok = slotFor(result, finished)
		assert.False(t, ok)
	})

	t.Run("late slots stay on the requested local date across the UTC boundary", func(t *testing.T) {
		lateWs := mustSchedule(t, "09:00", "00:00", [7]string{})
		result := schedule.Availability(2026, 3, 16, buenosAires, lateWs, active, nil, dayBefore)

		// 23:30 local on 2026-03-16 is 02:30 UTC on the 17th; it must be
		// listed under the 16th and nothing from the local 17th may leak in.
		last := time.Date(2026, 3, 16, 23, 30, 0, 0, buenosAires).UTC()
		_, ok := slotFor(result, last)
		assert.True(t, ok)

		for _, s := range result {
			local := s.Slot.In(buenosAires)
			assert.Equal(t, 16, local.Day())
		}
	})

	t.Run("no active courts means zero availability", func(t *testing.T) {
		start := time.Date(2026, 3, 16, 18, 0, 0, 0, buenosAires).UTC()
		result := schedule.Availability(2026, 3, 16, buenosAires, ws, nil, nil, dayBefore)

		s, ok := slotFor(result, start)
		require.True(t, ok)
		assert.Equal(t, 0, s.AvailableCourts)
	})
}
