//go:build unit

package recurring_test

import (
	"testing"
	"time"

	"padel-club-api/internal/domain/booking"
	"padel-club-api/internal/domain/recurring"

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

func testCustomer(t *testing.T) booking.Customer {
	t.Helper()
	c, err := booking.NewCustomer("Carlos Gómez", "+5491155551234")
	require.NoError(t, err)
	return c
}

func newTemplate(t *testing.T, dayOfWeek int, startTime string, durationMin int, validFrom time.Time, validTo *time.Time) *recurring.Template {
	t.Helper()
	tpl, err := recurring.NewTemplate(
		uuid.New(), testCustomer(t), dayOfWeek, startTime, durationMin,
		15000, booking.PaymentCash, false, validFrom, validTo, "",
	)
	require.NoError(t, err)
	return tpl
}

func TestNewTemplate(t *testing.T) {
	validFrom := time.Date(2026, 3, 1, 0, 0, 0, 0, buenosAires)

	cases := []struct {
		name      string
		dayOfWeek int
		startTime string
		duration  int
		errIs     error
	}{
		{name: "valid", dayOfWeek: 1, startTime: "19:00", duration: 90},
		{name: "weekday below range", dayOfWeek: -1, startTime: "19:00", duration: 90, errIs: recurring.ErrInvalidWeekday},
		{name: "weekday above range", dayOfWeek: 7, startTime: "19:00", duration: 90, errIs: recurring.ErrInvalidWeekday},
		{name: "malformed start time", dayOfWeek: 1, startTime: "7pm", duration: 90, errIs: recurring.ErrInvalidStartTime},
		{name: "hour out of range", dayOfWeek: 1, startTime: "24:30", duration: 90, errIs: recurring.ErrInvalidStartTime},
		{name: "zero duration", dayOfWeek: 1, startTime: "19:00", duration: 0, errIs: recurring.ErrInvalidDuration},
		{name: "off-grid duration", dayOfWeek: 1, startTime: "19:00", duration: 45, errIs: recurring.ErrInvalidDuration},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := recurring.NewTemplate(
				uuid.New(), testCustomer(t), tc.dayOfWeek, tc.startTime, tc.duration,
				15000, booking.PaymentCash, false, validFrom, nil, "",
			)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("validTo before validFrom rejected", func(t *testing.T) {
		before := validFrom.AddDate(0, 0, -1)
		_, err := recurring.NewTemplate(
			uuid.New(), testCustomer(t), 1, "19:00", 90,
			15000, booking.PaymentCash, false, validFrom, &before, "",
		)
		assert.ErrorIs(t, err, recurring.ErrInvalidValidity)
	})
}

func TestTemplateAppliesOn(t *testing.T) {
	validFrom := time.Date(2026, 3, 1, 0, 0, 0, 0, buenosAires)

	t.Run("matches only its weekday within the window", func(t *testing.T) {
		// Mondays at 19:00.
		tpl := newTemplate(t, 1, "19:00", 90, validFrom, nil)

		assert.True(t, tpl.AppliesOn(2026, 3, 16, buenosAires))  // Monday
		assert.False(t, tpl.AppliesOn(2026, 3, 17, buenosAires)) // Tuesday
		assert.False(t, tpl.AppliesOn(2026, 2, 23, buenosAires)) // Monday before validFrom
	})

	t.Run("validTo is inclusive of its calendar day", func(t *testing.T) {
		validTo := time.Date(2026, 3, 16, 0, 0, 0, 0, buenosAires)
		tpl := newTemplate(t, 1, "19:00", 90, validFrom, &validTo)

		assert.True(t, tpl.AppliesOn(2026, 3, 16, buenosAires))
		assert.False(t, tpl.AppliesOn(2026, 3, 23, buenosAires))
	})

	t.Run("deactivated template never applies", func(t *testing.T) {
		tpl := newTemplate(t, 1, "19:00", 90, validFrom, nil)
		tpl.Deactivate()
		assert.False(t, tpl.AppliesOn(2026, 3, 16, buenosAires))
	})
}

func TestTemplateOccurrenceOn(t *testing.T) {
	validFrom := time.Date(2026, 3, 1, 0, 0, 0, 0, buenosAires)
	tpl := newTemplate(t, 1, "19:00", 90, validFrom, nil)

	slot, err := tpl.OccurrenceOn(2026, 3, 16, buenosAires)
	require.NoError(t, err)

	// 19:00 in Buenos Aires is 22:00 UTC.
	assert.Equal(t, time.Date(2026, 3, 16, 22, 0, 0, 0, time.UTC), slot.Start())
	assert.Equal(t, time.Date(2026, 3, 16, 23, 30, 0, 0, time.UTC), slot.End())
}
