//go:build unit

package booking_test

import (
	"testing"
	"time"

	"padel-club-api/internal/domain/booking"
	"padel-club-api/internal/domain/court"
	"padel-club-api/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCourt(t *testing.T, pricePerHourCents int64, active bool) *court.Court {
	t.Helper()
	c, err := court.NewCourt(uuid.New(), "Cancha 1", "indoor", pricePerHourCents, active)
	require.NoError(t, err)
	return c
}

func TestFactoryCreateBooking(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	factory := booking.NewFactory(clock.NewFixedClock(now))
	customer, err := booking.NewCustomer("Juan Pérez", "+5491155551234")
	require.NoError(t, err)

	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	slot := mustSlot(t, start, start.Add(90*time.Minute))

	t.Run("derives price from hourly rate", func(t *testing.T) {
		c := newTestCourt(t, 10000, true)

		b, err := factory.CreateBooking(c, customer, slot, nil, booking.PaymentCash, false, booking.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, int64(15000), b.Price().Cents())
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.False(t, b.IsPaid())
		assert.Nil(t, b.PaidAt())
	})

	t.Run("explicit price overrides derivation", func(t *testing.T) {
		c := newTestCourt(t, 10000, true)
		price := int64(12000)

		b, err := factory.CreateBooking(c, customer, slot, &price, booking.PaymentCash, false, booking.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, int64(12000), b.Price().Cents())
	})

	t.Run("paid at creation stamps paidAt", func(t *testing.T) {
		c := newTestCourt(t, 10000, true)

		b, err := factory.CreateBooking(c, customer, slot, nil, booking.PaymentMercadoPago, true, booking.StatusConfirmed)
		require.NoError(t, err)
		require.NotNil(t, b.PaidAt())
		assert.Equal(t, now, *b.PaidAt())
	})

	t.Run("inactive court rejected", func(t *testing.T) {
		c := newTestCourt(t, 10000, false)

		_, err := factory.CreateBooking(c, customer, slot, nil, booking.PaymentCash, false, booking.StatusConfirmed)
		assert.ErrorIs(t, err, booking.ErrCourtInactive)
	})
}

func TestBookingMarkPaid(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	factory := booking.NewFactory(clock.NewFixedClock(now))
	customer, err := booking.NewCustomer("Ana", "+5491155551234")
	require.NoError(t, err)
	c := newTestCourt(t, 10000, true)
	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	slot := mustSlot(t, start, start.Add(time.Hour))

	t.Run("transitions to paid confirmed", func(t *testing.T) {
		b, err := factory.CreateBooking(c, customer, slot, nil, booking.PaymentCash, false, booking.StatusPending)
		require.NoError(t, err)

		paidAt := now.Add(time.Hour)
		require.NoError(t, b.MarkPaid("mp-123", booking.PaymentMercadoPago, paidAt))

		assert.True(t, b.IsPaid())
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, booking.PaymentMercadoPago, b.PaymentMethod())
		require.NotNil(t, b.ExternalPaymentID())
		assert.Equal(t, "mp-123", *b.ExternalPaymentID())
		require.NotNil(t, b.PaidAt())
		assert.Equal(t, paidAt, *b.PaidAt())
	})

	t.Run("paying twice fails", func(t *testing.T) {
		b, err := factory.CreateBooking(c, customer, slot, nil, booking.PaymentCash, true, booking.StatusConfirmed)
		require.NoError(t, err)

		err = b.MarkPaid("mp-456", booking.PaymentMercadoPago, now)
		assert.ErrorIs(t, err, booking.ErrAlreadyPaid)
	})

	t.Run("cancelled booking cannot be paid", func(t *testing.T) {
		b, err := factory.CreateBooking(c, customer, slot, nil, booking.PaymentCash, false, booking.StatusConfirmed)
		require.NoError(t, err)
		b.Cancel()

		err = b.MarkPaid("mp-789", booking.PaymentMercadoPago, now)
		assert.ErrorIs(t, err, booking.ErrAlreadyCancelled)
	})
}

func TestBookingConflictsWith(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	factory := booking.NewFactory(clock.NewFixedClock(now))
	customer, err := booking.NewCustomer("Ana", "+5491155551234")
	require.NoError(t, err)
	c := newTestCourt(t, 10000, true)
	other := newTestCourt(t, 10000, true)
	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	build := func(t *testing.T, ct *court.Court, from, to time.Time, status booking.Status) *booking.Booking {
		t.Helper()
		b, err := factory.CreateBooking(ct, customer, mustSlot(t, from, to), nil, booking.PaymentCash, false, status)
		require.NoError(t, err)
		return b
	}

	a := build(t, c, start, start.Add(time.Hour), booking.StatusConfirmed)

	t.Run("same court overlapping slot conflicts", func(t *testing.T) {
		b := build(t, c, start.Add(30*time.Minute), start.Add(90*time.Minute), booking.StatusPending)
		assert.True(t, a.ConflictsWith(b))
	})

	t.Run("different court never conflicts", func(t *testing.T) {
		b := build(t, other, start, start.Add(time.Hour), booking.StatusConfirmed)
		assert.False(t, a.ConflictsWith(b))
	})

	t.Run("cancelled booking frees the slot", func(t *testing.T) {
		b := build(t, c, start, start.Add(time.Hour), booking.StatusConfirmed)
		b.Cancel()
		assert.False(t, a.ConflictsWith(b))
	})
}
