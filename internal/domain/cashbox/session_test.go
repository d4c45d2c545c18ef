//go:build unit

package cashbox_test

import (
	"testing"
	"time"

	"padel-club-api/internal/domain/cashbox"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSession(t *testing.T) {
	openedAt := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)

	t.Run("opens with counted float", func(t *testing.T) {
		s, err := cashbox.OpenSession(5000, openedAt)
		require.NoError(t, err)
		assert.True(t, s.IsOpen())
		assert.Equal(t, int64(5000), s.StartAmountCents())
		assert.Equal(t, openedAt, s.OpenedAt())
		assert.Nil(t, s.Summary())
	})

	t.Run("negative float rejected", func(t *testing.T) {
		_, err := cashbox.OpenSession(-1, openedAt)
		assert.ErrorIs(t, err, cashbox.ErrNegativeAmount)
	})
}

func TestSessionClose(t *testing.T) {
	openedAt := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)
	closedAt := openedAt.Add(12 * time.Hour)

	t.Run("freezes expected cash and difference", func(t *testing.T) {
		s, err := cashbox.OpenSession(5000, openedAt)
		require.NoError(t, err)

		// float 5000 + sales 1200 + bookings 800 = expected 7000;
		// counting 6900 leaves the drawer 100 short.
		require.NoError(t, s.Close(6900, "turno noche", 1200, 800, 0, 0, closedAt))

		assert.Equal(t, cashbox.StatusClosed, s.Status())
		require.NotNil(t, s.EndAmountCents())
		assert.Equal(t, int64(6900), *s.EndAmountCents())
		require.NotNil(t, s.ClosedAt())
		assert.Equal(t, closedAt, *s.ClosedAt())

		sum := s.Summary()
		require.NotNil(t, sum)
		assert.Equal(t, int64(7000), sum.ExpectedCents)
		assert.Equal(t, int64(-100), sum.DifferenceCents)
	})

	t.Run("movements shift the expectation both ways", func(t *testing.T) {
		s, err := cashbox.OpenSession(10000, openedAt)
		require.NoError(t, err)

		require.NoError(t, s.Close(11500, "", 2000, 0, 1000, 1500, closedAt))

		sum := s.Summary()
		require.NotNil(t, sum)
		assert.Equal(t, int64(11500), sum.ExpectedCents)
		assert.Equal(t, int64(0), sum.DifferenceCents)
	})

	t.Run("closing twice fails", func(t *testing.T) {
		s, err := cashbox.OpenSession(5000, openedAt)
		require.NoError(t, err)
		require.NoError(t, s.Close(5000, "", 0, 0, 0, 0, closedAt))

		err = s.Close(5000, "", 0, 0, 0, 0, closedAt)
		assert.ErrorIs(t, err, cashbox.ErrAlreadyClosed)
	})

	t.Run("negative counted amount rejected", func(t *testing.T) {
		s, err := cashbox.OpenSession(5000, openedAt)
		require.NoError(t, err)

		err = s.Close(-1, "", 0, 0, 0, 0, closedAt)
		assert.ErrorIs(t, err, cashbox.ErrNegativeAmount)
		assert.True(t, s.IsOpen())
	})
}

func TestNewMovement(t *testing.T) {
	sessionID := uuid.New()

	t.Run("valid movement", func(t *testing.T) {
		m, err := cashbox.NewMovement(sessionID, cashbox.MovementOut, 1500, "cambio para el kiosco")
		require.NoError(t, err)
		assert.Equal(t, sessionID, m.SessionID())
		assert.Equal(t, cashbox.MovementOut, m.Kind())
		assert.Equal(t, int64(1500), m.AmountCents())
	})

	t.Run("zero or negative amount rejected", func(t *testing.T) {
		_, err := cashbox.NewMovement(sessionID, cashbox.MovementIn, 0, "x")
		assert.ErrorIs(t, err, cashbox.ErrNegativeAmount)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		_, err := cashbox.NewMovement(sessionID, cashbox.MovementType("sideways"), 100, "x")
		assert.Error(t, err)
	})
}
