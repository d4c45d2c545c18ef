//go:build unit

package sale_test

import (
	"testing"

	"padel-club-api/internal/domain/booking"
	"padel-club-api/internal/domain/sale"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	productID := uuid.New()

	t.Run("subtotal multiplies quantity by captured price", func(t *testing.T) {
		item, err := sale.NewItem(productID, 3, 2500)
		require.NoError(t, err)
		assert.Equal(t, int64(7500), item.SubtotalCents())
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		_, err := sale.NewItem(productID, 0, 2500)
		assert.ErrorIs(t, err, sale.ErrInvalidQuantity)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		_, err := sale.NewItem(productID, 1, -1)
		assert.ErrorIs(t, err, sale.ErrNegativePrice)
	})
}

func TestNewSale(t *testing.T) {
	t.Run("total sums item subtotals", func(t *testing.T) {
		a, err := sale.NewItem(uuid.New(), 2, 1500)
		require.NoError(t, err)
		b, err := sale.NewItem(uuid.New(), 1, 4000)
		require.NoError(t, err)

		s, err := sale.NewSale([]sale.Item{a, b}, booking.PaymentCash, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(7000), s.TotalCents())
		assert.Nil(t, s.ExternalPaymentID())
	})

	t.Run("provider sale carries payment id", func(t *testing.T) {
		item, err := sale.NewItem(uuid.New(), 1, 1500)
		require.NoError(t, err)

		paymentID := "mp-987"
		s, err := sale.NewSale([]sale.Item{item}, booking.PaymentMercadoPago, &paymentID)
		require.NoError(t, err)
		require.NotNil(t, s.ExternalPaymentID())
		assert.Equal(t, "mp-987", *s.ExternalPaymentID())
	})

	t.Run("empty sale rejected", func(t *testing.T) {
		_, err := sale.NewSale(nil, booking.PaymentCash, nil)
		assert.ErrorIs(t, err, sale.ErrNoItems)
	})
}
