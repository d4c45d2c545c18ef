package booking

import (
	"errors"

	"padel-club-api/internal/domain/court"
	"padel-club-api/internal/pkg/clock"
)

var ErrCourtInactive = errors.New("court is not active")

type Factory struct {
	Clock clock.Clock
}

func NewFactory(clock clock.Clock) *Factory {
	return &Factory{Clock: clock}
}

// CreateBooking builds a booking for one slot, deriving the price from the
// court's hourly rate when none is supplied. Derivation happens here, at
// construction time, never as a hidden persistence hook.
func (f *Factory) CreateBooking(
	c *court.Court,
	customer Customer,
	slot TimeSlot,
	priceCents *int64,
	method PaymentMethod,
	isPaid bool,
	status Status,
) (*Booking, error) {
	if !c.IsActive() {
		return nil, ErrCourtInactive
	}

	var cents int64
	if priceCents != nil {
		cents = *priceCents
	} else {
		derived, err := c.PriceFor(slot.Duration())
		if err != nil {
			return nil, err
		}
		cents = derived
	}

	price, err := NewMoney(cents)
	if err != nil {
		return nil, err
	}

	return NewBooking(c.ID(), customer, slot, price, status, method, isPaid, f.Clock.Now())
}
