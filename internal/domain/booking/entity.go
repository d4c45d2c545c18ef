package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyPaid      = errors.New("booking is already paid")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrInvalidStatus    = errors.New("invalid booking status")
)

type Booking struct {
	id                uuid.UUID
	courtID           uuid.UUID
	customer          Customer
	slot              TimeSlot
	price             Money
	status            Status
	isPaid            bool
	paidAt            *time.Time
	paymentMethod     PaymentMethod
	externalPaymentID *string
	createdAt         time.Time
	updatedAt         time.Time
}

func NewBooking(
	courtID uuid.UUID,
	customer Customer,
	slot TimeSlot,
	price Money,
	status Status,
	paymentMethod PaymentMethod,
	isPaid bool,
	now time.Time,
) (*Booking, error) {
	if !status.IsValid() || status == StatusCancelled {
		return nil, ErrInvalidStatus
	}

	b := &Booking{
		id:            uuid.New(),
		courtID:       courtID,
		customer:      customer,
		slot:          slot,
		price:         price,
		status:        status,
		paymentMethod: paymentMethod,
	}
	if isPaid {
		paidAt := now
		b.isPaid = true
		b.paidAt = &paidAt
	}
	return b, nil
}

func Reconstruct(
	id, courtID uuid.UUID,
	customer Customer,
	slot TimeSlot,
	price Money,
	status Status,
	isPaid bool,
	paidAt *time.Time,
	paymentMethod PaymentMethod,
	externalPaymentID *string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                id,
		courtID:           courtID,
		customer:          customer,
		slot:              slot,
		price:             price,
		status:            status,
		isPaid:            isPaid,
		paidAt:            paidAt,
		paymentMethod:     paymentMethod,
		externalPaymentID: externalPaymentID,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// MarkPaid records the payment transition. It is the only place isPaid flips,
// so the cashbox window can rely on paidAt.
func (b *Booking) MarkPaid(externalPaymentID string, method PaymentMethod, now time.Time) error {
	if b.isPaid {
		return ErrAlreadyPaid
	}
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.isPaid = true
	b.paidAt = &now
	b.status = StatusConfirmed
	b.paymentMethod = method
	b.externalPaymentID = &externalPaymentID
	return nil
}

// Cancel is idempotent: cancelling a cancelled booking is a no-op.
func (b *Booking) Cancel() {
	b.status = StatusCancelled
}

func (b *Booking) ConflictsWith(other *Booking) bool {
	return b.courtID == other.courtID &&
		b.status.Blocks() && other.status.Blocks() &&
		b.slot.Overlaps(other.slot)
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) CourtID() uuid.UUID           { return b.courtID }
func (b *Booking) Customer() Customer           { return b.customer }
func (b *Booking) Slot() TimeSlot               { return b.slot }
func (b *Booking) Price() Money                 { return b.price }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) IsPaid() bool                 { return b.isPaid }
func (b *Booking) PaidAt() *time.Time           { return b.paidAt }
func (b *Booking) PaymentMethod() PaymentMethod { return b.paymentMethod }
func (b *Booking) ExternalPaymentID() *string   { return b.externalPaymentID }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
