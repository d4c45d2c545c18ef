package repository

import (
	"context"

	"padel-club-api/internal/domain/booking"
	"padel-club-api/internal/infra"
	"padel-club-api/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

const createBookingSQL = `
INSERT INTO bookings (
    id, court_id, customer_name, customer_phone,
    start_time, end_time, price_cents, status,
    is_paid, paid_at, payment_method, external_payment_id
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookingSQL,
		b.ID(),
		b.CourtID(),
		b.Customer().Name(),
		b.Customer().Phone(),
		b.Slot().Start(),
		b.Slot().End(),
		b.Price().Cents(),
		string(b.Status()),
		b.IsPaid(),
		b.PaidAt(),
		string(b.PaymentMethod()),
		b.ExternalPaymentID(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

const updateBookingPaymentSQL = `
UPDATE bookings
SET is_paid = $2,
    paid_at = $3,
    status = $4,
    payment_method = $5,
    external_payment_id = $6,
    updated_at = now()
WHERE id = $1`

func (r *BookingRepository) UpdatePayment(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	tag, err := tx.Exec(ctx, updateBookingPaymentSQL,
		b.ID(),
		b.IsPaid(),
		b.PaidAt(),
		string(b.Status()),
		string(b.PaymentMethod()),
		b.ExternalPaymentID(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking payment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

const updateBookingStatusSQL = `
UPDATE bookings
SET status = $2, updated_at = now()
WHERE id = $1`

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error {
	tag, err := tx.Exec(ctx, updateBookingStatusSQL, id, string(status))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
