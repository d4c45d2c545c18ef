package queries

import (
	"context"
	"time"

	"padel-club-api/internal/infra"
	"padel-club-api/internal/pkg/errs"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID                uuid.UUID  `json:"id"`
	CourtID           uuid.UUID  `json:"court_id"`
	CourtName         string     `json:"court_name"`
	CustomerName      string     `json:"customer_name"`
	CustomerPhone     string     `json:"customer_phone"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           time.Time  `json:"end_time"`
	PriceCents        int64      `json:"price_cents"`
	Status            string     `json:"status"`
	IsPaid            bool       `json:"is_paid"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
	PaymentMethod     string     `json:"payment_method"`
	ExternalPaymentID *string    `json:"external_payment_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type CourtView struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	CourtType         string    `json:"court_type"`
	PricePerHourCents int64     `json:"price_per_hour_cents"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]*BookingView, error)
	ListCourts(ctx context.Context) ([]*CourtView, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByRange(ctx context.Context, from, to time.Time) ([]*BookingView, error)
}

type CourtViewRepo interface {
	FindAll(ctx context.Context) ([]*CourtView, error)
}

type bookingQueriesImpl struct {
	bookings BookingViewRepo
	courts   CourtViewRepo
}

func NewBookingQueries(bookings BookingViewRepo, courts CourtViewRepo) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, courts: courts}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByRange(ctx context.Context, from, to time.Time) ([]*BookingView, error) {
	return q.bookings.FindByRange(ctx, from, to)
}

func (q *bookingQueriesImpl) ListCourts(ctx context.Context) ([]*CourtView, error) {
	return q.courts.FindAll(ctx)
}
