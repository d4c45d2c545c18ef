package readstore

import (
	"context"
	"time"

	"padel-club-api/internal/domain/schedule"
	"padel-club-api/internal/infra"
	"padel-club-api/internal/infra/db"
	"padel-club-api/internal/pkg/pgconv"
	"padel-club-api/internal/usecase/queries"
	"padel-club-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingViewColumns = `
    b.id, b.court_id, c.name, b.customer_name, b.customer_phone,
    b.start_time, b.end_time, b.price_cents, b.status,
    b.is_paid, b.paid_at, b.payment_method, b.external_payment_id,
    b.created_at, b.updated_at`

const findBookingByIDSQL = `
SELECT` + bookingViewColumns + `
FROM bookings b
JOIN courts c ON c.id = b.court_id
WHERE b.id = $1`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, findBookingByIDSQL, id)
	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

const findBookingsByRangeSQL = `
SELECT` + bookingViewColumns + `
FROM bookings b
JOIN courts c ON c.id = b.court_id
WHERE b.start_time < $2 AND b.end_time > $1
ORDER BY b.start_time, c.name`

func (r *BookingReadStore) FindByRange(ctx context.Context, from, to time.Time) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, findBookingsByRangeSQL, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by range", err)
	}
	defer rows.Close()

	var views []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return views, nil
}

// Blocking bookings are the conflict source of truth: pending and confirmed
// only, half-open interval overlap.
const findBlockingInRangeSQL = `
SELECT b.court_id, b.start_time, b.end_time
FROM bookings b
WHERE b.status IN ('pending', 'confirmed')
  AND b.start_time < $2 AND b.end_time > $1`

func (r *BookingReadStore) FindBlockingInRange(ctx context.Context, from, to time.Time) ([]schedule.BookedInterval, error) {
	rows, err := r.db.Query(ctx, findBlockingInRangeSQL, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find blocking bookings", err)
	}
	defer rows.Close()

	var intervals []schedule.BookedInterval
	for rows.Next() {
		var iv schedule.BookedInterval
		if err := rows.Scan(&iv.CourtID, &iv.Start, &iv.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan blocking booking", err)
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate blocking bookings", err)
	}
	return intervals, nil
}

func (r *BookingReadStore) FindActiveCourtIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM courts WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active courts", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan court id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate court ids", err)
	}
	return ids, nil
}

const bookingSnapshotColumns = `
    id, court_id, customer_name, customer_phone,
    start_time, end_time, price_cents, status,
    is_paid, paid_at, payment_method, external_payment_id`

const findBookingSnapshotByIDSQL = `
SELECT` + bookingSnapshotColumns + `
FROM bookings
WHERE id = $1`

func (r *BookingReadStore) FindSnapshotByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.BookingSnapshot, error) {
	row := dbtx.QueryRow(ctx, findBookingSnapshotByIDSQL, id)
	snap, err := scanBookingSnapshot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return snap, nil
}

const findBookingByPaymentIDSQL = `
SELECT` + bookingSnapshotColumns + `
FROM bookings
WHERE external_payment_id = $1`

func (r *BookingReadStore) FindSnapshotByPaymentID(ctx context.Context, dbtx db.DBTX, paymentID string) (*shared.BookingSnapshot, error) {
	row := dbtx.QueryRow(ctx, findBookingByPaymentIDSQL, paymentID)
	snap, err := scanBookingSnapshot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by payment ID", err)
	}
	return snap, nil
}

const findBlockingOnCourtSQL = `
SELECT` + bookingSnapshotColumns + `
FROM bookings
WHERE court_id = $1
  AND status IN ('pending', 'confirmed')
  AND start_time < $3 AND end_time > $2`

func (r *BookingReadStore) FindBlockingOnCourt(ctx context.Context, dbtx db.DBTX, courtID uuid.UUID, start, end time.Time) ([]shared.BookingSnapshot, error) {
	rows, err := dbtx.Query(ctx, findBlockingOnCourtSQL, courtID, start, end)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find blocking bookings on court", err)
	}
	defer rows.Close()

	var snaps []shared.BookingSnapshot
	for rows.Next() {
		snap, err := scanBookingSnapshot(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan blocking booking", err)
		}
		snaps = append(snaps, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate blocking bookings", err)
	}
	return snaps, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingView(row rowScanner) (*queries.BookingView, error) {
	var (
		v         queries.BookingView
		paidAt    pgtype.Timestamptz
		paymentID pgtype.Text
	)
	err := row.Scan(
		&v.ID, &v.CourtID, &v.CourtName, &v.CustomerName, &v.CustomerPhone,
		&v.StartTime, &v.EndTime, &v.PriceCents, &v.Status,
		&v.IsPaid, &paidAt, &v.PaymentMethod, &paymentID,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.PaidAt = pgconv.TimePtrFromPgtype(paidAt)
	v.ExternalPaymentID = pgconv.StringPtrFromPgtype(paymentID)
	return &v, nil
}

func scanBookingSnapshot(row rowScanner) (*shared.BookingSnapshot, error) {
	var (
		s         shared.BookingSnapshot
		paidAt    pgtype.Timestamptz
		paymentID pgtype.Text
	)
	err := row.Scan(
		&s.ID, &s.CourtID, &s.CustomerName, &s.CustomerPhone,
		&s.StartTime, &s.EndTime, &s.PriceCents, &s.Status,
		&s.IsPaid, &paidAt, &s.PaymentMethod, &paymentID,
	)
	if err != nil {
		return nil, err
	}
	s.PaidAt = pgconv.TimePtrFromPgtype(paidAt)
	s.ExternalPaymentID = pgconv.StringPtrFromPgtype(paymentID)
	return &s, nil
}
