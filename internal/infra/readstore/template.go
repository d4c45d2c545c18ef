package readstore

import (
	"context"

	"padel-club-api/internal/domain/booking"
	"padel-club-api/internal/domain/recurring"
	"padel-club-api/internal/infra"
	"padel-club-api/internal/infra/db"
	"padel-club-api/internal/pkg/pgconv"
	"padel-club-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type TemplateReadStore struct {
	db db.DBTX
}

func NewTemplateReadStore(dbtx db.DBTX) *TemplateReadStore {
	return &TemplateReadStore{db: dbtx}
}

const templateColumns = `
    t.id, t.court_id, t.customer_name, t.customer_phone,
    t.day_of_week, t.start_time, t.duration_minutes,
    t.price_cents, t.payment_method, t.is_paid, t.is_active,
    t.valid_from, t.valid_to, t.notes, t.created_at, t.updated_at`

const findTemplatesSQL = `
SELECT` + templateColumns + `, c.name
FROM recurring_bookings t
JOIN courts c ON c.id = t.court_id
WHERE t.is_active OR $1
ORDER BY t.day_of_week, t.start_time`

func (r *TemplateReadStore) FindAll(ctx context.Context, includeInactive bool) ([]*queries.TemplateView, error) {
	rows, err := r.db.Query(ctx, findTemplatesSQL, includeInactive)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find recurring bookings", err)
	}
	defer rows.Close()

	var views []*queries.TemplateView
	for rows.Next() {
		v, err := scanTemplateView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan recurring booking", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate recurring bookings", err)
	}
	return views, nil
}

const findTemplateViewByIDSQL = `
SELECT` + templateColumns + `, c.name
FROM recurring_bookings t
JOIN courts c ON c.id = t.court_id
WHERE t.id = $1`

func (r *TemplateReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.TemplateView, error) {
	v, err := scanTemplateView(r.db.QueryRow(ctx, findTemplateViewByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("recurring booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find recurring booking", err)
	}
	return v, nil
}

const findTemplateEntityByIDSQL = `
SELECT` + templateColumns + `
FROM recurring_bookings t
WHERE t.id = $1`

func (r *TemplateReadStore) FindEntityByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*recurring.Template, error) {
	t, err := scanTemplateEntity(dbtx.QueryRow(ctx, findTemplateEntityByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("recurring booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find recurring booking", err)
	}
	return t, nil
}

const findActiveTemplatesSQL = `
SELECT` + templateColumns + `
FROM recurring_bookings t
WHERE t.is_active
ORDER BY t.day_of_week, t.start_time`

func (r *TemplateReadStore) FindActive(ctx context.Context, dbtx db.DBTX) ([]*recurring.Template, error) {
	rows, err := dbtx.Query(ctx, findActiveTemplatesSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active recurring bookings", err)
	}
	defer rows.Close()

	var templates []*recurring.Template
	for rows.Next() {
		t, err := scanTemplateEntity(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan recurring booking", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate recurring bookings", err)
	}
	return templates, nil
}

type templateRow struct {
	id            uuid.UUID
	courtID       uuid.UUID
	customerName  string
	customerPhone string
	dayOfWeek     int
	startTime     string
	durationMin   int
	priceCents    int64
	paymentMethod string
	isPaid        bool
	isActive      bool
	validFrom     pgtype.Timestamptz
	validTo       pgtype.Timestamptz
	notes         pgtype.Text
	createdAt     pgtype.Timestamptz
	updatedAt     pgtype.Timestamptz
}

func scanTemplateRow(row rowScanner, extra ...any) (*templateRow, error) {
	var t templateRow
	dest := []any{
		&t.id, &t.courtID, &t.customerName, &t.customerPhone,
		&t.dayOfWeek, &t.startTime, &t.durationMin,
		&t.priceCents, &t.paymentMethod, &t.isPaid, &t.isActive,
		&t.validFrom, &t.validTo, &t.notes, &t.createdAt, &t.updatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTemplateView(row rowScanner) (*queries.TemplateView, error) {
	var courtName string
	t, err := scanTemplateRow(row, &courtName)
	if err != nil {
		return nil, err
	}

	var notes string
	if t.notes.Valid {
		notes = t.notes.String
	}
	return &queries.TemplateView{
		ID:            t.id,
		CourtID:       t.courtID,
		CourtName:     courtName,
		CustomerName:  t.customerName,
		CustomerPhone: t.customerPhone,
		DayOfWeek:     t.dayOfWeek,
		StartTime:     t.startTime,
		DurationMin:   t.durationMin,
		PriceCents:    t.priceCents,
		PaymentMethod: t.paymentMethod,
		IsPaid:        t.isPaid,
		IsActive:      t.isActive,
		ValidFrom:     pgconv.TimeFromPgtype(t.validFrom),
		ValidTo:       pgconv.TimePtrFromPgtype(t.validTo),
		Notes:         notes,
		CreatedAt:     pgconv.TimeFromPgtype(t.createdAt),
	}, nil
}

func scanTemplateEntity(row rowScanner) (*recurring.Template, error) {
	t, err := scanTemplateRow(row)
	if err != nil {
		return nil, err
	}

	var notes string
	if t.notes.Valid {
		notes = t.notes.String
	}
	return recurring.Reconstruct(
		t.id, t.courtID,
		booking.ReconstructCustomer(t.customerName, t.customerPhone),
		t.dayOfWeek, t.startTime, t.durationMin,
		t.priceCents, booking.PaymentMethod(t.paymentMethod),
		t.isPaid, t.isActive,
		pgconv.TimeFromPgtype(t.validFrom),
		pgconv.TimePtrFromPgtype(t.validTo),
		notes,
		pgconv.TimeFromPgtype(t.createdAt),
		pgconv.TimeFromPgtype(t.updatedAt),
	), nil
}
