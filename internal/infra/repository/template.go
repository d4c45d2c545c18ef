package repository

import (
	"context"

	"padel-club-api/internal/domain/recurring"
	"padel-club-api/internal/infra"
	"padel-club-api/internal/infra/db"

	"github.com/google/uuid"
)

type TemplateRepository struct {
	db db.DBTX
}

func NewTemplateRepository(dbtx db.DBTX) *TemplateRepository {
	return &TemplateRepository{db: dbtx}
}

const createTemplateSQL = `
INSERT INTO recurring_bookings (
    id, court_id, customer_name, customer_phone,
    day_of_week, start_time, duration_minutes,
    price_cents, payment_method, is_paid, is_active,
    valid_from, valid_to, notes
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id`

func (r *TemplateRepository) Create(ctx context.Context, tx db.DBTX, t *recurring.Template) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createTemplateSQL,
		t.ID(), t.CourtID(),
		t.Customer().Name(), t.Customer().Phone(),
		int(t.DayOfWeek()), t.StartTime(), t.DurationMinutes(),
		t.PriceCents(), string(t.PaymentMethod()), t.IsPaid(), t.IsActive(),
		t.ValidFrom(), t.ValidTo(), t.Notes(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create recurring booking", err)
	}
	return id, nil
}

const updateTemplateSQL = `
UPDATE recurring_bookings
SET court_id = $2, customer_name = $3, customer_phone = $4,
    day_of_week = $5, start_time = $6, duration_minutes = $7,
    price_cents = $8, payment_method = $9, is_paid = $10, is_active = $11,
    valid_from = $12, valid_to = $13, notes = $14, updated_at = now()
WHERE id = $1`

func (r *TemplateRepository) Update(ctx context.Context, tx db.DBTX, t *recurring.Template) error {
	tag, err := tx.Exec(ctx, updateTemplateSQL,
		t.ID(), t.CourtID(),
		t.Customer().Name(), t.Customer().Phone(),
		int(t.DayOfWeek()), t.StartTime(), t.DurationMinutes(),
		t.PriceCents(), string(t.PaymentMethod()), t.IsPaid(), t.IsActive(),
		t.ValidFrom(), t.ValidTo(), t.Notes(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update recurring booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("recurring booking not found", nil, infra.KindNotFound)
	}
	return nil
}

const deactivateTemplateSQL = `
UPDATE recurring_bookings
SET is_active = false, updated_at = now()
WHERE id = $1`

func (r *TemplateRepository) Deactivate(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deactivateTemplateSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to deactivate recurring booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("recurring booking not found", nil, infra.KindNotFound)
	}
	return nil
}
