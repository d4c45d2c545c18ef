package repository

import (
	"context"
	"encoding/json"
	"time"

	"padel-club-api/internal/infra"
	"padel-club-api/internal/infra/db"
	"padel-club-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type PendingPaymentRepository struct {
	db db.DBTX
}

func NewPendingPaymentRepository(dbtx db.DBTX) *PendingPaymentRepository {
	return &PendingPaymentRepository{db: dbtx}
}

const createPendingPaymentSQL = `
INSERT INTO pending_payments (
    id, reference_id, court_id, customer_name, customer_phone,
    slots, total_cents, created_at, expires_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (r *PendingPaymentRepository) Create(ctx context.Context, tx db.DBTX, p *shared.PendingPaymentSnapshot) error {
	slots, err := json.Marshal(p.Slots)
	if err != nil {
		return infra.WrapRepoErr("failed to encode pending payment slots", err)
	}
	if _, err := tx.Exec(ctx, createPendingPaymentSQL,
		p.ID, p.ReferenceID, p.CourtID, p.CustomerName, p.CustomerPhone,
		slots, p.TotalCents, p.CreatedAt, p.ExpiresAt,
	); err != nil {
		return infra.WrapRepoErr("failed to create pending payment", err)
	}
	return nil
}

func (r *PendingPaymentRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM pending_payments WHERE id = $1`, id); err != nil {
		return infra.WrapRepoErr("failed to delete pending payment", err)
	}
	return nil
}

func (r *PendingPaymentRepository) DeleteExpired(ctx context.Context, tx db.DBTX, before time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM pending_payments WHERE expires_at < $1`, before)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired pending payments", err)
	}
	return tag.RowsAffected(), nil
}

type PendingSaleRepository struct {
	db db.DBTX
}

func NewPendingSaleRepository(dbtx db.DBTX) *PendingSaleRepository {
	return &PendingSaleRepository{db: dbtx}
}

const createPendingSaleSQL = `
INSERT INTO pending_sales (id, reference_id, items, total_cents, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)`

func (r *PendingSaleRepository) Create(ctx context.Context, tx db.DBTX, p *shared.PendingSaleSnapshot) error {
	items, err := json.Marshal(p.Items)
	if err != nil {
		return infra.WrapRepoErr("failed to encode pending sale items", err)
	}
	if _, err := tx.Exec(ctx, createPendingSaleSQL,
		p.ID, p.ReferenceID, items, p.TotalCents, p.CreatedAt, p.ExpiresAt,
	); err != nil {
		return infra.WrapRepoErr("failed to create pending sale", err)
	}
	return nil
}

func (r *PendingSaleRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM pending_sales WHERE id = $1`, id); err != nil {
		return infra.WrapRepoErr("failed to delete pending sale", err)
	}
	return nil
}

func (r *PendingSaleRepository) DeleteExpired(ctx context.Context, tx db.DBTX, before time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM pending_sales WHERE expires_at < $1`, before)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired pending sales", err)
	}
	return tag.RowsAffected(), nil
}
