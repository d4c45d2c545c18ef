package readstore

import (
	"context"
	"encoding/json"

	"padel-club-api/internal/infra"
	"padel-club-api/internal/infra/db"
	"padel-club-api/internal/pkg/pgconv"
	"padel-club-api/internal/usecase/shared"
)

type PendingReadStore struct {
	db db.DBTX
}

func NewPendingReadStore(dbtx db.DBTX) *PendingReadStore {
	return &PendingReadStore{db: dbtx}
}

const findPendingPaymentSQL = `
SELECT id, reference_id, court_id, customer_name, customer_phone,
       slots, total_cents, created_at, expires_at
FROM pending_payments
WHERE reference_id = $1`

func (r *PendingReadStore) FindPaymentByReference(ctx context.Context, dbtx db.DBTX, referenceID string) (*shared.PendingPaymentSnapshot, error) {
	var (
		s     shared.PendingPaymentSnapshot
		slots []byte
	)
	err := dbtx.QueryRow(ctx, findPendingPaymentSQL, referenceID).Scan(
		&s.ID, &s.ReferenceID, &s.CourtID, &s.CustomerName, &s.CustomerPhone,
		&slots, &s.TotalCents, &s.CreatedAt, &s.ExpiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("pending payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find pending payment", err)
	}
	if err := json.Unmarshal(slots, &s.Slots); err != nil {
		return nil, infra.WrapRepoErr("failed to decode pending payment slots", err)
	}
	return &s, nil
}

const findPendingSaleSQL = `
SELECT id, reference_id, items, total_cents, created_at, expires_at
FROM pending_sales
WHERE reference_id = $1`

func (r *PendingReadStore) FindSaleByReference(ctx context.Context, dbtx db.DBTX, referenceID string) (*shared.PendingSaleSnapshot, error) {
	var (
		s     shared.PendingSaleSnapshot
		items []byte
	)
	err := dbtx.QueryRow(ctx, findPendingSaleSQL, referenceID).Scan(
		&s.ID, &s.ReferenceID, &items, &s.TotalCents, &s.CreatedAt, &s.ExpiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("pending sale not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find pending sale", err)
	}
	if err := json.Unmarshal(items, &s.Items); err != nil {
		return nil, infra.WrapRepoErr("failed to decode pending sale items", err)
	}
	return &s, nil
}
