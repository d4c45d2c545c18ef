package readstore

import (
	"context"

	"padel-club-api/internal/infra"
	"padel-club-api/internal/infra/db"
	"padel-club-api/internal/pkg/pgconv"
	"padel-club-api/internal/usecase/queries"
	"padel-club-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type CourtReadStore struct {
	db db.DBTX
}

func NewCourtReadStore(dbtx db.DBTX) *CourtReadStore {
	return &CourtReadStore{db: dbtx}
}

const findAllCourtsSQL = `
SELECT id, name, court_type, price_per_hour_cents, is_active, created_at, updated_at
FROM courts
ORDER BY name`

func (r *CourtReadStore) FindAll(ctx context.Context) ([]*queries.CourtView, error) {
	rows, err := r.db.Query(ctx, findAllCourtsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find courts", err)
	}
	defer rows.Close()

	var views []*queries.CourtView
	for rows.Next() {
		var v queries.CourtView
		if err := rows.Scan(&v.ID, &v.Name, &v.CourtType, &v.PricePerHourCents, &v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan court row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate court rows", err)
	}
	return views, nil
}

const findCourtByIDSQL = `
SELECT id, name, court_type, price_per_hour_cents, is_active
FROM courts
WHERE id = $1`

func (r *CourtReadStore) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.CourtSnapshot, error) {
	var s shared.CourtSnapshot
	err := dbtx.QueryRow(ctx, findCourtByIDSQL, id).Scan(
		&s.ID, &s.Name, &s.CourtType, &s.PricePerHourCents, &s.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("court not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find court by ID", err)
	}
	return &s, nil
}

const findActiveCourtsSQL = `
SELECT id, name, court_type, price_per_hour_cents, is_active
FROM courts
WHERE is_active
ORDER BY name`

func (r *CourtReadStore) FindActive(ctx context.Context, dbtx db.DBTX) ([]shared.CourtSnapshot, error) {
	rows, err := dbtx.Query(ctx, findActiveCourtsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active courts", err)
	}
	defer rows.Close()

	var snaps []shared.CourtSnapshot
	for rows.Next() {
		var s shared.CourtSnapshot
		if err := rows.Scan(&s.ID, &s.Name, &s.CourtType, &s.PricePerHourCents, &s.IsActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan court row", err)
		}
		snaps = append(snaps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate court rows", err)
	}
	return snaps, nil
}
