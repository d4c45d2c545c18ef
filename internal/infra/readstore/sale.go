package readstore

import (
	"context"

	"padel-club-api/internal/infra"
	"padel-club-api/internal/infra/db"
	"padel-club-api/internal/pkg/pgconv"
	"padel-club-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type SaleReadStore struct {
	db db.DBTX
}

func NewSaleReadStore(dbtx db.DBTX) *SaleReadStore {
	return &SaleReadStore{db: dbtx}
}

const findSaleByPaymentIDSQL = `
SELECT id, total_cents, payment_method, external_payment_id, created_at
FROM sales
WHERE external_payment_id = $1`

func (r *SaleReadStore) FindSnapshotByPaymentID(ctx context.Context, dbtx db.DBTX, paymentID string) (*shared.SaleSnapshot, error) {
	var (
		s   shared.SaleSnapshot
		pid pgtype.Text
	)
	err := dbtx.QueryRow(ctx, findSaleByPaymentIDSQL, paymentID).Scan(
		&s.ID, &s.TotalCents, &s.PaymentMethod, &pid, &s.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("sale not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find sale by payment ID", err)
	}
	s.ExternalPaymentID = pgconv.StringPtrFromPgtype(pid)
	return &s, nil
}

const findProductByIDSQL = `
SELECT id, name, price_cents, stock, is_active
FROM products
WHERE id = $1`

func (r *SaleReadStore) FindProductByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.ProductSnapshot, error) {
	var s shared.ProductSnapshot
	err := dbtx.QueryRow(ctx, findProductByIDSQL, id).Scan(
		&s.ID, &s.Name, &s.PriceCents, &s.Stock, &s.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}
	return &s, nil
}
