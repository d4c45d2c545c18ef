package repository

import (
	"context"

	"padel-club-api/internal/domain/sale"
	"padel-club-api/internal/infra"
	"padel-club-api/internal/infra/db"

	"github.com/google/uuid"
)

type SaleRepository struct {
	db db.DBTX
}

func NewSaleRepository(dbtx db.DBTX) *SaleRepository {
	return &SaleRepository{db: dbtx}
}

const createSaleSQL = `
INSERT INTO sales (id, total_cents, payment_method, external_payment_id)
VALUES ($1, $2, $3, $4)
RETURNING id`

const createSaleItemSQL = `
INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4, $5)`

func (r *SaleRepository) Create(ctx context.Context, tx db.DBTX, s *sale.Sale) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createSaleSQL,
		s.ID(), s.TotalCents(), string(s.PaymentMethod()), s.ExternalPaymentID(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create sale", err)
	}

	for _, item := range s.Items() {
		if _, err := tx.Exec(ctx, createSaleItemSQL,
			uuid.New(), id, item.ProductID(), item.Quantity(), item.UnitPriceCents(),
		); err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to create sale item", err)
		}
	}
	return id, nil
}
