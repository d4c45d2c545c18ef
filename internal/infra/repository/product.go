package repository

import (
	"context"

	"padel-club-api/internal/infra"
	"padel-club-api/internal/infra/db"

	"github.com/google/uuid"
)

type ProductRepository struct {
	db db.DBTX
}

func NewProductRepository(dbtx db.DBTX) *ProductRepository {
	return &ProductRepository{db: dbtx}
}

// Conditional decrement: the WHERE clause makes the stock check and the
// mutation one atomic statement, so a shortfall shows up as zero rows.
const decrementStockSQL = `
UPDATE products
SET stock = stock - $2, updated_at = now()
WHERE id = $1 AND stock >= $2`

func (r *ProductRepository) DecrementStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, quantity int) (int64, error) {
	tag, err := tx.Exec(ctx, decrementStockSQL, productID, quantity)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to decrement product stock", err)
	}
	return tag.RowsAffected(), nil
}
