package repository

import (
	"context"

	"padel-club-api/internal/domain/cashbox"
	"padel-club-api/internal/infra"
	"padel-club-api/internal/infra/db"
)

type CashboxRepository struct {
	db db.DBTX
}

func NewCashboxRepository(dbtx db.DBTX) *CashboxRepository {
	return &CashboxRepository{db: dbtx}
}

const createSessionSQL = `
INSERT INTO cashbox_sessions (id, status, start_amount_cents, opened_at)
VALUES ($1, $2, $3, $4)`

func (r *CashboxRepository) CreateSession(ctx context.Context, tx db.DBTX, s *cashbox.Session) error {
	if _, err := tx.Exec(ctx, createSessionSQL,
		s.ID(), string(s.Status()), s.StartAmountCents(), s.OpenedAt(),
	); err != nil {
		return infra.WrapRepoErr("failed to create cashbox session", err)
	}
	return nil
}

// The six summary columns are written exactly once here and never updated
// again: the close-time snapshot is the permanent record.
const closeSessionSQL = `
UPDATE cashbox_sessions
SET status = $2,
    end_amount_cents = $3,
    closed_at = $4,
    notes = $5,
    cash_sales_cents = $6,
    cash_bookings_cents = $7,
    movements_in_cents = $8,
    movements_out_cents = $9,
    expected_cents = $10,
    difference_cents = $11
WHERE id = $1 AND status = 'open'`

func (r *CashboxRepository) CloseSession(ctx context.Context, tx db.DBTX, s *cashbox.Session) error {
	summary := s.Summary()
	if summary == nil {
		return infra.WrapRepoErr("cashbox session has no close summary", nil, infra.KindConflict)
	}

	tag, err := tx.Exec(ctx, closeSessionSQL,
		s.ID(), string(s.Status()), s.EndAmountCents(), s.ClosedAt(), s.Notes(),
		summary.CashSalesCents, summary.CashBookingsCents,
		summary.MovementsInCents, summary.MovementsOutCents,
		summary.ExpectedCents, summary.DifferenceCents,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to close cashbox session", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("open cashbox session not found", nil, infra.KindNotFound)
	}
	return nil
}

const createMovementSQL = `
INSERT INTO cashbox_movements (id, session_id, movement_type, amount_cents, concept, created_at)
VALUES ($1, $2, $3, $4, $5, now())`

func (r *CashboxRepository) CreateMovement(ctx context.Context, tx db.DBTX, m *cashbox.Movement) error {
	if _, err := tx.Exec(ctx, createMovementSQL,
		m.ID(), m.SessionID(), string(m.Kind()), m.AmountCents(), m.Concept(),
	); err != nil {
		return infra.WrapRepoErr("failed to create cashbox movement", err)
	}
	return nil
}
