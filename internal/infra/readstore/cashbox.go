package readstore

import (
	"context"
	"time"

	"padel-club-api/internal/domain/cashbox"
	"padel-club-api/internal/infra"
	"padel-club-api/internal/infra/db"
	"padel-club-api/internal/pkg/pgconv"
	"padel-club-api/internal/usecase/queries"
	"padel-club-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CashboxReadStore struct {
	db db.DBTX
}

func NewCashboxReadStore(dbtx db.DBTX) *CashboxReadStore {
	return &CashboxReadStore{db: dbtx}
}

const cashboxSessionColumns = `
    id, status, start_amount_cents, end_amount_cents,
    opened_at, closed_at, notes,
    cash_sales_cents, cash_bookings_cents,
    movements_in_cents, movements_out_cents,
    expected_cents, difference_cents`

const findOpenSessionSQL = `
SELECT` + cashboxSessionColumns + `
FROM cashbox_sessions
WHERE status = 'open'`

const findLastClosedSessionSQL = `
SELECT` + cashboxSessionColumns + `
FROM cashbox_sessions
WHERE status = 'closed'
ORDER BY closed_at DESC
LIMIT 1`

func (r *CashboxReadStore) FindOpen(ctx context.Context) (*queries.CashboxSessionView, error) {
	return r.findSessionView(ctx, findOpenSessionSQL)
}

func (r *CashboxReadStore) FindLastClosed(ctx context.Context) (*queries.CashboxSessionView, error) {
	return r.findSessionView(ctx, findLastClosedSessionSQL)
}

func (r *CashboxReadStore) findSessionView(ctx context.Context, sql string) (*queries.CashboxSessionView, error) {
	entity, err := r.scanSession(r.db.QueryRow(ctx, sql))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("cashbox session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find cashbox session", err)
	}
	return sessionToView(entity), nil
}

// FindOpenSession rehydrates the open session as a domain entity so close
// logic can run on it inside the caller's transaction.
func (r *CashboxReadStore) FindOpenSession(ctx context.Context, dbtx db.DBTX) (*cashbox.Session, error) {
	entity, err := r.scanSession(dbtx.QueryRow(ctx, findOpenSessionSQL))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("no open cashbox session", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find open cashbox session", err)
	}
	return entity, nil
}

const findMovementsSQL = `
SELECT id, session_id, movement_type, amount_cents, concept, created_at
FROM cashbox_movements
WHERE session_id = $1
ORDER BY created_at`

func (r *CashboxReadStore) FindMovements(ctx context.Context, sessionID uuid.UUID) ([]*queries.CashboxMovementView, error) {
	rows, err := r.db.Query(ctx, findMovementsSQL, sessionID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find cashbox movements", err)
	}
	defer rows.Close()

	var views []*queries.CashboxMovementView
	for rows.Next() {
		var v queries.CashboxMovementView
		if err := rows.Scan(&v.ID, &v.SessionID, &v.Type, &v.AmountCents, &v.Concept, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan cashbox movement", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate cashbox movements", err)
	}
	return views, nil
}

const cashTotalsSQL = `
SELECT
    COALESCE((SELECT SUM(s.total_cents) FROM sales s
              WHERE s.payment_method = 'cash'
                AND s.created_at >= $2 AND s.created_at < $3), 0),
    COALESCE((SELECT SUM(b.price_cents) FROM bookings b
              WHERE b.payment_method = 'cash' AND b.is_paid
                AND b.status <> 'cancelled'
                AND b.paid_at >= $2 AND b.paid_at < $3), 0),
    COALESCE((SELECT SUM(m.amount_cents) FROM cashbox_movements m
              WHERE m.session_id = $1 AND m.movement_type = 'in'), 0),
    COALESCE((SELECT SUM(m.amount_cents) FROM cashbox_movements m
              WHERE m.session_id = $1 AND m.movement_type = 'out'), 0)`

func (r *CashboxReadStore) CashTotals(ctx context.Context, dbtx db.DBTX, sessionID uuid.UUID, since, until time.Time) (*shared.CashTotals, error) {
	var t shared.CashTotals
	err := dbtx.QueryRow(ctx, cashTotalsSQL, sessionID, since, until).Scan(
		&t.CashSalesCents, &t.CashBookingsCents, &t.MovementsInCents, &t.MovementsOutCents,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to compute cash totals", err)
	}
	return &t, nil
}

func (r *CashboxReadStore) scanSession(row rowScanner) (*cashbox.Session, error) {
	var (
		id              uuid.UUID
		status          string
		startAmount     int64
		endAmount       pgtype.Int8
		openedAt        time.Time
		closedAt        pgtype.Timestamptz
		notes           pgtype.Text
		cashSales       pgtype.Int8
		cashBookings    pgtype.Int8
		movementsIn     pgtype.Int8
		movementsOut    pgtype.Int8
		expectedCents   pgtype.Int8
		differenceCents pgtype.Int8
	)
	err := row.Scan(
		&id, &status, &startAmount, &endAmount,
		&openedAt, &closedAt, &notes,
		&cashSales, &cashBookings, &movementsIn, &movementsOut,
		&expectedCents, &differenceCents,
	)
	if err != nil {
		return nil, err
	}

	var summary *cashbox.Summary
	if expectedCents.Valid {
		summary = &cashbox.Summary{
			CashSalesCents:    cashSales.Int64,
			CashBookingsCents: cashBookings.Int64,
			MovementsInCents:  movementsIn.Int64,
			MovementsOutCents: movementsOut.Int64,
			ExpectedCents:     expectedCents.Int64,
			DifferenceCents:   differenceCents.Int64,
		}
	}

	var notesStr string
	if notes.Valid {
		notesStr = notes.String
	}

	return cashbox.Reconstruct(
		id,
		cashbox.Status(status),
		startAmount,
		pgconv.Int64PtrFromPgtype(endAmount),
		openedAt,
		pgconv.TimePtrFromPgtype(closedAt),
		notesStr,
		summary,
	), nil
}

func sessionToView(s *cashbox.Session) *queries.CashboxSessionView {
	view := &queries.CashboxSessionView{
		ID:               s.ID(),
		Status:           string(s.Status()),
		StartAmountCents: s.StartAmountCents(),
		EndAmountCents:   s.EndAmountCents(),
		OpenedAt:         s.OpenedAt(),
		ClosedAt:         s.ClosedAt(),
		Notes:            s.Notes(),
	}
	if summary := s.Summary(); summary != nil {
		view.Summary = &queries.CashboxSummaryView{
			CashSalesCents:    summary.CashSalesCents,
			CashBookingsCents: summary.CashBookingsCents,
			MovementsInCents:  summary.MovementsInCents,
			MovementsOutCents: summary.MovementsOutCents,
			ExpectedCents:     summary.ExpectedCents,
			DifferenceCents:   summary.DifferenceCents,
		}
	}
	return view
}
