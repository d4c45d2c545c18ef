package queries

import (
	"context"
	"time"

	"padel-club-api/internal/infra"
	"padel-club-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type CashboxSummaryView struct {
	CashSalesCents    int64 `json:"cash_sales_cents"`
	CashBookingsCents int64 `json:"cash_bookings_cents"`
	MovementsInCents  int64 `json:"movements_in_cents"`
	MovementsOutCents int64 `json:"movements_out_cents"`
	ExpectedCents     int64 `json:"expected_cents"`
	DifferenceCents   int64 `json:"difference_cents"`
}

type CashboxSessionView struct {
	ID               uuid.UUID           `json:"id"`
	Status           string              `json:"status"`
	StartAmountCents int64               `json:"start_amount_cents"`
	EndAmountCents   *int64              `json:"end_amount_cents,omitempty"`
	OpenedAt         time.Time           `json:"opened_at"`
	ClosedAt         *time.Time          `json:"closed_at,omitempty"`
	Notes            string              `json:"notes,omitempty"`
	Summary          *CashboxSummaryView `json:"summary,omitempty"`
}

type CashboxMovementView struct {
	ID          uuid.UUID `json:"id"`
	SessionID   uuid.UUID `json:"session_id"`
	Type        string    `json:"type"`
	AmountCents int64     `json:"amount_cents"`
	Concept     string    `json:"concept"`
	CreatedAt   time.Time `json:"created_at"`
}

type CashboxQueries interface {
	GetCurrent(ctx context.Context) (*CashboxSessionView, error)
	GetLastClosed(ctx context.Context) (*CashboxSessionView, error)
	ListMovements(ctx context.Context, sessionID uuid.UUID) ([]*CashboxMovementView, error)
}

type CashboxViewRepo interface {
	FindOpen(ctx context.Context) (*CashboxSessionView, error)
	FindLastClosed(ctx context.Context) (*CashboxSessionView, error)
	FindMovements(ctx context.Context, sessionID uuid.UUID) ([]*CashboxMovementView, error)
}

type cashboxQueriesImpl struct {
	repo CashboxViewRepo
}

func NewCashboxQueries(repo CashboxViewRepo) CashboxQueries {
	return &cashboxQueriesImpl{repo: repo}
}

func (q *cashboxQueriesImpl) GetCurrent(ctx context.Context) (*CashboxSessionView, error) {
	view, err := q.repo.FindOpen(ctx)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrNoOpenSession)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *cashboxQueriesImpl) GetLastClosed(ctx context.Context) (*CashboxSessionView, error) {
	view, err := q.repo.FindLastClosed(ctx)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrNoOpenSession)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *cashboxQueriesImpl) ListMovements(ctx context.Context, sessionID uuid.UUID) ([]*CashboxMovementView, error) {
	return q.repo.FindMovements(ctx, sessionID)
}
