package queries

import (
	"context"
	"time"

	"padel-club-api/internal/infra"
	"padel-club-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type TemplateView struct {
	ID            uuid.UUID  `json:"id"`
	CourtID       uuid.UUID  `json:"court_id"`
	CourtName     string     `json:"court_name"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	DayOfWeek     int        `json:"day_of_week"`
	StartTime     string     `json:"start_time"`
	DurationMin   int        `json:"duration_minutes"`
	PriceCents    int64      `json:"price_cents"`
	PaymentMethod string     `json:"payment_method"`
	IsPaid        bool       `json:"is_paid"`
	IsActive      bool       `json:"is_active"`
	ValidFrom     time.Time  `json:"valid_from"`
	ValidTo       *time.Time `json:"valid_to,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type RecurringQueries interface {
	List(ctx context.Context, includeInactive bool) ([]*TemplateView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*TemplateView, error)
}

type TemplateViewRepo interface {
	FindAll(ctx context.Context, includeInactive bool) ([]*TemplateView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*TemplateView, error)
}

type recurringQueriesImpl struct {
	repo TemplateViewRepo
}

func NewRecurringQueries(repo TemplateViewRepo) RecurringQueries {
	return &recurringQueriesImpl{repo: repo}
}

func (q *recurringQueriesImpl) List(ctx context.Context, includeInactive bool) ([]*TemplateView, error) {
	return q.repo.FindAll(ctx, includeInactive)
}

func (q *recurringQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*TemplateView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrTemplateNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}
