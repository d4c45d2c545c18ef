package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"padel-club-api/internal/domain/booking"
	"padel-club-api/internal/domain/court"
	"padel-club-api/internal/domain/recurring"
	"padel-club-api/internal/infra"
	"padel-club-api/internal/pkg/clock"
	"padel-club-api/internal/pkg/errs"
	"padel-club-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateTemplateRequest struct {
	CourtID       uuid.UUID
	CustomerName  string
	CustomerPhone string
	DayOfWeek     int
	StartTime     string // "HH:MM" club-local
	DurationMin   int
	PriceCents    int64
	PaymentMethod string
	IsPaid        bool
	ValidFrom     time.Time
	ValidTo       *time.Time
	Notes         string
}

type ExpandResult struct {
	TargetDate time.Time
	Created    []uuid.UUID
	Skipped    int
}

type RecurringCommands interface {
	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (uuid.UUID, error)
	// UpdateTemplate replaces every editable field. Bookings already
	// materialized from the old definition are left as they are.
	UpdateTemplate(ctx context.Context, templateID uuid.UUID, req CreateTemplateRequest) error
	DeactivateTemplate(ctx context.Context, templateID uuid.UUID) error
	// Expand materializes every applicable template into a confirmed booking
	// for the date horizonDays ahead of asOf. Safe to run more than once per
	// day: occupied slots are skipped.
	Expand(ctx context.Context, asOf time.Time, horizonDays int) (*ExpandResult, error)
}

type recurringUseCaseImpl struct {
	uow     shared.UnitOfWork
	factory *booking.Factory
	loc     *time.Location
	clock   clock.Clock
}

func NewRecurringUseCase(uow shared.UnitOfWork, factory *booking.Factory, loc *time.Location, clk clock.Clock) RecurringCommands {
	return &recurringUseCaseImpl{uow: uow, factory: factory, loc: loc, clock: clk}
}

func (uc *recurringUseCaseImpl) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (uuid.UUID, error) {
	customer, err := booking.NewCustomer(req.CustomerName, req.CustomerPhone)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	method := booking.PaymentMethod(req.PaymentMethod)
	if req.PaymentMethod != "" && !method.IsValid() {
		return uuid.Nil, errs.Mark(errs.New("unknown payment method"), errs.ErrDomainValidation)
	}

	tmpl, err := recurring.NewTemplate(
		req.CourtID, customer,
		req.DayOfWeek, req.StartTime, req.DurationMin,
		req.PriceCents, method, req.IsPaid,
		req.ValidFrom, req.ValidTo, req.Notes,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var id uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().CourtByID(ctx, req.CourtID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrCourtNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := uc.guardNoTemplateOverlap(ctx, tx, tmpl); err != nil {
			return err
		}

		id, err = tx.Templates().Create(ctx, tx.DB(), tmpl)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (uc *recurringUseCaseImpl) UpdateTemplate(ctx context.Context, templateID uuid.UUID, req CreateTemplateRequest) error {
	customer, err := booking.NewCustomer(req.CustomerName, req.CustomerPhone)
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	method := booking.PaymentMethod(req.PaymentMethod)
	if req.PaymentMethod != "" && !method.IsValid() {
		return errs.Mark(errs.New("unknown payment method"), errs.ErrDomainValidation)
	}

	// Runs the same validation as creation; the draft's fresh id is
	// discarded below.
	draft, err := recurring.NewTemplate(
		req.CourtID, customer,
		req.DayOfWeek, req.StartTime, req.DurationMin,
		req.PriceCents, method, req.IsPaid,
		req.ValidFrom, req.ValidTo, req.Notes,
	)
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Reads().TemplateByID(ctx, templateID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrTemplateNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if _, err := tx.Reads().CourtByID(ctx, req.CourtID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrCourtNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		tmpl := recurring.Reconstruct(
			existing.ID(), draft.CourtID(), draft.Customer(),
			int(draft.DayOfWeek()), draft.StartTime(), draft.DurationMinutes(),
			draft.PriceCents(), draft.PaymentMethod(), draft.IsPaid(), existing.IsActive(),
			draft.ValidFrom(), draft.ValidTo(), draft.Notes(),
			existing.CreatedAt(), existing.UpdatedAt(),
		)

		if err := uc.guardNoTemplateOverlap(ctx, tx, tmpl); err != nil {
			return err
		}

		if err := tx.Templates().Update(ctx, tx.DB(), tmpl); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrTemplateNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// guardNoTemplateOverlap rejects a template whose weekly slot collides with
// another active template on the same court and weekday.
func (uc *recurringUseCaseImpl) guardNoTemplateOverlap(ctx context.Context, tx shared.Tx, tmpl *recurring.Template) error {
	existing, err := tx.Reads().ActiveTemplates(ctx)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// Any concrete date with the right weekday works for the interval test.
	probe := nextWeekday(uc.clock.Now().In(uc.loc), tmpl.DayOfWeek())
	y, m, d := probe.Date()
	slot, err := tmpl.OccurrenceOn(y, m, d, uc.loc)
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	for _, other := range existing {
		if other.ID() == tmpl.ID() {
			continue
		}
		if other.CourtID() != tmpl.CourtID() || other.DayOfWeek() != tmpl.DayOfWeek() {
			continue
		}
		otherSlot, err := other.OccurrenceOn(y, m, d, uc.loc)
		if err != nil {
			continue
		}
		if slot.Overlaps(otherSlot) {
			return errs.Mark(errs.Newf("template %s occupies %s", other.ID(), otherSlot.String()), errs.ErrTemplateConflict)
		}
	}
	return nil
}

func (uc *recurringUseCaseImpl) DeactivateTemplate(ctx context.Context, templateID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().TemplateByID(ctx, templateID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrTemplateNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Templates().Deactivate(ctx, tx.DB(), templateID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (uc *recurringUseCaseImpl) Expand(ctx context.Context, asOf time.Time, horizonDays int) (*ExpandResult, error) {
	// Materializing behind today's club-local date would create bookings
	// in the past, so a stale as-of override is rejected outright.
	ny, nm, nd := uc.clock.Now().In(uc.loc).Date()
	ay, am, ad := asOf.In(uc.loc).Date()
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, uc.loc)
	if time.Date(ay, am, ad, 0, 0, 0, 0, uc.loc).Before(today) {
		return nil, errs.Mark(errs.Newf("as-of date %04d-%02d-%02d is in the past", ay, am, ad), errs.ErrDomainValidation)
	}

	target := asOf.In(uc.loc).AddDate(0, 0, horizonDays)
	y, m, d := target.Date()

	result := &ExpandResult{TargetDate: time.Date(y, m, d, 0, 0, 0, 0, uc.loc)}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		templates, err := tx.Reads().ActiveTemplates(ctx)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		for _, tmpl := range templates {
			if !tmpl.AppliesOn(y, m, d, uc.loc) {
				continue
			}

			slot, err := tmpl.OccurrenceOn(y, m, d, uc.loc)
			if err != nil {
				slog.Warn("skipping template with unparsable start time",
					"template_id", tmpl.ID(), "start_time", tmpl.StartTime())
				result.Skipped++
				continue
			}

			blocking, err := tx.Reads().BlockingBookings(ctx, tmpl.CourtID(), slot.Start(), slot.End())
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if len(blocking) > 0 {
				result.Skipped++
				continue
			}

			id, err := uc.materializeOccurrence(ctx, tx, tmpl, slot)
			if err != nil {
				if errors.Is(err, errs.ErrSlotConflict) {
					result.Skipped++
					continue
				}
				return err
			}
			result.Created = append(result.Created, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *recurringUseCaseImpl) materializeOccurrence(ctx context.Context, tx shared.Tx, tmpl *recurring.Template, slot booking.TimeSlot) (uuid.UUID, error) {
	courtSnap, err := tx.Reads().CourtByID(ctx, tmpl.CourtID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, errs.ErrCourtNotFound
		}
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	courtEntity := court.Reconstruct(courtSnap.ID, courtSnap.Name, courtSnap.CourtType, courtSnap.PricePerHourCents, courtSnap.IsActive, time.Time{}, time.Time{})

	price := tmpl.PriceCents()
	b, err := uc.factory.CreateBooking(
		courtEntity, tmpl.Customer(), slot,
		&price, tmpl.PaymentMethod(), tmpl.IsPaid(), booking.StatusConfirmed,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	id, err := tx.Bookings().Create(ctx, tx.DB(), b)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) || infra.IsKind(err, infra.KindConflict) {
			return uuid.Nil, errs.Mark(err, errs.ErrSlotConflict)
		}
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return id, nil
}

func nextWeekday(from time.Time, day time.Weekday) time.Time {
	offset := (int(day) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, offset)
}
