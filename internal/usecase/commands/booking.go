package commands

import (
	"context"
	"encoding/json"
	"time"

	"padel-club-api/internal/domain/booking"
	"padel-club-api/internal/domain/court"
	"padel-club-api/internal/domain/schedule"
	"padel-club-api/internal/infra"
	"padel-club-api/internal/pkg/clock"
	"padel-club-api/internal/pkg/errs"
	"padel-club-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotRequest struct {
	Start time.Time
	End   time.Time
}

type CreateBookingsRequest struct {
	CourtID       uuid.UUID
	CustomerName  string
	CustomerPhone string
	Slots         []SlotRequest
	// PriceCents overrides the court-derived price per slot when set.
	PriceCents    *int64
	PaymentMethod string
	IsPaid        bool
}

type CreateBookingsResult struct {
	BookingIDs []uuid.UUID
}

type BookingCommands interface {
	CreateBookings(ctx context.Context, req CreateBookingsRequest) (*CreateBookingsResult, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID) error
}

type bookingUseCaseImpl struct {
	uow     shared.UnitOfWork
	factory *booking.Factory
	hours   *schedule.WeeklySchedule
	loc     *time.Location
	clock   clock.Clock
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	factory *booking.Factory,
	hours *schedule.WeeklySchedule,
	loc *time.Location,
	clk clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:     uow,
		factory: factory,
		hours:   hours,
		loc:     loc,
		clock:   clk,
	}
}

// CreateBookings persists one booking per requested slot, all inside a
// single transaction: if any slot is taken or outside business hours the
// whole request fails and nothing is written.
func (uc *bookingUseCaseImpl) CreateBookings(ctx context.Context, req CreateBookingsRequest) (*CreateBookingsResult, error) {
	if len(req.Slots) == 0 {
		return nil, errs.Mark(errs.New("at least one slot is required"), errs.ErrDomainValidation)
	}

	method := booking.PaymentMethod(req.PaymentMethod)
	if req.PaymentMethod != "" && !method.IsValid() {
		return nil, errs.Mark(errs.New("unknown payment method"), errs.ErrDomainValidation)
	}

	customer, err := booking.NewCustomer(req.CustomerName, req.CustomerPhone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	slots := make([]booking.TimeSlot, 0, len(req.Slots))
	for _, s := range req.Slots {
		slot, err := booking.NewTimeSlot(s.Start, s.End)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
		}
		if !uc.withinBusinessHours(slot) {
			return nil, errs.Mark(errs.Newf("slot %s is outside business hours", slot.String()), errs.ErrInvalidTimeSlot)
		}
		slots = append(slots, slot)
	}

	result := &CreateBookingsResult{}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		courtEntity, err := uc.loadCourt(ctx, tx, req.CourtID)
		if err != nil {
			return err
		}

		if err := uc.guardSlotsFree(ctx, tx, req.CourtID, slots); err != nil {
			return err
		}

		for _, slot := range slots {
			b, err := uc.factory.CreateBooking(
				courtEntity, customer, slot,
				req.PriceCents, method, req.IsPaid, booking.StatusConfirmed,
			)
			if err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}

			id, err := tx.Bookings().Create(ctx, tx.DB(), b)
			if err != nil {
				if infra.IsKind(err, infra.KindDuplicateKey) || infra.IsKind(err, infra.KindConflict) {
					return errs.Mark(err, &errs.SlotConflictError{Slots: []string{slot.String()}})
				}
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			result.BookingIDs = append(result.BookingIDs, id)
		}

		return uc.notifyBookingEvent(ctx, tx, "booking_created", result.BookingIDs)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		// Cancelling twice is a no-op, not an error.
		if booking.Status(snap.Status) == booking.StatusCancelled {
			return nil
		}

		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingID, booking.StatusCancelled); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		return uc.notifyBookingEvent(ctx, tx, "booking_cancelled", []uuid.UUID{bookingID})
	})
}

func (uc *bookingUseCaseImpl) loadCourt(ctx context.Context, tx shared.Tx, courtID uuid.UUID) (*court.Court, error) {
	snap, err := tx.Reads().CourtByID(ctx, courtID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrCourtNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	entity := court.Reconstruct(snap.ID, snap.Name, snap.CourtType, snap.PricePerHourCents, snap.IsActive, time.Time{}, time.Time{})
	if !entity.IsActive() {
		return nil, errs.ErrCourtInactive
	}
	return entity, nil
}

// guardSlotsFree re-checks every requested interval against the store
// inside the transaction; the partial unique index on (court, start_time)
// backstops races the serializable isolation level does not surface.
func (uc *bookingUseCaseImpl) guardSlotsFree(ctx context.Context, tx shared.Tx, courtID uuid.UUID, slots []booking.TimeSlot) error {
	var taken []string
	for _, slot := range slots {
		blocking, err := tx.Reads().BlockingBookings(ctx, courtID, slot.Start(), slot.End())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if len(blocking) > 0 {
			taken = append(taken, slot.String())
		}
	}
	if len(taken) > 0 {
		return errs.Mark(&errs.SlotConflictError{Slots: taken}, errs.ErrSlotConflict)
	}
	return nil
}

func (uc *bookingUseCaseImpl) withinBusinessHours(slot booking.TimeSlot) bool {
	for t := slot.Start(); t.Before(slot.End()); t = t.Add(booking.SlotDuration) {
		if !uc.hours.IsOpen(t.In(uc.loc)) {
			return false
		}
	}
	return true
}

func (uc *bookingUseCaseImpl) notifyBookingEvent(ctx context.Context, tx shared.Tx, topic string, ids []uuid.UUID) error {
	payload, err := json.Marshal(map[string]any{"booking_ids": ids})
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := tx.Notifications().CreateJob(ctx, tx.DB(), "event", topic, payload, uc.clock.Now()); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
