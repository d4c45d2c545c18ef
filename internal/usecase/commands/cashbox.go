package commands

import (
	"context"

	"padel-club-api/internal/domain/cashbox"
	"padel-club-api/internal/infra"
	"padel-club-api/internal/pkg/clock"
	"padel-club-api/internal/pkg/errs"
	"padel-club-api/internal/usecase/shared"
)

type CashboxCommands interface {
	StartSession(ctx context.Context, startAmountCents int64) (*cashbox.Session, error)
	CloseSession(ctx context.Context, endAmountCents int64, notes string) (*cashbox.Session, error)
	RegisterMovement(ctx context.Context, kind cashbox.MovementType, amountCents int64, concept string) (*cashbox.Movement, error)
}

type cashboxUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCashboxUseCase(uow shared.UnitOfWork, clk clock.Clock) CashboxCommands {
	return &cashboxUseCaseImpl{uow: uow, clock: clk}
}

func (uc *cashboxUseCaseImpl) StartSession(ctx context.Context, startAmountCents int64) (*cashbox.Session, error) {
	session, err := cashbox.OpenSession(startAmountCents, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().OpenCashboxSession(ctx); err == nil {
			return errs.ErrSessionAlready
		} else if !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := tx.Cashbox().CreateSession(ctx, tx.DB(), session); err != nil {
			// Partial unique index on open sessions: a concurrent open
			// won the race.
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrSessionAlready)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// CloseSession freezes the cash summary over [openedAt, now): cash sales,
// cash bookings by their paid-transition time, and manual movements.
func (uc *cashboxUseCaseImpl) CloseSession(ctx context.Context, endAmountCents int64, notes string) (*cashbox.Session, error) {
	var session *cashbox.Session

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		open, err := tx.Reads().OpenCashboxSession(ctx)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrNoOpenSession
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		now := uc.clock.Now()
		totals, err := tx.Reads().CashTotals(ctx, open.ID(), open.OpenedAt(), now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := open.Close(
			endAmountCents, notes,
			totals.CashSalesCents, totals.CashBookingsCents,
			totals.MovementsInCents, totals.MovementsOutCents,
			now,
		); err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if err := tx.Cashbox().CloseSession(ctx, tx.DB(), open); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		session = open
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (uc *cashboxUseCaseImpl) RegisterMovement(ctx context.Context, kind cashbox.MovementType, amountCents int64, concept string) (*cashbox.Movement, error) {
	var movement *cashbox.Movement

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		open, err := tx.Reads().OpenCashboxSession(ctx)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrNoOpenSession
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		movement, err = cashbox.NewMovement(open.ID(), kind, amountCents, concept)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if err := tx.Cashbox().CreateMovement(ctx, tx.DB(), movement); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}
