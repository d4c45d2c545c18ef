package commands

import (
	"context"
	"encoding/json"
	"time"

	"padel-club-api/internal/domain/booking"
	"padel-club-api/internal/domain/court"
	"padel-club-api/internal/domain/sale"
	"padel-club-api/internal/infra"
	"padel-club-api/internal/pkg/clock"
	"padel-club-api/internal/pkg/errs"
	"padel-club-api/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	PaymentKindBooking = "booking"
	PaymentKindPOSSale = "pos_sale"

	pendingPaymentTTL = time.Hour
	pendingSaleTTL    = 15 * time.Minute
)

// Outcomes of a reconciliation attempt. Duplicate and ignored are
// successes from the provider's point of view.
const (
	OutcomeApplied   = "applied"
	OutcomeDuplicate = "duplicate"
	OutcomeIgnored   = "ignored"
)

type PaymentNotification struct {
	ExternalPaymentID string
	ReferenceID       string
	Approved          bool
	AmountCents       int64
	Kind              string
}

type ReconcileResult struct {
	Outcome    string
	BookingIDs []uuid.UUID
	SaleID     *uuid.UUID
}

type CreatePendingPaymentRequest struct {
	ReferenceID   string
	CourtID       uuid.UUID
	CustomerName  string
	CustomerPhone string
	Slots         []SlotRequest
	TotalCents    int64
}

type CreatePendingSaleRequest struct {
	ReferenceID string
	Items       []shared.PendingSaleItem
}

type PurgeResult struct {
	Payments int64
	Sales    int64
}

type PaymentCommands interface {
	Reconcile(ctx context.Context, n PaymentNotification) (*ReconcileResult, error)
	CreatePendingPayment(ctx context.Context, req CreatePendingPaymentRequest) (uuid.UUID, error)
	CreatePendingSale(ctx context.Context, req CreatePendingSaleRequest) (uuid.UUID, error)
	// PurgeExpiredPending drops staged records whose expiry passed without
	// a provider notification. A late notification for a purged reference
	// resolves to ErrPendingNotFound, same as an expired one.
	PurgeExpiredPending(ctx context.Context) (*PurgeResult, error)
}

type paymentUseCaseImpl struct {
	uow     shared.UnitOfWork
	factory *booking.Factory
	clock   clock.Clock
}

func NewPaymentUseCase(uow shared.UnitOfWork, factory *booking.Factory, clk clock.Clock) PaymentCommands {
	return &paymentUseCaseImpl{uow: uow, factory: factory, clock: clk}
}

// Reconcile applies one provider notification. Notifications arrive
// at-least-once and possibly duplicated, so the external payment id is
// checked against already-materialized records before any side effect.
func (uc *paymentUseCaseImpl) Reconcile(ctx context.Context, n PaymentNotification) (*ReconcileResult, error) {
	if n.ExternalPaymentID == "" {
		return nil, errs.Mark(errs.New("external payment id is required"), errs.ErrDomainValidation)
	}
	if !n.Approved {
		return &ReconcileResult{Outcome: OutcomeIgnored}, nil
	}

	var result *ReconcileResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		duplicate, err := uc.alreadyApplied(ctx, tx, n.ExternalPaymentID)
		if err != nil {
			return err
		}
		if duplicate {
			result = &ReconcileResult{Outcome: OutcomeDuplicate}
			return nil
		}

		switch n.Kind {
		case PaymentKindBooking:
			result, err = uc.reconcileBooking(ctx, tx, n)
		case PaymentKindPOSSale:
			result, err = uc.reconcileSale(ctx, tx, n)
		default:
			err = errs.Mark(errs.Newf("unknown payment kind %q", n.Kind), errs.ErrDomainValidation)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *paymentUseCaseImpl) alreadyApplied(ctx context.Context, tx shared.Tx, paymentID string) (bool, error) {
	if _, err := tx.Reads().BookingByExternalPaymentID(ctx, paymentID); err == nil {
		return true, nil
	} else if !infra.IsKind(err, infra.KindNotFound) {
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if _, err := tx.Reads().SaleByExternalPaymentID(ctx, paymentID); err == nil {
		return true, nil
	} else if !infra.IsKind(err, infra.KindNotFound) {
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return false, nil
}

// reconcileBooking resolves the reference either to a pending checkout
// record (materialize new bookings) or to an existing booking id (mark it
// paid).
func (uc *paymentUseCaseImpl) reconcileBooking(ctx context.Context, tx shared.Tx, n PaymentNotification) (*ReconcileResult, error) {
	pending, err := tx.Reads().PendingPaymentByReference(ctx, n.ReferenceID)
	if err == nil {
		return uc.materializePending(ctx, tx, pending, n)
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if bookingID, parseErr := uuid.Parse(n.ReferenceID); parseErr == nil {
		return uc.markBookingPaid(ctx, tx, bookingID, n)
	}
	return nil, errs.ErrPendingNotFound
}

func (uc *paymentUseCaseImpl) materializePending(ctx context.Context, tx shared.Tx, pending *shared.PendingPaymentSnapshot, n PaymentNotification) (*ReconcileResult, error) {
	if uc.clock.Now().After(pending.ExpiresAt) {
		// An approval arriving after expiry is not materialized; the
		// operator resolves it manually.
		return nil, errs.Mark(errs.Newf("pending payment %s expired at %s", pending.ReferenceID, pending.ExpiresAt.Format(time.RFC3339)), errs.ErrPendingNotFound)
	}

	courtSnap, err := tx.Reads().CourtByID(ctx, pending.CourtID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrCourtNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	courtEntity := court.Reconstruct(courtSnap.ID, courtSnap.Name, courtSnap.CourtType, courtSnap.PricePerHourCents, courtSnap.IsActive, time.Time{}, time.Time{})
	customer := booking.ReconstructCustomer(pending.CustomerName, pending.CustomerPhone)

	perSlot := pending.TotalCents / int64(len(pending.Slots))
	remainder := pending.TotalCents - perSlot*int64(len(pending.Slots))
	paymentID := n.ExternalPaymentID

	ids := make([]uuid.UUID, 0, len(pending.Slots))
	for i, s := range pending.Slots {
		// The first slot absorbs the rounding remainder so the booking
		// totals still add up to the captured amount.
		price := perSlot
		if i == 0 {
			price += remainder
		}
		slot, err := booking.NewTimeSlot(s.Start, s.End)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
		}

		blocking, err := tx.Reads().BlockingBookings(ctx, pending.CourtID, slot.Start(), slot.End())
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if len(blocking) > 0 {
			return nil, errs.Mark(&errs.SlotConflictError{Slots: []string{slot.String()}}, errs.ErrSlotConflict)
		}

		// Created unpaid so MarkPaid performs the one allowed transition,
		// stamping paidAt and the external payment id.
		b, err := uc.factory.CreateBooking(courtEntity, customer, slot, &price, booking.PaymentMercadoPago, false, booking.StatusConfirmed)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		if err := b.MarkPaid(paymentID, booking.PaymentMercadoPago, uc.clock.Now()); err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}

		id, err := tx.Bookings().Create(ctx, tx.DB(), b)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) || infra.IsKind(err, infra.KindConflict) {
				return nil, errs.Mark(err, &errs.SlotConflictError{Slots: []string{slot.String()}})
			}
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		ids = append(ids, id)
	}

	if err := tx.PendingPayments().Delete(ctx, tx.DB(), pending.ID); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := uc.notify(ctx, tx, "booking_paid", map[string]any{"booking_ids": ids, "payment_id": paymentID}); err != nil {
		return nil, err
	}

	return &ReconcileResult{Outcome: OutcomeApplied, BookingIDs: ids}, nil
}

func (uc *paymentUseCaseImpl) markBookingPaid(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, n PaymentNotification) (*ReconcileResult, error) {
	snap, err := tx.Reads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	b, err := bookingFromSnapshot(snap)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	paymentID := n.ExternalPaymentID
	if err := b.MarkPaid(paymentID, booking.PaymentMercadoPago, uc.clock.Now()); err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	if err := tx.Bookings().UpdatePayment(ctx, tx.DB(), b); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := uc.notify(ctx, tx, "booking_paid", map[string]any{"booking_ids": []uuid.UUID{bookingID}, "payment_id": paymentID}); err != nil {
		return nil, err
	}

	return &ReconcileResult{Outcome: OutcomeApplied, BookingIDs: []uuid.UUID{bookingID}}, nil
}

// reconcileSale decrements stock and creates the sale in one atomic step.
// A stock shortfall aborts everything: the payment was already captured
// externally, so this surfaces as a fatal error for manual intervention.
func (uc *paymentUseCaseImpl) reconcileSale(ctx context.Context, tx shared.Tx, n PaymentNotification) (*ReconcileResult, error) {
	pending, err := tx.Reads().PendingSaleByReference(ctx, n.ReferenceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrPendingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if uc.clock.Now().After(pending.ExpiresAt) {
		return nil, errs.Mark(errs.Newf("pending sale %s expired at %s", pending.ReferenceID, pending.ExpiresAt.Format(time.RFC3339)), errs.ErrPendingNotFound)
	}

	items := make([]sale.Item, 0, len(pending.Items))
	for _, it := range pending.Items {
		affected, err := tx.Products().DecrementStock(ctx, tx.DB(), it.ProductID, it.Quantity)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if affected == 0 {
			return nil, errs.Mark(errs.Newf("product %s has insufficient stock for quantity %d", it.ProductID, it.Quantity), errs.ErrStockShortfall)
		}

		item, err := sale.NewItem(it.ProductID, it.Quantity, it.UnitPriceCents)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		items = append(items, item)
	}

	paymentID := n.ExternalPaymentID
	s, err := sale.NewSale(items, booking.PaymentMercadoPago, &paymentID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	saleID, err := tx.Sales().Create(ctx, tx.DB(), s)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			// Sparse unique index on external_payment_id: a concurrent
			// duplicate delivery beat us to it.
			return nil, errs.Mark(err, errs.ErrDuplicateNotification)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := tx.PendingSales().Delete(ctx, tx.DB(), pending.ID); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := uc.notify(ctx, tx, "sale_created", map[string]any{"sale_id": saleID, "payment_id": paymentID}); err != nil {
		return nil, err
	}

	return &ReconcileResult{Outcome: OutcomeApplied, SaleID: &saleID}, nil
}

func (uc *paymentUseCaseImpl) CreatePendingPayment(ctx context.Context, req CreatePendingPaymentRequest) (uuid.UUID, error) {
	if req.ReferenceID == "" {
		return uuid.Nil, errs.Mark(errs.New("reference id is required"), errs.ErrDomainValidation)
	}
	if len(req.Slots) == 0 {
		return uuid.Nil, errs.Mark(errs.New("at least one slot is required"), errs.ErrDomainValidation)
	}
	if _, err := booking.NewCustomer(req.CustomerName, req.CustomerPhone); err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	slots := make([]shared.PendingSlot, 0, len(req.Slots))
	for _, s := range req.Slots {
		slot, err := booking.NewTimeSlot(s.Start, s.End)
		if err != nil {
			return uuid.Nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
		}
		slots = append(slots, shared.PendingSlot{Start: slot.Start(), End: slot.End()})
	}

	now := uc.clock.Now()
	snap := &shared.PendingPaymentSnapshot{
		ID:            uuid.New(),
		ReferenceID:   req.ReferenceID,
		CourtID:       req.CourtID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Slots:         slots,
		TotalCents:    req.TotalCents,
		CreatedAt:     now,
		ExpiresAt:     now.Add(pendingPaymentTTL),
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.PendingPayments().Create(ctx, tx.DB(), snap); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return snap.ID, nil
}

func (uc *paymentUseCaseImpl) CreatePendingSale(ctx context.Context, req CreatePendingSaleRequest) (uuid.UUID, error) {
	if req.ReferenceID == "" {
		return uuid.Nil, errs.Mark(errs.New("reference id is required"), errs.ErrDomainValidation)
	}
	if len(req.Items) == 0 {
		return uuid.Nil, errs.Mark(errs.New("at least one item is required"), errs.ErrDomainValidation)
	}

	now := uc.clock.Now()
	snap := &shared.PendingSaleSnapshot{
		ID:          uuid.New(),
		ReferenceID: req.ReferenceID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(pendingSaleTTL),
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, it := range req.Items {
			if it.Quantity <= 0 {
				return errs.Mark(errs.New("item quantity must be positive"), errs.ErrDomainValidation)
			}
			product, err := tx.Reads().ProductByID(ctx, it.ProductID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(errs.Newf("product %s not found", it.ProductID), errs.ErrProductNotFound)
				}
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			// Price captured now; a user-supplied unit price is ignored.
			snap.Items = append(snap.Items, shared.PendingSaleItem{
				ProductID:      it.ProductID,
				Quantity:       it.Quantity,
				UnitPriceCents: product.PriceCents,
			})
			snap.TotalCents += int64(it.Quantity) * product.PriceCents
		}
		if err := tx.PendingSales().Create(ctx, tx.DB(), snap); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return snap.ID, nil
}

func (uc *paymentUseCaseImpl) PurgeExpiredPending(ctx context.Context) (*PurgeResult, error) {
	now := uc.clock.Now()
	result := &PurgeResult{}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		payments, err := tx.PendingPayments().DeleteExpired(ctx, tx.DB(), now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		sales, err := tx.PendingSales().DeleteExpired(ctx, tx.DB(), now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		result.Payments = payments
		result.Sales = sales
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *paymentUseCaseImpl) notify(ctx context.Context, tx shared.Tx, topic string, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := tx.Notifications().CreateJob(ctx, tx.DB(), "event", topic, data, uc.clock.Now()); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func bookingFromSnapshot(snap *shared.BookingSnapshot) (*booking.Booking, error) {
	slot, err := booking.NewTimeSlot(snap.StartTime, snap.EndTime)
	if err != nil {
		return nil, err
	}
	price, err := booking.NewMoney(snap.PriceCents)
	if err != nil {
		return nil, err
	}
	return booking.Reconstruct(
		snap.ID,
		snap.CourtID,
		booking.ReconstructCustomer(snap.CustomerName, snap.CustomerPhone),
		slot,
		price,
		booking.Status(snap.Status),
		snap.IsPaid,
		snap.PaidAt,
		booking.PaymentMethod(snap.PaymentMethod),
		snap.ExternalPaymentID,
		time.Time{},
		time.Time{},
	), nil
}
