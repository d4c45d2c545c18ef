//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"padel-club-api/internal/domain/booking"
	"padel-club-api/internal/pkg/clock"
	"padel-club-api/internal/pkg/errs"
	"padel-club-api/internal/usecase/commands"
	"padel-club-api/internal/usecase/shared"
	"padel-club-api/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentUseCase(t *testing.T, uow *fake.UoW) commands.PaymentCommands {
	t.Helper()
	clk := clock.NewFixedClock(testNow)
	return commands.NewPaymentUseCase(uow, booking.NewFactory(clk), clk)
}

func pendingPayment(courtID uuid.UUID, slots int, totalCents int64) *shared.PendingPaymentSnapshot {
	start := time.Date(2026, 3, 16, 21, 0, 0, 0, time.UTC)
	ps := make([]shared.PendingSlot, 0, slots)
	for i := 0; i < slots; i++ {
		s := start.Add(time.Duration(i) * time.Hour)
		ps = append(ps, shared.PendingSlot{Start: s, End: s.Add(time.Hour)})
	}
	return &shared.PendingPaymentSnapshot{
		ID:            uuid.New(),
		ReferenceID:   "checkout-42",
		CourtID:       courtID,
		CustomerName:  "Juan Pérez",
		CustomerPhone: "+5491155551234",
		Slots:         ps,
		TotalCents:    totalCents,
		CreatedAt:     testNow.Add(-10 * time.Minute),
		ExpiresAt:     testNow.Add(50 * time.Minute),
	}
}

func TestReconcile(t *testing.T) {
	courtID := uuid.New()

	t.Run("rejected payment is ignored without side effects", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newPaymentUseCase(t, uow)

		result, err := uc.Reconcile(context.Background(), commands.PaymentNotification{
			ExternalPaymentID: "mp-1", ReferenceID: "checkout-42", Approved: false, Kind: commands.PaymentKindBooking,
		})
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeIgnored, result.Outcome)
		assert.Empty(t, uow.Tx.BookingsRepo.Created)
	})

	t.Run("missing external payment id", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newPaymentUseCase(t, uow)

		_, err := uc.Reconcile(context.Background(), commands.PaymentNotification{
			ReferenceID: "checkout-42", Approved: true, Kind: commands.PaymentKindBooking,
		})
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})

	t.Run("redelivery of an applied payment is a duplicate", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.BookingByExternalPaymentIDFn = func(_ context.Context, _ string) (*shared.BookingSnapshot, error) {
			return &shared.BookingSnapshot{ID: uuid.New(), Status: "confirmed"}, nil
		}
		uc := newPaymentUseCase(t, uow)

		result, err := uc.Reconcile(context.Background(), commands.PaymentNotification{
			ExternalPaymentID: "mp-1", ReferenceID: "checkout-42", Approved: true, Kind: commands.PaymentKindBooking,
		})
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeDuplicate, result.Outcome)
		assert.Empty(t, uow.Tx.BookingsRepo.Created)
	})

	t.Run("materializes pending checkout with first slot absorbing the remainder", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.CourtByIDFn = func(_ context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
			return activeCourt(id), nil
		}
		pending := pendingPayment(courtID, 3, 10000)
		uow.Tx.ReadsFake.PendingPaymentByReferenceFn = func(_ context.Context, _ string) (*shared.PendingPaymentSnapshot, error) {
			return pending, nil
		}
		uc := newPaymentUseCase(t, uow)

		result, err := uc.Reconcile(context.Background(), commands.PaymentNotification{
			ExternalPaymentID: "mp-1", ReferenceID: "checkout-42", Approved: true, AmountCents: 10000, Kind: commands.PaymentKindBooking,
		})
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeApplied, result.Outcome)
		assert.Len(t, result.BookingIDs, 3)

		require.Len(t, uow.Tx.BookingsRepo.Created, 3)
		assert.Equal(t, int64(3334), uow.Tx.BookingsRepo.Created[0].Price().Cents())
		assert.Equal(t, int64(3333), uow.Tx.BookingsRepo.Created[1].Price().Cents())
		assert.Equal(t, int64(3333), uow.Tx.BookingsRepo.Created[2].Price().Cents())
		for _, b := range uow.Tx.BookingsRepo.Created {
			assert.True(t, b.IsPaid())
			require.NotNil(t, b.ExternalPaymentID())
			assert.Equal(t, "mp-1", *b.ExternalPaymentID())
		}

		assert.Equal(t, []uuid.UUID{pending.ID}, uow.Tx.PendingPaymentsRepo.Deleted)
		require.Len(t, uow.Tx.NotificationsRepo.Jobs, 1)
		assert.Equal(t, "booking_paid", uow.Tx.NotificationsRepo.Jobs[0].Topic)
	})

	t.Run("expired pending checkout is not materialized", func(t *testing.T) {
		uow := fake.NewUoW()
		pending := pendingPayment(courtID, 1, 10000)
		pending.ExpiresAt = testNow.Add(-time.Minute)
		uow.Tx.ReadsFake.PendingPaymentByReferenceFn = func(_ context.Context, _ string) (*shared.PendingPaymentSnapshot, error) {
			return pending, nil
		}
		uc := newPaymentUseCase(t, uow)

		_, err := uc.Reconcile(context.Background(), commands.PaymentNotification{
			ExternalPaymentID: "mp-1", ReferenceID: "checkout-42", Approved: true, Kind: commands.PaymentKindBooking,
		})
		assert.ErrorIs(t, err, errs.ErrPendingNotFound)
		assert.Empty(t, uow.Tx.BookingsRepo.Created)
	})

	t.Run("slot taken while the payment was pending", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.CourtByIDFn = func(_ context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
			return activeCourt(id), nil
		}
		uow.Tx.ReadsFake.PendingPaymentByReferenceFn = func(_ context.Context, _ string) (*shared.PendingPaymentSnapshot, error) {
			return pendingPayment(courtID, 1, 10000), nil
		}
		uow.Tx.ReadsFake.BlockingBookingsFn = func(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]shared.BookingSnapshot, error) {
			return []shared.BookingSnapshot{{ID: uuid.New(), Status: "confirmed"}}, nil
		}
		uc := newPaymentUseCase(t, uow)

		_, err := uc.Reconcile(context.Background(), commands.PaymentNotification{
			ExternalPaymentID: "mp-1", ReferenceID: "checkout-42", Approved: true, Kind: commands.PaymentKindBooking,
		})
		assert.ErrorIs(t, err, errs.ErrSlotConflict)
		assert.Empty(t, uow.Tx.PendingPaymentsRepo.Deleted)
	})

	t.Run("reference naming an existing booking marks it paid", func(t *testing.T) {
		bookingID := uuid.New()
		start := time.Date(2026, 3, 16, 21, 0, 0, 0, time.UTC)
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.BookingByIDFn = func(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
			return &shared.BookingSnapshot{
				ID: id, CourtID: courtID,
				CustomerName: "Juan Pérez", CustomerPhone: "+5491155551234",
				StartTime: start, EndTime: start.Add(time.Hour),
				PriceCents: 10000, Status: "confirmed",
			}, nil
		}
		uc := newPaymentUseCase(t, uow)

		result, err := uc.Reconcile(context.Background(), commands.PaymentNotification{
			ExternalPaymentID: "mp-2", ReferenceID: bookingID.String(), Approved: true, Kind: commands.PaymentKindBooking,
		})
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeApplied, result.Outcome)
		assert.Equal(t, []uuid.UUID{bookingID}, result.BookingIDs)

		require.Len(t, uow.Tx.BookingsRepo.UpdatedPayment, 1)
		updated := uow.Tx.BookingsRepo.UpdatedPayment[0]
		assert.True(t, updated.IsPaid())
		require.NotNil(t, updated.ExternalPaymentID())
		assert.Equal(t, "mp-2", *updated.ExternalPaymentID())
	})

	t.Run("unresolvable reference", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newPaymentUseCase(t, uow)

		_, err := uc.Reconcile(context.Background(), commands.PaymentNotification{
			ExternalPaymentID: "mp-3", ReferenceID: "no-such-checkout", Approved: true, Kind: commands.PaymentKindBooking,
		})
		assert.ErrorIs(t, err, errs.ErrPendingNotFound)
	})

	t.Run("unknown payment kind", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newPaymentUseCase(t, uow)

		_, err := uc.Reconcile(context.Background(), commands.PaymentNotification{
			ExternalPaymentID: "mp-4", ReferenceID: "checkout-42", Approved: true, Kind: "subscription",
		})
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}

func TestReconcileSale(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()

	pendingSale := func() *shared.PendingSaleSnapshot {
		return &shared.PendingSaleSnapshot{
			ID:          uuid.New(),
			ReferenceID: "pos-7",
			Items: []shared.PendingSaleItem{
				{ProductID: productA, Quantity: 2, UnitPriceCents: 1500},
				{ProductID: productB, Quantity: 1, UnitPriceCents: 4000},
			},
			TotalCents: 7000,
			CreatedAt:  testNow.Add(-5 * time.Minute),
			ExpiresAt:  testNow.Add(10 * time.Minute),
		}
	}

	t.Run("creates the sale and decrements stock", func(t *testing.T) {
		uow := fake.NewUoW()
		pending := pendingSale()
		uow.Tx.ReadsFake.PendingSaleByReferenceFn = func(_ context.Context, _ string) (*shared.PendingSaleSnapshot, error) {
			return pending, nil
		}
		uc := newPaymentUseCase(t, uow)

		result, err := uc.Reconcile(context.Background(), commands.PaymentNotification{
			ExternalPaymentID: "mp-5", ReferenceID: "pos-7", Approved: true, Kind: commands.PaymentKindPOSSale,
		})
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeApplied, result.Outcome)
		require.NotNil(t, result.SaleID)

		assert.Equal(t, 2, uow.Tx.ProductsRepo.Decremented[productA])
		assert.Equal(t, 1, uow.Tx.ProductsRepo.Decremented[productB])

		require.Len(t, uow.Tx.SalesRepo.Created, 1)
		created := uow.Tx.SalesRepo.Created[0]
		assert.Equal(t, int64(7000), created.TotalCents())
		require.NotNil(t, created.ExternalPaymentID())
		assert.Equal(t, "mp-5", *created.ExternalPaymentID())

		assert.Equal(t, []uuid.UUID{pending.ID}, uow.Tx.PendingSalesRepo.Deleted)
		require.Len(t, uow.Tx.NotificationsRepo.Jobs, 1)
		assert.Equal(t, "sale_created", uow.Tx.NotificationsRepo.Jobs[0].Topic)
	})

	t.Run("stock shortfall aborts the whole sale", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.PendingSaleByReferenceFn = func(_ context.Context, _ string) (*shared.PendingSaleSnapshot, error) {
			return pendingSale(), nil
		}
		uow.Tx.ProductsRepo.DecrementFn = func(productID uuid.UUID, _ int) (int64, error) {
			if productID == productB {
				return 0, nil
			}
			return 1, nil
		}
		uc := newPaymentUseCase(t, uow)

		_, err := uc.Reconcile(context.Background(), commands.PaymentNotification{
			ExternalPaymentID: "mp-6", ReferenceID: "pos-7", Approved: true, Kind: commands.PaymentKindPOSSale,
		})
		assert.ErrorIs(t, err, errs.ErrStockShortfall)
		assert.Empty(t, uow.Tx.SalesRepo.Created)
		assert.Empty(t, uow.Tx.PendingSalesRepo.Deleted)
	})

	t.Run("unknown pos reference", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newPaymentUseCase(t, uow)

		_, err := uc.Reconcile(context.Background(), commands.PaymentNotification{
			ExternalPaymentID: "mp-7", ReferenceID: "pos-gone", Approved: true, Kind: commands.PaymentKindPOSSale,
		})
		assert.ErrorIs(t, err, errs.ErrPendingNotFound)
	})
}

func TestCreatePendingPayment(t *testing.T) {
	courtID := uuid.New()
	start := time.Date(2026, 3, 16, 21, 0, 0, 0, time.UTC)

	t.Run("stores the checkout with an expiry", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newPaymentUseCase(t, uow)

		id, err := uc.CreatePendingPayment(context.Background(), commands.CreatePendingPaymentRequest{
			ReferenceID:   "checkout-42",
			CourtID:       courtID,
			CustomerName:  "Juan Pérez",
			CustomerPhone: "+5491155551234",
			Slots:         []commands.SlotRequest{{Start: start, End: start.Add(time.Hour)}},
			TotalCents:    10000,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		require.Len(t, uow.Tx.PendingPaymentsRepo.Created, 1)
		created := uow.Tx.PendingPaymentsRepo.Created[0]
		assert.Equal(t, "checkout-42", created.ReferenceID)
		assert.Equal(t, testNow.Add(time.Hour), created.ExpiresAt)
	})

	t.Run("unaligned slot", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newPaymentUseCase(t, uow)

		_, err := uc.CreatePendingPayment(context.Background(), commands.CreatePendingPaymentRequest{
			ReferenceID:   "checkout-43",
			CourtID:       courtID,
			CustomerName:  "Juan Pérez",
			CustomerPhone: "+5491155551234",
			Slots:         []commands.SlotRequest{{Start: start.Add(5 * time.Minute), End: start.Add(time.Hour)}},
		})
		assert.ErrorIs(t, err, errs.ErrInvalidTimeSlot)
	})

	t.Run("missing reference id", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newPaymentUseCase(t, uow)

		_, err := uc.CreatePendingPayment(context.Background(), commands.CreatePendingPaymentRequest{
			CourtID: courtID, CustomerName: "Juan Pérez", CustomerPhone: "+5491155551234",
			Slots: []commands.SlotRequest{{Start: start, End: start.Add(time.Hour)}},
		})
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}

func TestCreatePendingSale(t *testing.T) {
	productID := uuid.New()

	t.Run("captures server-side prices", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.ProductByIDFn = func(_ context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
			return &shared.ProductSnapshot{ID: id, Name: "Gatorade", PriceCents: 2500, Stock: 10, IsActive: true}, nil
		}
		uc := newPaymentUseCase(t, uow)

		id, err := uc.CreatePendingSale(context.Background(), commands.CreatePendingSaleRequest{
			ReferenceID: "pos-7",
			Items: []shared.PendingSaleItem{
				// A caller-supplied price is ignored in favor of the catalog.
				{ProductID: productID, Quantity: 3, UnitPriceCents: 1},
			},
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		require.Len(t, uow.Tx.PendingSalesRepo.Created, 1)
		created := uow.Tx.PendingSalesRepo.Created[0]
		require.Len(t, created.Items, 1)
		assert.Equal(t, int64(2500), created.Items[0].UnitPriceCents)
		assert.Equal(t, int64(7500), created.TotalCents)
		assert.Equal(t, testNow.Add(15*time.Minute), created.ExpiresAt)
	})

	t.Run("unknown product", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newPaymentUseCase(t, uow)

		_, err := uc.CreatePendingSale(context.Background(), commands.CreatePendingSaleRequest{
			ReferenceID: "pos-8",
			Items:       []shared.PendingSaleItem{{ProductID: productID, Quantity: 1}},
		})
		assert.ErrorIs(t, err, errs.ErrProductNotFound)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newPaymentUseCase(t, uow)

		_, err := uc.CreatePendingSale(context.Background(), commands.CreatePendingSaleRequest{
			ReferenceID: "pos-9",
			Items:       []shared.PendingSaleItem{{ProductID: productID, Quantity: 0}},
		})
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}

func TestPurgeExpiredPending(t *testing.T) {
	t.Run("reports per-table counts", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.PendingPaymentsRepo.ExpiredCount = 3
		uow.Tx.PendingSalesRepo.ExpiredCount = 1
		uc := newPaymentUseCase(t, uow)

		result, err := uc.PurgeExpiredPending(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), result.Payments)
		assert.Equal(t, int64(1), result.Sales)
	})

	t.Run("nothing to purge", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newPaymentUseCase(t, uow)

		result, err := uc.PurgeExpiredPending(context.Background())
		require.NoError(t, err)
		assert.Zero(t, result.Payments)
		assert.Zero(t, result.Sales)
	})
}
