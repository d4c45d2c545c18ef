//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"padel-club-api/internal/domain/cashbox"
	"padel-club-api/internal/infra"
	"padel-club-api/internal/pkg/clock"
	"padel-club-api/internal/pkg/errs"
	"padel-club-api/internal/usecase/commands"
	"padel-club-api/internal/usecase/shared"
	"padel-club-api/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCashboxUseCase(t *testing.T, uow *fake.UoW) commands.CashboxCommands {
	t.Helper()
	return commands.NewCashboxUseCase(uow, clock.NewFixedClock(testNow))
}

func openSessionAt(t *testing.T, openedAt time.Time) *cashbox.Session {
	t.Helper()
	s, err := cashbox.OpenSession(5000, openedAt)
	require.NoError(t, err)
	return s
}

func TestStartSession(t *testing.T) {
	t.Run("opens the drawer", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newCashboxUseCase(t, uow)

		session, err := uc.StartSession(context.Background(), 5000)
		require.NoError(t, err)
		assert.True(t, session.IsOpen())
		assert.Equal(t, int64(5000), session.StartAmountCents())
		assert.Equal(t, testNow, session.OpenedAt())
		require.Len(t, uow.Tx.CashboxRepo.Sessions, 1)
	})

	t.Run("second open fails while one is running", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.OpenCashboxSessionFn = func(_ context.Context) (*cashbox.Session, error) {
			return openSessionAt(t, testNow.Add(-time.Hour)), nil
		}
		uc := newCashboxUseCase(t, uow)

		_, err := uc.StartSession(context.Background(), 5000)
		assert.ErrorIs(t, err, errs.ErrSessionAlready)
		assert.Empty(t, uow.Tx.CashboxRepo.Sessions)
	})

	t.Run("losing the open race still reads as session already open", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.CashboxRepo.CreateSessionErr = infra.WrapRepoErr("duplicate key", nil, infra.KindDuplicateKey)
		uc := newCashboxUseCase(t, uow)

		_, err := uc.StartSession(context.Background(), 5000)
		assert.ErrorIs(t, err, errs.ErrSessionAlready)
	})

	t.Run("negative opening float", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newCashboxUseCase(t, uow)

		_, err := uc.StartSession(context.Background(), -1)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}

func TestCloseSession(t *testing.T) {
	t.Run("freezes the cash summary", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.OpenCashboxSessionFn = func(_ context.Context) (*cashbox.Session, error) {
			return openSessionAt(t, testNow.Add(-8*time.Hour)), nil
		}
		uow.Tx.ReadsFake.CashTotalsFn = func(_ context.Context, _ uuid.UUID, since, until time.Time) (*shared.CashTotals, error) {
			assert.Equal(t, testNow.Add(-8*time.Hour), since)
			assert.Equal(t, testNow, until)
			return &shared.CashTotals{
				CashSalesCents:    1200,
				CashBookingsCents: 800,
				MovementsInCents:  500,
				MovementsOutCents: 300,
			}, nil
		}
		uc := newCashboxUseCase(t, uow)

		session, err := uc.CloseSession(context.Background(), 7100, "turno mañana")
		require.NoError(t, err)
		assert.False(t, session.IsOpen())

		summary := session.Summary()
		require.NotNil(t, summary)
		// 5000 + 1200 + 800 + 500 - 300
		assert.Equal(t, int64(7200), summary.ExpectedCents)
		assert.Equal(t, int64(-100), summary.DifferenceCents)

		require.Len(t, uow.Tx.CashboxRepo.Closed, 1)
		assert.Same(t, session, uow.Tx.CashboxRepo.Closed[0])
	})

	t.Run("no open session", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newCashboxUseCase(t, uow)

		_, err := uc.CloseSession(context.Background(), 7100, "")
		assert.ErrorIs(t, err, errs.ErrNoOpenSession)
	})

	t.Run("negative counted amount", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.OpenCashboxSessionFn = func(_ context.Context) (*cashbox.Session, error) {
			return openSessionAt(t, testNow.Add(-time.Hour)), nil
		}
		uc := newCashboxUseCase(t, uow)

		_, err := uc.CloseSession(context.Background(), -50, "")
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
		assert.Empty(t, uow.Tx.CashboxRepo.Closed)
	})
}

func TestRegisterMovement(t *testing.T) {
	t.Run("records against the open session", func(t *testing.T) {
		open := openSessionAt(t, testNow.Add(-time.Hour))
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.OpenCashboxSessionFn = func(_ context.Context) (*cashbox.Session, error) {
			return open, nil
		}
		uc := newCashboxUseCase(t, uow)

		movement, err := uc.RegisterMovement(context.Background(), cashbox.MovementOut, 1500, "proveedor de pelotas")
		require.NoError(t, err)
		assert.Equal(t, open.ID(), movement.SessionID())
		assert.Equal(t, cashbox.MovementOut, movement.Kind())
		assert.Equal(t, int64(1500), movement.AmountCents())
		require.Len(t, uow.Tx.CashboxRepo.Movements, 1)
	})

	t.Run("requires an open session", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newCashboxUseCase(t, uow)

		_, err := uc.RegisterMovement(context.Background(), cashbox.MovementIn, 1000, "cambio")
		assert.ErrorIs(t, err, errs.ErrNoOpenSession)
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.OpenCashboxSessionFn = func(_ context.Context) (*cashbox.Session, error) {
			return openSessionAt(t, testNow.Add(-time.Hour)), nil
		}
		uc := newCashboxUseCase(t, uow)

		_, err := uc.RegisterMovement(context.Background(), cashbox.MovementIn, 0, "cambio")
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
		assert.Empty(t, uow.Tx.CashboxRepo.Movements)
	})
}
