//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"padel-club-api/internal/domain/booking"
	"padel-club-api/internal/domain/recurring"
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

func newRecurringUseCase(t *testing.T, uow *fake.UoW) commands.RecurringCommands {
	t.Helper()
	clk := clock.NewFixedClock(testNow)
	return commands.NewRecurringUseCase(uow, booking.NewFactory(clk), buenosAires, clk)
}

func mustTemplate(t *testing.T, courtID uuid.UUID, dayOfWeek int, startTime string, durationMin int) *recurring.Template {
	t.Helper()
	customer, err := booking.NewCustomer("Liga de los Lunes", "+5491155551234")
	require.NoError(t, err)
	tmpl, err := recurring.NewTemplate(
		courtID, customer, dayOfWeek, startTime, durationMin,
		12000, booking.PaymentCash, false,
		time.Date(2026, 3, 1, 0, 0, 0, 0, buenosAires), nil, "",
	)
	require.NoError(t, err)
	return tmpl
}

func TestCreateTemplate(t *testing.T) {
	courtID := uuid.New()

	baseRequest := func() commands.CreateTemplateRequest {
		return commands.CreateTemplateRequest{
			CourtID:       courtID,
			CustomerName:  "Liga de los Lunes",
			CustomerPhone: "+5491155551234",
			DayOfWeek:     1,
			StartTime:     "19:00",
			DurationMin:   90,
			PriceCents:    12000,
			ValidFrom:     time.Date(2026, 3, 1, 0, 0, 0, 0, buenosAires),
		}
	}

	t.Run("stores the template", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.CourtByIDFn = func(_ context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
			return activeCourt(id), nil
		}
		uc := newRecurringUseCase(t, uow)

		id, err := uc.CreateTemplate(context.Background(), baseRequest())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		require.Len(t, uow.Tx.TemplatesRepo.Created, 1)
	})

	t.Run("unknown court", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newRecurringUseCase(t, uow)

		_, err := uc.CreateTemplate(context.Background(), baseRequest())
		assert.ErrorIs(t, err, errs.ErrCourtNotFound)
	})

	t.Run("weekly slot collides with an active template", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.CourtByIDFn = func(_ context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
			return activeCourt(id), nil
		}
		uow.Tx.ReadsFake.ActiveTemplatesFn = func(_ context.Context) ([]*recurring.Template, error) {
			return []*recurring.Template{mustTemplate(t, courtID, 1, "18:30", 90)}, nil
		}
		uc := newRecurringUseCase(t, uow)

		_, err := uc.CreateTemplate(context.Background(), baseRequest())
		assert.ErrorIs(t, err, errs.ErrTemplateConflict)
		assert.Empty(t, uow.Tx.TemplatesRepo.Created)
	})

	t.Run("same weekday at a different hour is fine", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.CourtByIDFn = func(_ context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
			return activeCourt(id), nil
		}
		uow.Tx.ReadsFake.ActiveTemplatesFn = func(_ context.Context) ([]*recurring.Template, error) {
			return []*recurring.Template{mustTemplate(t, courtID, 1, "21:00", 90)}, nil
		}
		uc := newRecurringUseCase(t, uow)

		_, err := uc.CreateTemplate(context.Background(), baseRequest())
		assert.NoError(t, err)
	})

	t.Run("other court is not a conflict", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.CourtByIDFn = func(_ context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
			return activeCourt(id), nil
		}
		uow.Tx.ReadsFake.ActiveTemplatesFn = func(_ context.Context) ([]*recurring.Template, error) {
			return []*recurring.Template{mustTemplate(t, uuid.New(), 1, "19:00", 90)}, nil
		}
		uc := newRecurringUseCase(t, uow)

		_, err := uc.CreateTemplate(context.Background(), baseRequest())
		assert.NoError(t, err)
	})

	t.Run("invalid weekday", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newRecurringUseCase(t, uow)

		req := baseRequest()
		req.DayOfWeek = 7

		_, err := uc.CreateTemplate(context.Background(), req)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}

func TestUpdateTemplate(t *testing.T) {
	courtID := uuid.New()

	baseRequest := func() commands.CreateTemplateRequest {
		return commands.CreateTemplateRequest{
			CourtID:       courtID,
			CustomerName:  "Liga de los Lunes",
			CustomerPhone: "+5491155551234",
			DayOfWeek:     1,
			StartTime:     "20:00",
			DurationMin:   60,
			PriceCents:    13000,
			ValidFrom:     time.Date(2026, 3, 1, 0, 0, 0, 0, buenosAires),
		}
	}

	t.Run("replaces the definition keeping the id", func(t *testing.T) {
		tmpl := mustTemplate(t, courtID, 1, "19:00", 90)
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.TemplateByIDFn = func(_ context.Context, _ uuid.UUID) (*recurring.Template, error) {
			return tmpl, nil
		}
		uow.Tx.ReadsFake.CourtByIDFn = func(_ context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
			return activeCourt(id), nil
		}
		uc := newRecurringUseCase(t, uow)

		require.NoError(t, uc.UpdateTemplate(context.Background(), tmpl.ID(), baseRequest()))
		require.Len(t, uow.Tx.TemplatesRepo.Updated, 1)
		updated := uow.Tx.TemplatesRepo.Updated[0]
		assert.Equal(t, tmpl.ID(), updated.ID())
		assert.Equal(t, "20:00", updated.StartTime())
		assert.Equal(t, 60, updated.DurationMinutes())
		assert.Equal(t, int64(13000), updated.PriceCents())
	})

	t.Run("its own slot is not a conflict", func(t *testing.T) {
		tmpl := mustTemplate(t, courtID, 1, "19:00", 90)
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.TemplateByIDFn = func(_ context.Context, _ uuid.UUID) (*recurring.Template, error) {
			return tmpl, nil
		}
		uow.Tx.ReadsFake.CourtByIDFn = func(_ context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
			return activeCourt(id), nil
		}
		uow.Tx.ReadsFake.ActiveTemplatesFn = func(_ context.Context) ([]*recurring.Template, error) {
			return []*recurring.Template{tmpl}, nil
		}
		uc := newRecurringUseCase(t, uow)

		req := baseRequest()
		req.StartTime = "19:00"
		req.DurationMin = 90

		require.NoError(t, uc.UpdateTemplate(context.Background(), tmpl.ID(), req))
	})

	t.Run("colliding with another template is rejected", func(t *testing.T) {
		tmpl := mustTemplate(t, courtID, 1, "19:00", 90)
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.TemplateByIDFn = func(_ context.Context, _ uuid.UUID) (*recurring.Template, error) {
			return tmpl, nil
		}
		uow.Tx.ReadsFake.CourtByIDFn = func(_ context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
			return activeCourt(id), nil
		}
		uow.Tx.ReadsFake.ActiveTemplatesFn = func(_ context.Context) ([]*recurring.Template, error) {
			return []*recurring.Template{tmpl, mustTemplate(t, courtID, 1, "20:30", 90)}, nil
		}
		uc := newRecurringUseCase(t, uow)

		err := uc.UpdateTemplate(context.Background(), tmpl.ID(), baseRequest())
		assert.ErrorIs(t, err, errs.ErrTemplateConflict)
		assert.Empty(t, uow.Tx.TemplatesRepo.Updated)
	})

	t.Run("unknown template", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newRecurringUseCase(t, uow)

		err := uc.UpdateTemplate(context.Background(), uuid.New(), baseRequest())
		assert.ErrorIs(t, err, errs.ErrTemplateNotFound)
	})

	t.Run("invalid duration", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newRecurringUseCase(t, uow)

		req := baseRequest()
		req.DurationMin = 45

		err := uc.UpdateTemplate(context.Background(), uuid.New(), req)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}

func TestDeactivateTemplate(t *testing.T) {
	courtID := uuid.New()

	t.Run("marks the template inactive", func(t *testing.T) {
		tmpl := mustTemplate(t, courtID, 1, "19:00", 90)
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.TemplateByIDFn = func(_ context.Context, _ uuid.UUID) (*recurring.Template, error) {
			return tmpl, nil
		}
		uc := newRecurringUseCase(t, uow)

		require.NoError(t, uc.DeactivateTemplate(context.Background(), tmpl.ID()))
		assert.Equal(t, []uuid.UUID{tmpl.ID()}, uow.Tx.TemplatesRepo.Deactivated)
	})

	t.Run("unknown template", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newRecurringUseCase(t, uow)

		err := uc.DeactivateTemplate(context.Background(), uuid.New())
		assert.ErrorIs(t, err, errs.ErrTemplateNotFound)
	})
}

func TestExpand(t *testing.T) {
	courtID := uuid.New()
	// testNow is Monday 2026-03-16; seven days ahead lands on Monday the 23rd.
	const horizonDays = 7

	t.Run("materializes applicable templates for the target date", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.CourtByIDFn = func(_ context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
			return activeCourt(id), nil
		}
		uow.Tx.ReadsFake.ActiveTemplatesFn = func(_ context.Context) ([]*recurring.Template, error) {
			return []*recurring.Template{
				mustTemplate(t, courtID, 1, "19:00", 90), // Monday, applies
				mustTemplate(t, courtID, 2, "19:00", 90), // Tuesday, not the target weekday
			}, nil
		}
		uc := newRecurringUseCase(t, uow)

		result, err := uc.Expand(context.Background(), testNow, horizonDays)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 23, 0, 0, 0, 0, buenosAires), result.TargetDate)
		assert.Len(t, result.Created, 1)
		assert.Zero(t, result.Skipped)

		require.Len(t, uow.Tx.BookingsRepo.Created, 1)
		created := uow.Tx.BookingsRepo.Created[0]
		assert.Equal(t, courtID, created.CourtID())
		assert.Equal(t, int64(12000), created.Price().Cents())
		// 19:00 Buenos Aires is 22:00 UTC.
		assert.Equal(t, time.Date(2026, 3, 23, 22, 0, 0, 0, time.UTC), created.Slot().Start())
		assert.Equal(t, booking.StatusConfirmed, created.Status())
	})

	t.Run("template outside its validity window is not expanded", func(t *testing.T) {
		tmpl := mustTemplate(t, courtID, 1, "19:00", 90)
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.ActiveTemplatesFn = func(_ context.Context) ([]*recurring.Template, error) {
			validTo := time.Date(2026, 3, 20, 0, 0, 0, 0, buenosAires)
			customer, err := booking.NewCustomer("Liga de los Lunes", "+5491155551234")
			require.NoError(t, err)
			expired, err := recurring.NewTemplate(
				tmpl.CourtID(), customer, 1, "19:00", 90,
				12000, booking.PaymentCash, false,
				time.Date(2026, 3, 1, 0, 0, 0, 0, buenosAires), &validTo, "",
			)
			require.NoError(t, err)
			return []*recurring.Template{expired}, nil
		}
		uc := newRecurringUseCase(t, uow)

		result, err := uc.Expand(context.Background(), testNow, horizonDays)
		require.NoError(t, err)
		assert.Empty(t, result.Created)
		assert.Zero(t, result.Skipped)
		assert.Empty(t, uow.Tx.BookingsRepo.Created)
	})

	t.Run("occupied slot is skipped, not an error", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.ActiveTemplatesFn = func(_ context.Context) ([]*recurring.Template, error) {
			return []*recurring.Template{mustTemplate(t, courtID, 1, "19:00", 90)}, nil
		}
		uow.Tx.ReadsFake.BlockingBookingsFn = func(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]shared.BookingSnapshot, error) {
			return []shared.BookingSnapshot{{ID: uuid.New(), Status: "confirmed"}}, nil
		}
		uc := newRecurringUseCase(t, uow)

		result, err := uc.Expand(context.Background(), testNow, horizonDays)
		require.NoError(t, err)
		assert.Empty(t, result.Created)
		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("losing the insert race also counts as skipped", func(t *testing.T) {
		uow := fake.NewUoW()
		uow.Tx.ReadsFake.CourtByIDFn = func(_ context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
			return activeCourt(id), nil
		}
		uow.Tx.ReadsFake.ActiveTemplatesFn = func(_ context.Context) ([]*recurring.Template, error) {
			return []*recurring.Template{mustTemplate(t, courtID, 1, "19:00", 90)}, nil
		}
		uow.Tx.BookingsRepo.CreateErr = infra.WrapRepoErr("duplicate key", nil, infra.KindDuplicateKey)
		uc := newRecurringUseCase(t, uow)

		result, err := uc.Expand(context.Background(), testNow, horizonDays)
		require.NoError(t, err)
		assert.Empty(t, result.Created)
		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("no active templates", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newRecurringUseCase(t, uow)

		result, err := uc.Expand(context.Background(), testNow, horizonDays)
		require.NoError(t, err)
		assert.Empty(t, result.Created)
		assert.Zero(t, result.Skipped)
	})

	t.Run("as-of date before today is rejected", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newRecurringUseCase(t, uow)

		_, err := uc.Expand(context.Background(), testNow.AddDate(0, 0, -1), horizonDays)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
		assert.Empty(t, uow.Tx.BookingsRepo.Created)
	})

	t.Run("the cutoff is the club-local date, not the UTC one", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := newRecurringUseCase(t, uow)

		// 02:00 UTC on the 16th is still 23:00 on the 15th in Buenos Aires,
		// so it is a past date even though the UTC day matches today's.
		_, err := uc.Expand(context.Background(), time.Date(2026, 3, 16, 2, 0, 0, 0, time.UTC), horizonDays)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}
