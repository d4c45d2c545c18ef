package components

import (
	"time"

	"padel-club-api/internal/handler"
	"padel-club-api/internal/handler/api"
	"padel-club-api/internal/handler/middleware"
	"padel-club-api/internal/pkg/clock"
	"padel-club-api/internal/pkg/config"
	"padel-club-api/internal/usecase/commands"
	"padel-club-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
		api.NewPaymentHandler,
		api.NewCashboxHandler,
		NewRecurringHandler,
		NewHandlers,
		NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewRecurringHandler(
	recurringCommands commands.RecurringCommands,
	recurringQueries queries.RecurringQueries,
	cfg config.Config,
	loc *time.Location,
	clk clock.Clock,
) *api.RecurringHandler {
	return api.NewRecurringHandler(recurringCommands, recurringQueries, cfg.Scheduler.ExpandHorizonDays, loc, clk)
}

func NewAuthMiddleware(cfg config.Config) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(cfg.JWT)
}

func NewHandlers(
	availability *api.AvailabilityHandler,
	booking *api.BookingHandler,
	payment *api.PaymentHandler,
	cashbox *api.CashboxHandler,
	recurring *api.RecurringHandler,
) handler.Handlers {
	return handler.Handlers{
		Availability: availability,
		Booking:      booking,
		Payment:      payment,
		Cashbox:      cashbox,
		Recurring:    recurring,
	}
}
