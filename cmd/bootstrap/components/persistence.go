package components

import (
	"padel-club-api/internal/infra/readstore"
	"padel-club-api/internal/infra/uow"
	"padel-club-api/internal/usecase/queries"
	"padel-club-api/internal/usecase/shared"

	"go.uber.org/fx"
)

// PersistenceModule wires the write side (unit of work, which builds its own
// transaction-bound repositories) and the pool-backed read stores the query
// layer consumes directly.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
			fx.As(new(queries.BookedIntervalRepo)),
		),
		fx.Annotate(
			readstore.NewCourtReadStore,
			fx.As(new(queries.CourtViewRepo)),
		),
		fx.Annotate(
			readstore.NewCashboxReadStore,
			fx.As(new(queries.CashboxViewRepo)),
		),
		fx.Annotate(
			readstore.NewTemplateReadStore,
			fx.As(new(queries.TemplateViewRepo)),
		),
	),
)
