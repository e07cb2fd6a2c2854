package components

import (
	"go.uber.org/fx"

	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/config"
	"hotel-reservation/internal/pkg/generation"
	"hotel-reservation/internal/usecase"
	"hotel-reservation/internal/usecase/availability"
	"hotel-reservation/internal/usecase/commands"
	"hotel-reservation/internal/usecase/queries"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	func(cfg config.Config, clk clock.Clock) *generation.Tracker {
		return generation.NewTracker(cfg.Catalog.SessionTTL, clk)
	},
	availability.NewGate,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewQuoteQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
