package components

import (
	"fiksit-api/internal/pkg/clock"
	"fiksit-api/internal/usecase/commands"
	"fiksit-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewQuoteCommands,
		commands.NewAvailabilityCommands,
		commands.NewChangeRequestCommands,
		commands.NewReviewCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewQuoteQueries,
		queries.NewAvailabilityQueries,
		queries.NewChangeRequestQueries,
		queries.NewProviderQueries,
	),
)
