package components

import (
	"fiksit-api/internal/infra/cache"
	"fiksit-api/internal/infra/db"
	"fiksit-api/internal/infra/readstore"
	"fiksit-api/internal/infra/uow"
	"fiksit-api/internal/pkg/config"
	"fiksit-api/internal/usecase/commands"
	"fiksit-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
		),
		fx.Annotate(
			readstore.NewQuoteReadStore,
			fx.As(new(queries.QuoteViewRepo)),
		),
		fx.Annotate(
			readstore.NewAvailabilityReadStore,
			fx.As(new(queries.AvailabilityViewRepo)),
		),
		fx.Annotate(
			readstore.NewChangeRequestReadStore,
			fx.As(new(queries.ChangeRequestViewRepo)),
		),
		fx.Annotate(
			readstore.NewProviderReadStore,
			fx.As(new(queries.ProviderViewRepo)),
		),
		fx.Annotate(
			NewAvailabilityCache,
			fx.As(new(queries.AvailabilityCache)),
			fx.As(new(commands.AvailabilityInvalidator)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewAvailabilityCache(client *redis.Client, cfg config.Config) *cache.AvailabilityCache {
	return cache.NewAvailabilityCache(client, cfg.Redis.CacheTTL)
}
