package bootstrap

import (
	"context"

	"fiksit-api/internal/infra/db"
	"fiksit-api/internal/infra/migrate"
	"fiksit-api/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
	fx.Invoke(runMigrations),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

// runMigrations applies pending migrations before the server accepts traffic.
func runMigrations(cfg config.Config) error {
	return migrate.Up(cfg.DB)
}
