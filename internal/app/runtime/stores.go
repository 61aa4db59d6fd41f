// Package runtime turns a configuration into running parts: the stores,
// the application and the HTTP server with its full middleware pipeline.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	app "github.com/R3E-Network/petstore/internal/app"
	"github.com/R3E-Network/petstore/internal/app/storage/postgres"
	"github.com/R3E-Network/petstore/internal/app/storage/redis"
	"github.com/R3E-Network/petstore/internal/config"
	"github.com/R3E-Network/petstore/internal/logging"
	"github.com/R3E-Network/petstore/internal/platform/migrations"
)

// Closer releases the connections opened by BuildStores.
type Closer func() error

// BuildStores opens the backends cfg selects. Memory stores are left nil
// so that app.New supplies them. When migrate is set the Postgres schema is
// brought up to date first.
func BuildStores(ctx context.Context, cfg config.Config, migrate bool, log *logging.Logger) (app.Stores, Closer, error) {
	var (
		stores  app.Stores
		closers []func() error
	)
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	if strings.EqualFold(cfg.Storage.Backend, config.StoragePostgres) {
		db, err := postgres.Open(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			return app.Stores{}, nil, err
		}
		closers = append(closers, db.Close)
		if migrate {
			if err := migrations.Up(db.DB); err != nil {
				_ = closeAll()
				return app.Stores{}, nil, err
			}
		}
		store := postgres.New(db)
		stores = app.Stores{Products: store, Items: store, Orders: store, Carts: store}
		log.Info("using postgres storage")
	}

	if addr := strings.TrimSpace(cfg.Storage.RedisAddr); addr != "" {
		client, err := redis.Dial(ctx, addr)
		if err != nil {
			_ = closeAll()
			return app.Stores{}, nil, fmt.Errorf("cart store: %w", err)
		}
		closers = append(closers, client.Close)
		stores.Carts = redis.NewCartStore(client, cfg.Cart.TTL)
		log.WithField("addr", addr).Info("keeping carts in redis")
	}

	return stores, closeAll, nil
}
