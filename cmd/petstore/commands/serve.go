package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	app "github.com/R3E-Network/petstore/internal/app"
	"github.com/R3E-Network/petstore/internal/app/runtime"
	"github.com/R3E-Network/petstore/internal/app/seed"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	var (
		migrate  bool
		withDemo bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the store's HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stores, closeStores, err := runtime.BuildStores(ctx, cfg, migrate, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeStores(); err != nil {
					log.WithError(err).Warn("close stores")
				}
			}()

			application, err := app.New(stores, log, app.WithCartPurge(cfg.Cart.TTL, cfg.Cart.PurgeSchedule))
			if err != nil {
				return err
			}
			if withDemo {
				if _, err := seed.Demo(ctx, application.Catalog, log); err != nil {
					return fmt.Errorf("load demo catalog: %w", err)
				}
			}
			server, pipe := runtime.NewServer(cfg, application, log)
			if err := pipe.AttachTo(application); err != nil {
				return err
			}
			if err := application.Start(ctx); err != nil {
				return err
			}

			serveErr := make(chan error, 1)
			go func() {
				log.WithField("addr", cfg.Server.Addr).Info("petstore listening")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()

			select {
			case err := <-serveErr:
				if err != nil {
					_ = application.Stop(context.Background())
					return fmt.Errorf("http server: %w", err)
				}
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Warn("server shutdown")
			}
			return application.Stop(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending Postgres migrations on start")
	cmd.Flags().BoolVar(&withDemo, "demo", false, "load the demo catalog on start")
	return cmd
}
