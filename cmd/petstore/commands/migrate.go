package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/R3E-Network/petstore/internal/app/storage/postgres"
	"github.com/R3E-Network/petstore/internal/config"
	"github.com/R3E-Network/petstore/internal/platform/migrations"
)

func migrateCmd() *cobra.Command {
	var down int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the Postgres schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !strings.EqualFold(cfg.Storage.Backend, config.StoragePostgres) {
				return fmt.Errorf("migrate needs the %s storage backend, got %q", config.StoragePostgres, cfg.Storage.Backend)
			}

			db, err := postgres.Open(cmd.Context(), cfg.Storage.PostgresDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			if down > 0 {
				err = migrations.Down(db.DB, down)
			} else {
				err = migrations.Up(db.DB)
			}
			if err != nil {
				return err
			}

			version, dirty, err := migrations.Version(db.DB)
			if err != nil {
				return err
			}
			log.WithField("version", version).WithField("dirty", dirty).Info("schema migrated")
			return nil
		},
	}

	cmd.Flags().IntVar(&down, "down", 0, "roll back this many migrations instead of applying")
	return cmd
}
