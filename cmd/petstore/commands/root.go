// Package commands implements the petstore command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/R3E-Network/petstore/internal/config"
	"github.com/R3E-Network/petstore/internal/logging"
)

var (
	configPath string

	cfg config.Config
	log *logging.Logger
)

// Execute runs the command line.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "petstore",
		Short:        "A pet store web application",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			log = logging.New(cfg.Server.Name, cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML configuration file")

	root.AddCommand(serveCmd(), migrateCmd(), seedCmd(), tokenCmd())
	return root
}
