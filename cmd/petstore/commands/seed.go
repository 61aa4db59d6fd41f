package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	app "github.com/R3E-Network/petstore/internal/app"
	"github.com/R3E-Network/petstore/internal/app/runtime"
	"github.com/R3E-Network/petstore/internal/app/seed"
)

func seedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a catalog of products and items",
		Long:  "Load the demo catalog, or the YAML catalog given with --file, into the configured store.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			stores, closeStores, err := runtime.BuildStores(ctx, cfg, true, log)
			if err != nil {
				return err
			}
			defer closeStores()

			application, err := app.New(stores, log)
			if err != nil {
				return err
			}

			var res seed.Result
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read catalog: %w", err)
				}
				res, err = seed.Load(ctx, application.Catalog, data, log)
				if err != nil {
					return err
				}
			} else {
				res, err = seed.Demo(ctx, application.Catalog, log)
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %d products and %d items.\n", res.Products, res.Items)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML catalog to load instead of the demo catalog")
	return cmd
}
