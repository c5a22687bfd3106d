package main

import (
	"github.com/spf13/cobra"

	"github.com/agenthands/discourse/internal/app"
	"github.com/agenthands/discourse/internal/data"
	"github.com/agenthands/discourse/internal/driver"
	"github.com/agenthands/discourse/internal/logger"
)

func createImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-communities",
		Short: "Copy community edge tables from the data source into Memgraph",
		Long: `Read every community_<keyword>.csv from the configured data source and store
it in Memgraph, replacing what was stored for that keyword. The server reads
them back when community_source = "memgraph".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			src, err := app.NewSource(ctx, cfg)
			if err != nil {
				return err
			}
			km, err := data.NewLoader(src).CommunityTables(ctx, cfg.Data.CommunityPrefix)
			if err != nil {
				return err
			}

			d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph)
			if err != nil {
				return err
			}
			defer d.Close(ctx)

			if err := d.BuildIndices(ctx); err != nil {
				return err
			}
			repo := driver.NewCommunityRepository(d)
			for _, kw := range km.Keywords() {
				t, err := km.Lookup(kw)
				if err != nil {
					return err
				}
				if err := repo.SaveTable(ctx, kw, t); err != nil {
					return err
				}
			}
			logger.Info("Imported communities", "keywords", km.Len())
			return nil
		},
	}
}
