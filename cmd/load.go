package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"products.GO/config"
	"products.GO/core/logx"
	"products.GO/httpserver"
	productService "products.GO/service/product"
)

var (
	loadProducts   string
	loadAlternates string
	loadBatch      int
	loadReplace    bool
)

var loadCmd = &cobra.Command{
	Use:   "products:load",
	Short: "Load products.csv and product_alternates.csv (ETL output) into the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		pf, err := os.Open(loadProducts)
		if err != nil {
			return fmt.Errorf("open products csv: %w", err)
		}
		defer pf.Close()

		var alternates io.Reader
		if loadAlternates != "" {
			af, err := os.Open(loadAlternates)
			if err != nil {
				return fmt.Errorf("open alternates csv: %w", err)
			}
			defer af.Close()
			alternates = af
		}

		db, err := openDB()
		if err != nil {
			return fmt.Errorf("connect to DB: %w", err)
		}

		res, err := productService.LoadCSV(cmd.Context(), db, pf, alternates, productService.LoadOptions{
			BatchSize: loadBatch,
			Replace:   loadReplace,
		})
		if err != nil {
			return fmt.Errorf("load failed: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, w := range res.Warnings {
			fmt.Fprintf(out, "  [warn] %s\n", w)
		}
		fmt.Fprintf(out, `
=== Load Report ===
Product rows:    %d
Alternate rows:  %d
Products:        %d
Alternates:      %d
Skipped:         %d
Mode:            %s
Total time:      %s
===================
`, res.ProductRows, res.AlternateRows, res.Products, res.Alternates, res.Skipped,
			map[bool]string{true: "replace", false: "upsert"}[loadReplace],
			res.Duration.Round(time.Millisecond))

		purgeSharedCache(cmd.Context(), httpserver.ProductCache(config.App()))
		return nil
	},
}

// purgeSharedCache empties a Redis cache after a load and reports whether it
// tried. A local cache belongs to this process only.
func purgeSharedCache(ctx context.Context, cache productService.Cache) bool {
	rc, ok := cache.(*productService.RedisCache)
	if !ok {
		if cache != nil {
			logx.Info().Msg("no shared cache, running servers keep cached products until the TTL expires")
		}
		return false
	}
	if err := rc.Purge(ctx); err != nil {
		logx.Warn().Err(err).Msg("cache purge failed")
	}
	return true
}

func init() {
	loadCmd.Flags().StringVarP(&loadProducts, "products", "p", "products.csv", "Path to products CSV")
	loadCmd.Flags().StringVarP(&loadAlternates, "alternates", "a", "", "Path to product_alternates CSV")
	loadCmd.Flags().IntVarP(&loadBatch, "batch", "b", 500, "Rows per INSERT batch")
	loadCmd.Flags().BoolVar(&loadReplace, "replace", false, "Empty both tables before loading")
	rootCmd.AddCommand(loadCmd)
}
