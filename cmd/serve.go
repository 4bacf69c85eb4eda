package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"products.GO/config"
	"products.GO/httpserver"
	"products.GO/migrations"
)

var serveNoBanner bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (REST /v1/product/:upc and /graphql)",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := config.App()
		if !serveNoBanner {
			figure.NewFigure("products", "small", true).Print()
			fmt.Printf("UPC lookup on :%s  GraphQL at /graphql\n", c.Port)
		}

		db, err := openDB()
		if err != nil {
			return fmt.Errorf("connect to DB: %w", err)
		}
		// sqlite is a local store; create its tables on the fly.
		if strings.EqualFold(c.DBDriver, "sqlite") {
			if err := migrations.Run(db, c, migrations.Up); err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return httpserver.Run(ctx, c, db)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveNoBanner, "no-banner", false, "Do not print the start banner")
	rootCmd.AddCommand(serveCmd)
}
