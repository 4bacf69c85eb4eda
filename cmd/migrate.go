package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"products.GO/config"
	"products.GO/migrations"
)

var migrateCmd = &cobra.Command{
	Use:       "db:migrate [up|down]",
	Short:     "Apply (or roll back) the catalog schema",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(migrations.Up), string(migrations.Down)},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := migrations.Up
		if len(args) == 1 {
			dir = migrations.Direction(args[0])
		}
		db, err := openDB()
		if err != nil {
			return fmt.Errorf("connect to DB: %w", err)
		}
		if err := migrations.Run(db, config.App(), dir); err != nil {
			return fmt.Errorf("migrate %s: %w", dir, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: done\n", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
