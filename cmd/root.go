package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"products.GO/config"
	"products.GO/core/logx"
)

// openDB is replaced in tests.
var openDB = config.NewDB

var rootCmd = &cobra.Command{
	Use:           "products",
	Short:         "Product UPC lookup service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadAppConfig(); err != nil {
			return err
		}
		c := config.App()
		logx.Init(logx.Options{Env: c.Env, Level: c.LogLevel, Out: os.Stderr})
		return nil
	},
}

// Execute applies registered commands and runs the root command.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		logx.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
