//go:build !cli
// +build !cli

package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "products.GO/custom"

	"products.GO/config"
	"products.GO/core/logx"
	"products.GO/httpserver"
	"products.GO/migrations"
)

func main() {
	config.LoadEnv()
	if err := config.LoadAppConfig(); err != nil {
		logx.Fatal().Err(err).Msg("invalid configuration")
	}
	c := config.App()
	logx.Init(logx.Options{Env: c.Env, Level: c.LogLevel})

	db, err := config.NewDB()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to connect to DB")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to get DB instance")
	}
	if err := sqlDB.Ping(); err != nil {
		logx.Fatal().Err(err).Msg("database connection failed")
	}
	logx.Info().Str("driver", c.DBDriver).Msg("database connection successful")

	if strings.EqualFold(c.DBDriver, "sqlite") {
		if err := migrations.Run(db, c, migrations.Up); err != nil {
			logx.Fatal().Err(err).Msg("sqlite schema")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := httpserver.Run(ctx, c, db); err != nil {
		logx.Fatal().Err(err).Msg("server stopped")
	}
}
