package config

import (
	"github.com/joho/godotenv"

	"products.GO/core/logx"
)

// LoadEnv reads .env into the process environment. A missing file is fine,
// variables can be set by other means.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logx.Debug().Msg("no .env file loaded")
		return
	}
	logx.Debug().Msg("environment variables loaded from .env")
}
