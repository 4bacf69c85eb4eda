package config

import (
	"fmt"
	"sync"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds global application configuration
var AppConfig *Config

var (
	once    sync.Once
	loadErr error
)

type Config struct {
	AppName  string `envconfig:"APP_NAME" default:"products-api"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL"`

	DBDriver   string `envconfig:"DB_DRIVER" default:"mysql"`
	MySQLDSN   string `envconfig:"MYSQL_DSN"`
	MySQLUser  string `envconfig:"MYSQL_USER"`
	MySQLPass  string `envconfig:"MYSQL_PASS"`
	MySQLHost  string `envconfig:"MYSQL_HOST" default:"127.0.0.1"`
	MySQLPort  string `envconfig:"MYSQL_PORT" default:"3306"`
	MySQLDB    string `envconfig:"MYSQL_DB" default:"products"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"products.db"`
	GormLog    string `envconfig:"GORM_LOG" default:"warn"`

	RedisAddr string `envconfig:"REDIS_ADDR"`
	RedisPass string `envconfig:"REDIS_PASS"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`

	CacheTTLSeconds int    `envconfig:"CACHE_TTL_SECONDS" default:"0"`
	AuditSchedule   string `envconfig:"AUDIT_SCHEDULE" default:"@hourly"`
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load parses the environment into a fresh Config.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadAppConfig initializes the global AppConfig variable. Every call
// returns the error of the first load.
func LoadAppConfig() error {
	once.Do(func() {
		AppConfig, loadErr = Load()
	})
	return loadErr
}

// App returns AppConfig, loading it on first use. It panics when the
// environment cannot be parsed; commands call LoadAppConfig first.
func App() *Config {
	if AppConfig == nil {
		if err := LoadAppConfig(); err != nil {
			panic(fmt.Sprintf("config: %v", err))
		}
	}
	return AppConfig
}
