package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	gormMySQL "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"products.GO/core/logx"
)

// NewDB opens the store configured in AppConfig.
func NewDB() (*gorm.DB, error) {
	if err := LoadAppConfig(); err != nil {
		return nil, err
	}
	return OpenDB(AppConfig)
}

// OpenDB opens a gorm connection for c.DBDriver (mysql or sqlite).
func OpenDB(c *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(c.DBDriver) {
	case "sqlite":
		dialector = sqlite.Open(c.SQLitePath)
	case "mysql", "":
		dsn, err := MySQLDSN(c)
		if err != nil {
			return nil, err
		}
		dialector = gormMySQL.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(c.GormLog),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// MySQLDSN returns MYSQL_DSN, or one built from the MYSQL_* parts, with
// parseTime forced on and timestamps read as UTC.
func MySQLDSN(c *Config) (string, error) {
	var mc *mysql.Config
	if c.MySQLDSN != "" {
		parsed, err := mysql.ParseDSN(c.MySQLDSN)
		if err != nil {
			return "", fmt.Errorf("parse MYSQL_DSN: %w", err)
		}
		mc = parsed
	} else {
		mc = mysql.NewConfig()
		mc.User = c.MySQLUser
		mc.Passwd = c.MySQLPass
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.MySQLHost, c.MySQLPort)
		mc.DBName = c.MySQLDB
	}
	mc.ParseTime = true
	mc.Loc = time.UTC
	if mc.Params == nil {
		mc.Params = map[string]string{}
	}
	if _, ok := mc.Params["charset"]; !ok {
		mc.Params["charset"] = "utf8mb4"
	}
	return mc.FormatDSN(), nil
}

func newGormLogger(mode string) logger.Interface {
	level := logger.Warn
	switch strings.ToLower(mode) {
	case "off", "silent":
		level = logger.Silent
	case "error":
		level = logger.Error
	case "info":
		level = logger.Info
	}
	return logger.New(
		logx.Printf{Level: zerolog.DebugLevel},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}
