// Package migrations owns the catalog schema. MySQL is versioned with
// golang-migrate from the embedded sql/ directory; sqlite is created from
// the gorm entities.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migrateMySQL "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	"products.GO/config"
	"products.GO/core/logx"
	productEntity "products.GO/model/entity/product"
)

//go:embed sql/*.sql
var files embed.FS

// Direction selects Up or Down for Run.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Run migrates the store configured in c. db is only used for sqlite.
func Run(db *gorm.DB, c *config.Config, dir Direction) error {
	switch strings.ToLower(c.DBDriver) {
	case "sqlite":
		if dir == Down {
			return db.Migrator().DropTable(&productEntity.Alternate{}, &productEntity.Product{})
		}
		return db.AutoMigrate(productEntity.Models()...)
	case "mysql", "":
		dsn, err := config.MySQLDSN(c)
		if err != nil {
			return err
		}
		return MySQL(dsn, dir)
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
}

// MySQL applies the embedded migrations to the database at dsn.
func MySQL(dsn string, dir Direction) error {
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return fmt.Errorf("parse dsn: %w", err)
	}
	// Migration files hold several statements each.
	mc.MultiStatements = true
	sqlDB, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	src, err := iofs.New(files, "sql")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	target, err := migrateMySQL.WithInstance(sqlDB, &migrateMySQL.Config{})
	if err != nil {
		return fmt.Errorf("migration target: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "mysql", target)
	if err != nil {
		return err
	}

	switch dir {
	case Down:
		err = m.Down()
	default:
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		logx.Info().Str("direction", string(dir)).Msg("schema already up to date")
		return nil
	}
	if err != nil {
		return err
	}
	version, dirty, _ := m.Version()
	logx.Info().Uint("version", version).Bool("dirty", dirty).Str("direction", string(dir)).Msg("schema migrated")
	return nil
}
