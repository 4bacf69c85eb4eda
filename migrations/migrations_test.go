package migrations

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"products.GO/config"
	productEntity "products.GO/model/entity/product"
	productRepo "products.GO/model/repository/product"
)

func TestEmbeddedSource(t *testing.T) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		t.Fatalf("iofs: %v", err)
	}
	defer src.Close()

	first, err := src.First()
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if first != 1 {
		t.Errorf("first version = %d, want 1", first)
	}
	r, _, err := src.ReadUp(first)
	if err != nil {
		t.Fatalf("ReadUp: %v", err)
	}
	defer r.Close()
	b, _ := io.ReadAll(r)
	for _, want := range []string{"products_upc_key", "product_alternates_upc_key", "ENUM('variant', 'case')", "ON DELETE CASCADE"} {
		if !strings.Contains(string(b), want) {
			t.Errorf("up migration missing %q", want)
		}
	}
}

func TestRun_SQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	c := &config.Config{DBDriver: "sqlite"}
	if err := Run(db, c, Up); err != nil {
		t.Fatalf("Run up: %v", err)
	}
	for _, m := range productEntity.Models() {
		if !db.Migrator().HasTable(m) {
			t.Errorf("table for %T missing after up", m)
		}
	}
	if _, _, err := productRepo.NewProductRepository(db).Count(context.Background()); err != nil {
		t.Errorf("Count after up: %v", err)
	}

	if err := Run(db, c, Down); err != nil {
		t.Fatalf("Run down: %v", err)
	}
	if db.Migrator().HasTable(&productEntity.Product{}) {
		t.Error("products table still present after down")
	}
}

func TestRun_UnknownDriver(t *testing.T) {
	if err := Run(nil, &config.Config{DBDriver: "oracle"}, Up); err == nil {
		t.Error("Run with unknown driver should fail")
	}
}

// Needs a disposable MySQL database, e.g. MYSQL_TEST_DSN=root:pw@tcp(127.0.0.1:3306)/products_test
func TestMySQL_UpDown(t *testing.T) {
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set")
	}
	if err := MySQL(dsn, Up); err != nil {
		t.Fatalf("up: %v", err)
	}
	if err := MySQL(dsn, Up); err != nil {
		t.Fatalf("second up: %v", err)
	}
	if err := MySQL(dsn, Down); err != nil {
		t.Fatalf("down: %v", err)
	}
}
