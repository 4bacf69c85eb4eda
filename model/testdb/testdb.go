// Package testdb opens in-memory sqlite stores seeded with catalog fixtures for tests.
package testdb

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	productEntity "products.GO/model/entity/product"
)

var seq atomic.Int64

// New returns an empty, migrated in-memory database private to t.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	// Named shared-cache DSN so every pooled connection sees the same memory DB.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", seq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(productEntity.Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func Ptr[T any](v T) *T {
	return &v
}

// ScenarioProduct is the product from the API documentation example: one
// variant and one case of six.
func ScenarioProduct() *productEntity.Product {
	return &productEntity.Product{
		UPC:                "00007127930100",
		Name:               Ptr("Gracious Hungry Clarke"),
		ItemNumber:         Ptr(int64(30257880)),
		Price:              decimal.NewNullDecimal(decimal.RequireFromString("13.76")),
		Supplier:           Ptr("Fresh Express Mid-Atl #16Efx#"),
		InventoryLevel:     Ptr(int64(15)),
		InventoryUpdatedAt: Ptr(time.Date(2024, 11, 4, 20, 0, 16, 0, time.UTC)),
		Alternates: []productEntity.Alternate{
			{UPC: "00005114137289", AlternateType: productEntity.AlternateVariant},
			{UPC: "00007127957158", AlternateType: productEntity.AlternateCase, CasePack: Ptr(6.0)},
		},
	}
}

// MilkProduct has no alternates.
func MilkProduct() *productEntity.Product {
	return &productEntity.Product{
		UPC:                "11111111111111",
		Name:               Ptr("Milk"),
		ItemNumber:         Ptr(int64(100)),
		Price:              decimal.NewNullDecimal(decimal.RequireFromString("2.90")),
		Supplier:           Ptr("Mariusz's Farm"),
		InventoryLevel:     Ptr(int64(42)),
		InventoryUpdatedAt: Ptr(time.Date(2024, 11, 13, 0, 0, 0, 0, time.UTC)),
	}
}

// Seed inserts products together with their alternates.
func Seed(t testing.TB, db *gorm.DB, products ...*productEntity.Product) {
	t.Helper()
	for _, p := range products {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed product %s: %v", p.UPC, err)
		}
	}
}
