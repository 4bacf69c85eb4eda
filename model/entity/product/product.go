package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents the products table. Descriptive columns are nullable,
// the ingestion pipeline owns their contents.
type Product struct {
	ProductID          uint                `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id"`
	UPC                string              `gorm:"column:upc;type:varchar(14);not null;uniqueIndex:products_upc_key" json:"upc"`
	Name               *string             `gorm:"column:name;type:text" json:"name"`
	ItemNumber         *int64              `gorm:"column:item_number" json:"item_number"`
	Price              decimal.NullDecimal `gorm:"column:price;type:decimal(18,2)" json:"price"`
	Supplier           *string             `gorm:"column:supplier;type:text" json:"supplier"`
	InventoryLevel     *int64              `gorm:"column:inventory_level" json:"inventory_level"`
	InventoryUpdatedAt *time.Time          `gorm:"column:inventory_updated_at" json:"inventory_updated_at"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Alternates []Alternate `gorm:"foreignKey:ProductID;references:ProductID;constraint:OnDelete:CASCADE" json:"alternates"`
}

func (Product) TableName() string {
	return "products"
}
