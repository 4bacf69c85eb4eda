package product

import "time"

// AlternateType mirrors the alternate_type enum.
type AlternateType string

const (
	AlternateVariant AlternateType = "variant"
	AlternateCase    AlternateType = "case"
)

func (t AlternateType) Valid() bool {
	return t == AlternateVariant || t == AlternateCase
}

// Alternate represents product_alternates: an extra UPC that resolves to its owning Product.
// CasePack is set only for case alternates.
type Alternate struct {
	ProductAlternateID uint          `gorm:"column:product_alternate_id;primaryKey;autoIncrement" json:"product_alternate_id"`
	ProductID          uint          `gorm:"column:product_id;not null;index" json:"product_id"`
	UPC                string        `gorm:"column:upc;type:varchar(14);not null;uniqueIndex:product_alternates_upc_key" json:"upc"`
	AlternateType      AlternateType `gorm:"column:alternate_type;type:varchar(16)" json:"alternate_type"`
	CasePack           *float64      `gorm:"column:case_pack" json:"case_pack"`
	CreatedAt          time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Alternate) TableName() string {
	return "product_alternates"
}

// Models lists every entity in migration order (products before alternates).
func Models() []interface{} {
	return []interface{}{&Product{}, &Alternate{}}
}
