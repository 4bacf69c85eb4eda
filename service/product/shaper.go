package product

import (
	"time"

	productEntity "products.GO/model/entity/product"
)

// PublicProduct is the external representation of a product.
type PublicProduct struct {
	Name               string    `json:"name"`
	UPC                string    `json:"upc"`
	ItemNumber         int64     `json:"item_number"`
	Price              string    `json:"price"`
	Supplier           string    `json:"supplier"`
	InventoryLevel     int64     `json:"inventory_level"`
	InventoryUpdatedAt time.Time `json:"inventory_updated_at"`
	Variants           []Variant `json:"variants"`
}

// Variant is one alternate code of a PublicProduct. CasePack is null for variants.
type Variant struct {
	UPC      string   `json:"upc"`
	Type     string   `json:"type"`
	CasePack *float64 `json:"case_pack"`
}

// Shape maps a stored product aggregate to its public form. Every missing
// required column and every inconsistent alternate is an ErrDataIntegrity.
func Shape(p *productEntity.Product) (*PublicProduct, error) {
	upc := p.UPC
	if upc == "" {
		return nil, integrity(upc, "upc", "missing")
	}
	if p.Name == nil {
		return nil, integrity(upc, "name", "missing")
	}
	if p.ItemNumber == nil {
		return nil, integrity(upc, "item_number", "missing")
	}
	if !p.Price.Valid {
		return nil, integrity(upc, "price", "missing")
	}
	price := p.Price.Decimal
	if !price.Equal(price.Round(2)) {
		return nil, integrity(upc, "price", "more than 2 fraction digits: "+price.String())
	}
	if p.Supplier == nil {
		return nil, integrity(upc, "supplier", "missing")
	}
	if p.InventoryLevel == nil {
		return nil, integrity(upc, "inventory_level", "missing")
	}
	if p.InventoryUpdatedAt == nil {
		return nil, integrity(upc, "inventory_updated_at", "missing")
	}

	variants := make([]Variant, 0, len(p.Alternates))
	for _, alt := range p.Alternates {
		v, err := shapeVariant(upc, alt)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}

	return &PublicProduct{
		Name:               *p.Name,
		UPC:                upc,
		ItemNumber:         *p.ItemNumber,
		Price:              price.StringFixed(2),
		Supplier:           *p.Supplier,
		InventoryLevel:     *p.InventoryLevel,
		InventoryUpdatedAt: p.InventoryUpdatedAt.UTC(),
		Variants:           variants,
	}, nil
}

func shapeVariant(productUPC string, alt productEntity.Alternate) (Variant, error) {
	if alt.UPC == "" {
		return Variant{}, integrity(productUPC, "variants.upc", "missing")
	}
	switch alt.AlternateType {
	case productEntity.AlternateCase:
		if alt.CasePack == nil {
			return Variant{}, integrity(alt.UPC, "case_pack", "case alternate without case pack")
		}
	case productEntity.AlternateVariant:
		if alt.CasePack != nil {
			return Variant{}, integrity(alt.UPC, "case_pack", "variant alternate with case pack")
		}
	case "":
		return Variant{}, integrity(alt.UPC, "type", "missing")
	default:
		return Variant{}, integrity(alt.UPC, "type", "unknown alternate type "+string(alt.AlternateType))
	}
	v := Variant{UPC: alt.UPC, Type: string(alt.AlternateType)}
	if alt.CasePack != nil {
		cp := *alt.CasePack
		v.CasePack = &cp
	}
	return v, nil
}
