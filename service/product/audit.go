package product

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	productEntity "products.GO/model/entity/product"
)

// Finding kinds reported by Audit.
const (
	FindingUPCCollision    = "upc_collision"
	FindingInvalidUPC      = "invalid_upc"
	FindingCaseWithoutPack = "case_without_case_pack"
	FindingVariantWithPack = "variant_with_case_pack"
	FindingUnknownType     = "unknown_alternate_type"
	FindingOrphanAlternate = "orphan_alternate"
	FindingMissingField    = "missing_required_field"
)

// Finding is one integrity violation found in the store.
type Finding struct {
	Kind      string `json:"kind"`
	UPC       string `json:"upc"`
	ProductID uint   `json:"product_id"`
	Detail    string `json:"detail,omitempty"`
}

// AuditReport lists everything in the store that the resolver or shaper would reject.
type AuditReport struct {
	Products   int64     `json:"products"`
	Alternates int64     `json:"alternates"`
	Findings   []Finding `json:"findings"`
}

func (r *AuditReport) Clean() bool {
	return len(r.Findings) == 0
}

// CountByKind groups findings by kind.
func (r *AuditReport) CountByKind() map[string]int {
	out := make(map[string]int)
	for _, f := range r.Findings {
		out[f.Kind]++
	}
	return out
}

// Audit checks the whole catalog against the resolution invariants. It only reads.
func Audit(ctx context.Context, db *gorm.DB) (*AuditReport, error) {
	db = db.WithContext(ctx)
	rep := &AuditReport{Findings: []Finding{}}

	if err := db.Model(&productEntity.Product{}).Count(&rep.Products).Error; err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	if err := db.Model(&productEntity.Alternate{}).Count(&rep.Alternates).Error; err != nil {
		return nil, fmt.Errorf("count alternates: %w", err)
	}

	checks := []func(*gorm.DB, *AuditReport) error{
		auditCollisions,
		auditInvalidUPCs,
		auditAlternateTypes,
		auditOrphans,
		auditMissingFields,
	}
	for _, check := range checks {
		if err := check(db, rep); err != nil {
			return nil, err
		}
	}
	return rep, nil
}

func auditCollisions(db *gorm.DB, rep *AuditReport) error {
	var rows []struct {
		UPC          string
		ProductID    uint
		AltProductID uint
	}
	err := db.Table("product_alternates AS a").
		Select("a.upc AS upc, p.product_id AS product_id, a.product_id AS alt_product_id").
		Joins("JOIN products p ON p.upc = a.upc").
		Order("a.upc").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("audit collisions: %w", err)
	}
	for _, r := range rows {
		rep.Findings = append(rep.Findings, Finding{
			Kind:      FindingUPCCollision,
			UPC:       r.UPC,
			ProductID: r.ProductID,
			Detail:    fmt.Sprintf("also an alternate of product %d", r.AltProductID),
		})
	}
	return nil
}

func auditInvalidUPCs(db *gorm.DB, rep *AuditReport) error {
	var products []productEntity.Product
	if err := db.Select("product_id", "upc").Order("product_id").Find(&products).Error; err != nil {
		return fmt.Errorf("audit product upcs: %w", err)
	}
	for _, p := range products {
		if !ValidUPC(p.UPC) {
			rep.Findings = append(rep.Findings, Finding{Kind: FindingInvalidUPC, UPC: p.UPC, ProductID: p.ProductID, Detail: "product"})
		}
	}
	var alternates []productEntity.Alternate
	if err := db.Select("product_id", "upc").Order("product_alternate_id").Find(&alternates).Error; err != nil {
		return fmt.Errorf("audit alternate upcs: %w", err)
	}
	for _, a := range alternates {
		if !ValidUPC(a.UPC) {
			rep.Findings = append(rep.Findings, Finding{Kind: FindingInvalidUPC, UPC: a.UPC, ProductID: a.ProductID, Detail: "alternate"})
		}
	}
	return nil
}

func auditAlternateTypes(db *gorm.DB, rep *AuditReport) error {
	var alternates []productEntity.Alternate
	err := db.Where("(alternate_type = ? AND case_pack IS NULL) OR (alternate_type = ? AND case_pack IS NOT NULL) OR alternate_type IS NULL OR alternate_type NOT IN ?",
		string(productEntity.AlternateCase), string(productEntity.AlternateVariant),
		[]string{string(productEntity.AlternateVariant), string(productEntity.AlternateCase)}).
		Order("product_alternate_id").
		Find(&alternates).Error
	if err != nil {
		return fmt.Errorf("audit alternate types: %w", err)
	}
	for _, a := range alternates {
		f := Finding{UPC: a.UPC, ProductID: a.ProductID}
		switch a.AlternateType {
		case productEntity.AlternateCase:
			f.Kind = FindingCaseWithoutPack
		case productEntity.AlternateVariant:
			f.Kind = FindingVariantWithPack
		default:
			f.Kind = FindingUnknownType
			f.Detail = string(a.AlternateType)
		}
		rep.Findings = append(rep.Findings, f)
	}
	return nil
}

func auditOrphans(db *gorm.DB, rep *AuditReport) error {
	var alternates []productEntity.Alternate
	err := db.Table("product_alternates AS a").
		Select("a.product_alternate_id, a.product_id, a.upc").
		Joins("LEFT JOIN products p ON p.product_id = a.product_id").
		Where("p.product_id IS NULL").
		Order("a.product_alternate_id").
		Scan(&alternates).Error
	if err != nil {
		return fmt.Errorf("audit orphans: %w", err)
	}
	for _, a := range alternates {
		rep.Findings = append(rep.Findings, Finding{Kind: FindingOrphanAlternate, UPC: a.UPC, ProductID: a.ProductID})
	}
	return nil
}

func auditMissingFields(db *gorm.DB, rep *AuditReport) error {
	var products []productEntity.Product
	err := db.Where("name IS NULL OR item_number IS NULL OR price IS NULL OR supplier IS NULL OR inventory_level IS NULL OR inventory_updated_at IS NULL").
		Order("product_id").
		Find(&products).Error
	if err != nil {
		return fmt.Errorf("audit missing fields: %w", err)
	}
	for _, p := range products {
		_, err := Shape(&p)
		var ie *IntegrityError
		if errors.As(err, &ie) {
			rep.Findings = append(rep.Findings, Finding{Kind: FindingMissingField, UPC: p.UPC, ProductID: p.ProductID, Detail: ie.Field})
		}
	}
	return nil
}
