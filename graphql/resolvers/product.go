package resolvers

import (
	"fmt"
	"math"

	gql "github.com/graph-gophers/graphql-go"

	productService "products.GO/service/product"
)

// ProductResolver exposes a shaped product to graphql-go. GraphQL Int is 32 bits,
// so the integer fields fail instead of wrapping.
type ProductResolver struct {
	p *productService.PublicProduct
}

func (r *ProductResolver) Name() string     { return r.p.Name }
func (r *ProductResolver) UPC() string      { return r.p.UPC }
func (r *ProductResolver) Price() string    { return r.p.Price }
func (r *ProductResolver) Supplier() string { return r.p.Supplier }

func (r *ProductResolver) ItemNumber() (int32, error) {
	return toInt32("item_number", r.p.ItemNumber)
}

func (r *ProductResolver) InventoryLevel() (int32, error) {
	return toInt32("inventory_level", r.p.InventoryLevel)
}

func (r *ProductResolver) InventoryUpdatedAt() gql.Time {
	return gql.Time{Time: r.p.InventoryUpdatedAt}
}

func (r *ProductResolver) Variants() []*VariantResolver {
	out := make([]*VariantResolver, len(r.p.Variants))
	for i := range r.p.Variants {
		out[i] = &VariantResolver{v: r.p.Variants[i]}
	}
	return out
}

type VariantResolver struct {
	v productService.Variant
}

func (r *VariantResolver) UPC() string        { return r.v.UPC }
func (r *VariantResolver) Type() string       { return r.v.Type }
func (r *VariantResolver) CasePack() *float64 { return r.v.CasePack }

func toInt32(field string, v int64) (int32, error) {
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%s %d out of GraphQL Int range", field, v)
	}
	return int32(v), nil
}
