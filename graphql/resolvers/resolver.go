package resolvers

import (
	"context"
	"errors"

	"products.GO/core/errx"
	"products.GO/core/logx"
	productService "products.GO/service/product"
)

// ErrInvalidUPC is returned for a upc argument that is not 14 digits.
var ErrInvalidUPC = errors.New("upc must be exactly 14 digits")

// QueryResolver is the single resolver for all Query fields.
type QueryResolver struct {
	lookup *productService.LookupService
}

func NewQueryResolver(lookup *productService.LookupService) *QueryResolver {
	return &QueryResolver{lookup: lookup}
}

// Product resolves product(upc:). Unknown codes resolve to null; store and
// integrity failures are logged and reported without detail.
func (r *QueryResolver) Product(ctx context.Context, args struct{ UPC string }) (*ProductResolver, error) {
	if !productService.ValidUPC(args.UPC) {
		return nil, ErrInvalidUPC
	}
	p, err := r.lookup.Lookup(ctx, args.UPC)
	if errors.Is(err, productService.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		logx.Error().Err(err).Str("upc", args.UPC).Msg("graphql product lookup failed")
		return nil, errors.New(errx.SystemErrorMessage)
	}
	return &ProductResolver{p: p}, nil
}
