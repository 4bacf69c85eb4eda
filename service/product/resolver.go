package product

import (
	"context"
	"errors"
	"fmt"

	productEntity "products.GO/model/entity/product"
	productRepo "products.GO/model/repository/product"
)

// Store is the storage collaborator the resolver reads from. Finders return
// (nil, nil) when nothing matches.
type Store interface {
	FindProductByUPC(ctx context.Context, upc string) (*productEntity.Product, error)
	FindProductByID(ctx context.Context, id uint) (*productEntity.Product, error)
	FindAlternateByUPC(ctx context.Context, upc string) (*productEntity.Alternate, error)
}

// Resolver maps a UPC to its owning product: direct match first, then the
// alternate table. When an alternate UPC also equals another product's own
// UPC the direct match wins.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the product owning upc with all of its alternates, or ErrNotFound.
// upc must already be a valid GTIN-14.
func (r *Resolver) Resolve(ctx context.Context, upc string) (*productEntity.Product, error) {
	p, err := r.store.FindProductByUPC(ctx, upc)
	if err != nil {
		return nil, storeError(upc, "find product by upc", err)
	}
	if p != nil {
		return p, nil
	}

	alt, err := r.store.FindAlternateByUPC(ctx, upc)
	if err != nil {
		return nil, storeError(upc, "find alternate by upc", err)
	}
	if alt == nil {
		return nil, ErrNotFound
	}

	p, err = r.store.FindProductByID(ctx, alt.ProductID)
	if err != nil {
		return nil, storeError(upc, "find product by id", err)
	}
	if p == nil {
		return nil, &IntegrityError{
			UPC:    upc,
			Reason: fmt.Sprintf("alternate references missing product %d", alt.ProductID),
		}
	}
	return p, nil
}

func storeError(upc, op string, err error) error {
	if errors.Is(err, productRepo.ErrMultipleRows) {
		return &IntegrityError{UPC: upc, Reason: op, Err: err}
	}
	return fmt.Errorf("%s %s: %w", op, upc, err)
}
