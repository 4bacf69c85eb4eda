package product

import (
	"context"

	"gorm.io/gorm"

	"products.GO/core/logx"
	productEntity "products.GO/model/entity/product"
	productRepo "products.GO/model/repository/product"
)

// LookupService resolves and shapes a UPC in one call. Each lookup runs in
// its own transaction so both reads see one snapshot.
type LookupService struct {
	db    *gorm.DB
	repo  *productRepo.ProductRepository
	cache Cache
}

// NewLookupService returns a lookup over db. cache may be nil.
func NewLookupService(db *gorm.DB, cache Cache) *LookupService {
	return &LookupService{db: db, repo: productRepo.NewProductRepository(db), cache: cache}
}

// Lookup returns the public record of the product owning upc, ErrNotFound,
// or an error matching ErrDataIntegrity.
func (s *LookupService) Lookup(ctx context.Context, upc string) (*PublicProduct, error) {
	if s.cache != nil {
		if p, ok := s.cache.Get(ctx, upc); ok {
			return p, nil
		}
	}

	var found *productEntity.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		found, err = NewResolver(s.repo.WithTx(tx)).Resolve(ctx, upc)
		return err
	})
	if err != nil {
		return nil, err
	}

	out, err := Shape(found)
	if err != nil {
		return nil, err
	}
	logx.Debug().Str("upc", upc).Str("product_upc", out.UPC).Msg("product resolved")

	if s.cache != nil {
		s.cache.Set(ctx, upc, out)
	}
	return out, nil
}

// PurgeCache drops cached lookups, used after the store has been reloaded.
func (s *LookupService) PurgeCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Purge(ctx)
}
