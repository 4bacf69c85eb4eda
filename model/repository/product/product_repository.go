package product

import (
	"context"
	"errors"

	"gorm.io/gorm"

	productEntity "products.GO/model/entity/product"
)

// ErrMultipleRows is returned when a lookup that must be unique matches more than one row.
var ErrMultipleRows = errors.New("multiple rows match")

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// WithTx returns a repository issuing its queries on tx.
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{db: tx}
}

// FindProductByUPC returns the product owning upc as its primary code, alternates loaded.
// Returns (nil, nil) when nothing matches.
func (r *ProductRepository) FindProductByUPC(ctx context.Context, upc string) (*productEntity.Product, error) {
	return r.findProduct(ctx, "upc = ?", upc)
}

// FindProductByID returns the product with its alternates, or (nil, nil).
func (r *ProductRepository) FindProductByID(ctx context.Context, id uint) (*productEntity.Product, error) {
	return r.findProduct(ctx, "product_id = ?", id)
}

func (r *ProductRepository) findProduct(ctx context.Context, query string, args ...interface{}) (*productEntity.Product, error) {
	var products []productEntity.Product
	err := r.db.WithContext(ctx).
		Preload("Alternates", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_alternate_id ASC")
		}).
		Where(query, args...).
		Limit(2).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	switch len(products) {
	case 0:
		return nil, nil
	case 1:
		return &products[0], nil
	default:
		return nil, ErrMultipleRows
	}
}

// FindAlternateByUPC returns the alternate registered under upc, or (nil, nil).
func (r *ProductRepository) FindAlternateByUPC(ctx context.Context, upc string) (*productEntity.Alternate, error) {
	var alternates []productEntity.Alternate
	err := r.db.WithContext(ctx).
		Where("upc = ?", upc).
		Limit(2).
		Find(&alternates).Error
	if err != nil {
		return nil, err
	}
	switch len(alternates) {
	case 0:
		return nil, nil
	case 1:
		return &alternates[0], nil
	default:
		return nil, ErrMultipleRows
	}
}

// Count returns the number of products and alternates in the store.
func (r *ProductRepository) Count(ctx context.Context) (products, alternates int64, err error) {
	if err = r.db.WithContext(ctx).Model(&productEntity.Product{}).Count(&products).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.WithContext(ctx).Model(&productEntity.Alternate{}).Count(&alternates).Error; err != nil {
		return 0, 0, err
	}
	return products, alternates, nil
}
