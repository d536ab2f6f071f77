package catalog

import (
	"context"

	pkgerrors "github.com/angelmondragon/museum-cart/pkg/errors"
	"gorm.io/gorm"
)

// Lister returns the products offered in the shop.
type Lister interface {
	ListActive(ctx context.Context) ([]Product, error)
}

// Repository reads the product catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns active products ordered for display.
func (r *Repository) ListActive(ctx context.Context) ([]Product, error) {
	var products []Product
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalog products")
	}
	return products, nil
}
