package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diewo77/go-quotations/internal/models"
	"gorm.io/gorm"
)

// DefaultStoreTimeout bounds every store call when no timeout is configured.
const DefaultStoreTimeout = 5 * time.Second

// Catalog is the read side of the product catalog used by the quotation workflow.
type Catalog interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// CatalogStore reads and maintains products through gorm.
type CatalogStore struct {
	DB      *gorm.DB
	Timeout time.Duration
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{DB: db, Timeout: DefaultStoreTimeout}
}

// GetProduct returns ErrProductNotFound when id is unknown or soft-deleted.
func (s *CatalogStore) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	var p models.Product
	if err := s.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, nil
}

// ListProducts returns every live product ordered by name, then model.
func (s *CatalogStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	var products []models.Product
	if err := s.DB.WithContext(ctx).Order("name asc").Order("model asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *CatalogStore) CreateProduct(ctx context.Context, p *models.Product) error {
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// UpdateProduct saves every column of p. Existing quotations keep their
// snapshots and are not affected.
func (s *CatalogStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	if err := s.DB.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("update product %d: %w", p.ID, err)
	}
	return nil
}

// DeleteProduct soft-deletes the product.
func (s *CatalogStore) DeleteProduct(ctx context.Context, id uint) error {
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	res := s.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, d)
}
