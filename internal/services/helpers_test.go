package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/diewo77/go-quotations/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(&models.Product{}, &models.Quotation{}, &models.QuotationItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, model, price, gst string) models.Product {
	t.Helper()
	p := models.Product{
		Name:      name,
		Model:     model,
		Brand:     "Havells",
		UnitPrice: d(price),
		GSTRate:   d(gst),
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
	return p
}

// fakeCatalog serves products from memory and counts lookups.
type fakeCatalog struct {
	mu       sync.Mutex
	products map[uint]models.Product
	calls    int
	err      error
}

func newFakeCatalog(products ...models.Product) *fakeCatalog {
	c := &fakeCatalog{products: map[uint]models.Product{}}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) GetProduct(_ context.Context, id uint) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	p, ok := c.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (c *fakeCatalog) ListProducts(context.Context) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	return out, nil
}

// scriptedNumberer returns the queued numbers in order, then falls back to
// a counter.
type scriptedNumberer struct {
	mu     sync.Mutex
	queue  []string
	n      int
	issued []string
}

func (s *scriptedNumberer) Next(at time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var num string
	if len(s.queue) > 0 {
		num, s.queue = s.queue[0], s.queue[1:]
	} else {
		s.n++
		num = fmt.Sprintf("QTN-%s-T%d", at.Format("20060102"), s.n)
	}
	s.issued = append(s.issued, num)
	return num
}

var fixedNow = time.Date(2026, 10, 18, 14, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }
