package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/diewo77/go-quotations/internal/config"
	"github.com/diewo77/go-quotations/internal/models"
	"github.com/diewo77/go-quotations/internal/services"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true, Logger: logger.Default.LogMode(logger.Silent)})
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
	p := models.Product{Name: name, Model: model, Brand: "Havells", UnitPrice: decimal.RequireFromString(price), GSTRate: decimal.RequireFromString(gst)}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

type testNumberer struct{ n int }

func (c *testNumberer) Next(at time.Time) string {
	c.n++
	return fmt.Sprintf("QTN-%s-H%d", at.Format("20060102"), c.n)
}

// newTestRouter wires the handlers the same way the server does.
func newTestRouter(t *testing.T, db *gorm.DB) http.Handler {
	t.Helper()
	catalog := services.NewCatalogStore(db)
	svc := services.NewQuotationService(
		services.NewAssembler(catalog),
		services.NewQuotationStore(db, &testNumberer{}),
		services.NewQuotationReader(db),
	)
	qh := NewQuotationHandler(svc, config.ShopConfig{Name: "Electric Mart", GSTIN: "27ABCDE1234F1Z5"})
	ph := NewProductHandler(catalog)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /quotations", qh.List)
	mux.HandleFunc("POST /quotations", qh.Create)
	mux.HandleFunc("GET /quotations/{id}", qh.View)
	mux.HandleFunc("GET /quotations/{id}/pdf", qh.PDF)
	mux.HandleFunc("POST /quotations/{id}/status", qh.SetStatus)
	mux.HandleFunc("GET /products", ph.List)
	mux.HandleFunc("POST /products", ph.Create)
	mux.HandleFunc("GET /products/{id}", ph.View)
	mux.HandleFunc("POST /products/{id}", ph.Update)
	mux.HandleFunc("POST /products/{id}/delete", ph.Delete)
	return mux
}
