package main

import (
	"net/http"

	"github.com/diewo77/go-quotations/httpx"
	"github.com/diewo77/go-quotations/internal/config"
	"github.com/diewo77/go-quotations/internal/db"
	"github.com/diewo77/go-quotations/internal/handlers"
	"github.com/diewo77/go-quotations/internal/services"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
	db  *gorm.DB

	quotations *handlers.QuotationHandler
	products   *handlers.ProductHandler
}

// NewApp wires the stores and handlers around one shared *gorm.DB.
func NewApp(conn *gorm.DB, cfg *config.Config) (*App, error) {
	numberer, err := services.NewSnowflakeNumberer(cfg.Quotation.NodeID)
	if err != nil {
		return nil, err
	}

	catalog := services.NewCatalogStore(conn)
	catalog.Timeout = cfg.Quotation.PersistTimeout

	store := services.NewQuotationStore(conn, numberer)
	store.MaxAttempts = cfg.Quotation.MaxAttempts
	store.Timeout = cfg.Quotation.PersistTimeout

	reader := services.NewQuotationReader(conn)
	reader.Timeout = cfg.Quotation.PersistTimeout

	svc := services.NewQuotationService(services.NewAssembler(catalog), store, reader)

	app := &App{
		mux:        http.NewServeMux(),
		db:         conn,
		quotations: handlers.NewQuotationHandler(svc, cfg.Shop),
		products:   handlers.NewProductHandler(catalog),
	}
	app.setupRoutes()
	return app, nil
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	a.mux.HandleFunc("GET /healthz", a.health)

	// Quotations
	qh := a.quotations
	a.mux.HandleFunc("GET /quotations", qh.List)
	a.mux.HandleFunc("POST /quotations", qh.Create)
	a.mux.HandleFunc("GET /quotations/{id}", qh.View)
	a.mux.HandleFunc("GET /quotations/{id}/pdf", qh.PDF)
	a.mux.HandleFunc("POST /quotations/{id}/status", qh.SetStatus)

	// Catalog
	ph := a.products
	a.mux.HandleFunc("GET /products", ph.List)
	a.mux.HandleFunc("POST /products", ph.Create)
	a.mux.HandleFunc("GET /products/{id}", ph.View)
	a.mux.HandleFunc("POST /products/{id}", ph.Update)
	a.mux.HandleFunc("POST /products/{id}/delete", ph.Delete)
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	if err := db.Ping(r.Context(), a.db); err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "database_unavailable", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
