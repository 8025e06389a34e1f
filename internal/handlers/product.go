package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/diewo77/go-quotations/httpx"
	"github.com/diewo77/go-quotations/internal/models"
	"github.com/diewo77/go-quotations/internal/services"
	"github.com/diewo77/go-quotations/validation"
	"github.com/shopspring/decimal"
)

var (
	minGST = decimal.Zero
	maxGST = decimal.NewFromInt(100)
)

// ProductHandler is a thin JSON API over the catalog.
type ProductHandler struct {
	Catalog *services.CatalogStore
}

func NewProductHandler(catalog *services.CatalogStore) *ProductHandler {
	return &ProductHandler{Catalog: catalog}
}

// List: GET /products, ordered by name then model.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.ListProducts(r.Context())
	if err != nil {
		logError(r, "list products", err)
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": products, "total": len(products)})
}

// View: GET /products/{id}
func (h *ProductHandler) View(w http.ResponseWriter, r *http.Request) {
	p, ok := h.find(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Create: POST /products, JSON or form.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, v, ok := decodeProductInput(w, r)
	if !ok {
		return
	}
	var p models.Product
	in.apply(&p)
	if in.UnitPrice == nil {
		v["unit_price"] = "required"
	}
	if in.GSTRate == nil {
		v["gst_rate"] = "required"
	}
	validateProduct(&p, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.Catalog.CreateProduct(r.Context(), &p); err != nil {
		logError(r, "create product", err)
		httpx.JSONError(w, http.StatusInternalServerError, "product_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Update: POST /products/{id}. Only the fields sent are changed.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := h.find(w, r)
	if !ok {
		return
	}
	in, v, ok := decodeProductInput(w, r)
	if !ok {
		return
	}
	in.apply(p)
	validateProduct(p, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.Catalog.UpdateProduct(r.Context(), p); err != nil {
		logError(r, "update product", err)
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Delete: POST /products/{id}/delete (soft delete).
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Catalog.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		logError(r, "delete product", err)
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func (h *ProductHandler) find(w http.ResponseWriter, r *http.Request) (*models.Product, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return nil, false
	}
	p, err := h.Catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return nil, false
		}
		logError(r, "get product", err)
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_product", nil)
		return nil, false
	}
	return p, true
}

// productInput holds the fields a client sent; nil means "not sent".
type productInput struct {
	Name      *string          `json:"name"`
	Model     *string          `json:"model"`
	Brand     *string          `json:"brand"`
	Category  *string          `json:"category"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	GSTRate   *decimal.Decimal `json:"gst_rate"`
	ImagePath *string          `json:"image_path"`
}

func decodeProductInput(w http.ResponseWriter, r *http.Request) (productInput, validation.Violations, bool) {
	var in productInput
	v := validation.Violations{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return in, nil, false
		}
		return in, v, true
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return in, nil, false
	}
	str := func(key string) *string {
		if _, ok := r.Form[key]; !ok {
			return nil
		}
		s := r.Form.Get(key)
		return &s
	}
	num := func(key string) *decimal.Decimal {
		s := str(key)
		if s == nil {
			return nil
		}
		d := validation.Decimal(key, *s, v)
		return &d
	}
	in.Name = str("name")
	in.Model = str("model")
	in.Brand = str("brand")
	in.Category = str("category")
	in.ImagePath = str("image_path")
	in.UnitPrice = num("unit_price")
	in.GSTRate = num("gst_rate")
	return in, v, true
}

func (in productInput) apply(p *models.Product) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&p.Name, in.Name)
	set(&p.Model, in.Model)
	set(&p.Brand, in.Brand)
	set(&p.Category, in.Category)
	set(&p.ImagePath, in.ImagePath)
	if in.UnitPrice != nil {
		p.UnitPrice = *in.UnitPrice
	}
	if in.GSTRate != nil {
		p.GSTRate = *in.GSTRate
	}
}

func validateProduct(p *models.Product, v validation.Violations) {
	validation.Required("name", p.Name, v)
	validation.Required("model", p.Model, v)
	validation.MaxLen("name", p.Name, 255, v)
	validation.MaxLen("model", p.Model, 255, v)
	validation.MaxLen("brand", p.Brand, 255, v)
	validation.MaxLen("category", p.Category, 100, v)
	validation.NonNegativeDecimal("unit_price", p.UnitPrice, v)
	validation.RangeDecimal("gst_rate", p.GSTRate, minGST, maxGST, v)
}
