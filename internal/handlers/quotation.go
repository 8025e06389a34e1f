package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/go-quotations/httpx"
	"github.com/diewo77/go-quotations/internal/config"
	"github.com/diewo77/go-quotations/internal/pdf"
	"github.com/diewo77/go-quotations/internal/services"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// QuotationHandler exposes quotation creation, viewing and printing.
type QuotationHandler struct {
	Svc  *services.QuotationService
	Shop config.ShopConfig
}

func NewQuotationHandler(svc *services.QuotationService, shop config.ShopConfig) *QuotationHandler {
	return &QuotationHandler{Svc: svc, Shop: shop}
}

// List: GET /quotations?limit=&page=
func (h *QuotationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	offset := 0
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			offset = (n - 1) * limit
		}
	}
	items, total, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		logError(r, "list quotations", err)
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_quotations", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total, "limit": limit, "offset": offset})
}

type createQuotationRequest struct {
	CustomerName  string                 `json:"customer_name"`
	QuotationDate string                 `json:"quotation_date"`
	Items         []services.LineRequest `json:"items"`
}

// Create: POST /quotations, JSON or form with parallel item_id[] / item_quantity[].
func (h *QuotationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in createQuotationRequest
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
			return
		}
		in.CustomerName = r.Form.Get("customer_name")
		in.QuotationDate = r.Form.Get("quotation_date")
		// Mismatched arrays leave Items empty; the assembler reports it.
		in.Items, _ = services.PairLines(formIDs(r, "item_id"), formInts(r, "item_quantity"))
	}

	req := services.QuotationRequest{CustomerName: in.CustomerName, Items: in.Items}
	if s := strings.TrimSpace(in.QuotationDate); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			req.InputErrors = append(req.InputErrors, services.ErrInvalidDate)
		} else {
			req.QuotationDate = d
		}
	}

	q, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", ve.Messages())
			return
		}
		logError(r, "create quotation", err)
		httpx.JSONError(w, http.StatusInternalServerError, "quotation_not_saved", []string{"error saving quotation, please try again"})
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"id":               q.ID,
		"quotation_number": q.Number,
		"total_amount":     q.TotalAmount.StringFixed(2),
	})
}

// View: GET /quotations/{id}
func (h *QuotationHandler) View(w http.ResponseWriter, r *http.Request) {
	v, ok := h.load(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"quotation": v, "shop": h.Shop})
}

// PDF: GET /quotations/{id}/pdf
func (h *QuotationHandler) PDF(w http.ResponseWriter, r *http.Request) {
	v, ok := h.load(w, r)
	if !ok {
		return
	}
	data, err := pdf.QuotationPDF(h.Shop, v)
	if err != nil {
		logError(r, "render quotation pdf", err)
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	httpx.Attachment(w, "application/pdf", v.Number+".pdf", data)
}

// SetStatus: POST /quotations/{id}/status with {"status": "Accepted"} or a status form field.
func (h *QuotationHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
	} else {
		body.Status = r.FormValue("status")
	}

	st, err := h.Svc.SetStatus(r.Context(), id, body.Status)
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_status", []string{err.Error()})
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case err != nil:
		logError(r, "set quotation status", err)
		httpx.JSONError(w, http.StatusInternalServerError, "status_update_failed", nil)
	default:
		httpx.JSON(w, http.StatusOK, map[string]any{"id": id, "status": st})
	}
}

func (h *QuotationHandler) load(w http.ResponseWriter, r *http.Request) (*services.QuotationView, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return nil, false
	}
	v, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return nil, false
		}
		logError(r, "load quotation", err)
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_quotation", nil)
		return nil, false
	}
	return v, true
}

// formIDs reads key[] (or key) values. Unparseable ids become 0, which
// never resolves to a product.
func formIDs(r *http.Request, key string) []uint {
	raw := formValues(r, key)
	out := make([]uint, len(raw))
	for i, s := range raw {
		if n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64); err == nil {
			out[i] = uint(n)
		}
	}
	return out
}

// formInts reads key[] (or key) values. Unparseable quantities become 0.
func formInts(r *http.Request, key string) []int {
	raw := formValues(r, key)
	out := make([]int, len(raw))
	for i, s := range raw {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			out[i] = n
		}
	}
	return out
}

func formValues(r *http.Request, key string) []string {
	if v, ok := r.Form[key+"[]"]; ok {
		return v
	}
	return r.Form[key]
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return 0, false
	}
	return uint(id), true
}

func logError(r *http.Request, op string, err error) {
	zap.L().Error(op,
		zap.String("request_id", httpx.RequestIDFromContext(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err))
}
