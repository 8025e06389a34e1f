package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diewo77/go-quotations/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LineView is a stored line with its prices recomputed from the snapshot.
type LineView struct {
	ProductID    uint            `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductModel string          `json:"product_model"`
	ProductBrand string          `json:"product_brand,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	StoredTotal  decimal.Decimal `json:"item_total"`
}

// QuotationView is an issued quotation ready for display or printing.
type QuotationView struct {
	ID            uint                   `json:"id"`
	Number        string                 `json:"quotation_number"`
	QuotationDate time.Time              `json:"quotation_date"`
	CustomerName  string                 `json:"customer_name"`
	Status        models.QuotationStatus `json:"status"`
	CreatedAt     time.Time              `json:"created_at"`
	Items         []LineView             `json:"items"`
	Subtotal      decimal.Decimal        `json:"subtotal"`
	Tax           decimal.Decimal        `json:"tax"`
	Total         decimal.Decimal        `json:"total"`
	TotalAmount   decimal.Decimal        `json:"total_amount"`
	// Reconciled is true when every recomputed amount matches what was stored.
	Reconciled bool `json:"reconciled"`
}

// QuotationReader rebuilds quotations from stored rows only. It never reads
// the catalog.
type QuotationReader struct {
	DB      *gorm.DB
	Timeout time.Duration
}

func NewQuotationReader(db *gorm.DB) *QuotationReader {
	return &QuotationReader{DB: db, Timeout: DefaultStoreTimeout}
}

func (r *QuotationReader) Load(ctx context.Context, id uint) (*QuotationView, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	var q models.Quotation
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc").Order("id asc") }).
		First(&q, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "load quotation", Err: err}
	}
	return BuildView(&q)
}

// BuildView recomputes line and grand totals from q's snapshots.
func BuildView(q *models.Quotation) (*QuotationView, error) {
	v := &QuotationView{
		ID:            q.ID,
		Number:        q.Number,
		QuotationDate: q.QuotationDate,
		CustomerName:  q.CustomerName,
		Status:        q.Status,
		CreatedAt:     q.CreatedAt,
		Items:         make([]LineView, 0, len(q.Items)),
		TotalAmount:   q.TotalAmount,
		Reconciled:    true,
	}
	var totals Totals
	for i, it := range q.Items {
		p, err := Price(it.UnitPriceAtQuote, it.GSTRateAtQuote, it.Quantity)
		if err != nil {
			return nil, fmt.Errorf("quotation %s line %d: %w", q.Number, i+1, err)
		}
		totals.Add(p)
		if !p.Total.Equal(it.ItemTotal) {
			v.Reconciled = false
		}
		v.Items = append(v.Items, LineView{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductModel: it.ProductModel,
			ProductBrand: it.ProductBrand,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPriceAtQuote,
			GSTRate:      it.GSTRateAtQuote,
			Subtotal:     p.Subtotal,
			Tax:          p.Tax,
			Total:        p.Total,
			StoredTotal:  it.ItemTotal,
		})
	}
	v.Subtotal = totals.Subtotal
	v.Tax = totals.Tax
	v.Total = totals.Total
	if !v.Total.Equal(q.TotalAmount) {
		v.Reconciled = false
	}
	if !v.Reconciled {
		zap.L().Warn("quotation totals do not reconcile",
			zap.Uint("id", q.ID),
			zap.String("number", q.Number),
			zap.String("stored", q.TotalAmount.StringFixed(2)),
			zap.String("recomputed", v.Total.StringFixed(2)))
	}
	return v, nil
}

// List returns a page of quotation headers, newest first, and the total count.
func (r *QuotationReader) List(ctx context.Context, limit, offset int) ([]models.Quotation, int64, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	db := r.DB.WithContext(ctx).Model(&models.Quotation{})
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, &PersistenceError{Op: "count quotations", Err: err}
	}
	var out []models.Quotation
	if err := r.DB.WithContext(ctx).
		Order("created_at desc").Order("id desc").
		Limit(limit).Offset(offset).
		Find(&out).Error; err != nil {
		return nil, 0, &PersistenceError{Op: "list quotations", Err: err}
	}
	return out, total, nil
}
