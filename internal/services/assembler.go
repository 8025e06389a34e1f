package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LineRequest is one requested line: a product and how many of it.
type LineRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// QuotationRequest is the raw submission before validation.
type QuotationRequest struct {
	CustomerName  string        `json:"customer_name"`
	QuotationDate time.Time     `json:"quotation_date"`
	Items         []LineRequest `json:"items"`

	// InputErrors are problems found while decoding the submission. They
	// are reported after the customer name check, with everything else.
	InputErrors []error `json:"-"`
}

// DraftLine is a validated, priced line with its product snapshot.
type DraftLine struct {
	ProductID    uint
	ProductName  string
	ProductModel string
	ProductBrand string
	Quantity     int
	UnitPrice    decimal.Decimal
	GSTRate      decimal.Decimal
	Price        LinePrice
}

// QuotationDraft is a fully validated quotation ready to be committed.
type QuotationDraft struct {
	CustomerName  string
	QuotationDate time.Time
	Items         []DraftLine
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	TotalAmount   decimal.Decimal
}

// PairLines zips the parallel id/quantity lists a form submits into ordered
// lines. Lists of different length are rejected with ErrNoLineItems.
func PairLines(productIDs []uint, quantities []int) ([]LineRequest, error) {
	if len(productIDs) != len(quantities) {
		return nil, ErrNoLineItems
	}
	lines := make([]LineRequest, len(productIDs))
	for i := range productIDs {
		lines[i] = LineRequest{ProductID: productIDs[i], Quantity: quantities[i]}
	}
	return lines, nil
}

// Assembler validates a request against the catalog and prices every line.
type Assembler struct {
	Catalog Catalog
	Now     func() time.Time
}

func NewAssembler(catalog Catalog) *Assembler {
	return &Assembler{Catalog: catalog, Now: time.Now}
}

// Assemble returns a draft only when every check passes. Otherwise it
// returns a *ValidationError listing all problems found, header first and
// then lines in submission order.
func (a *Assembler) Assemble(ctx context.Context, req QuotationRequest) (*QuotationDraft, error) {
	var problems []error

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		problems = append(problems, ErrEmptyCustomerName)
	}
	problems = append(problems, req.InputErrors...)
	if len(req.Items) == 0 {
		problems = append(problems, ErrNoLineItems)
		return nil, &ValidationError{Problems: problems}
	}

	draft := &QuotationDraft{
		CustomerName:  name,
		QuotationDate: a.quotationDate(req.QuotationDate),
		Items:         make([]DraftLine, 0, len(req.Items)),
	}
	var totals Totals
	for i, line := range req.Items {
		n := i + 1
		if line.Quantity <= 0 {
			problems = append(problems, &LineError{Line: n, ProductID: line.ProductID, Err: ErrInvalidQuantity})
			continue
		}
		p, err := a.Catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			if !errors.Is(err, ErrProductNotFound) {
				return nil, &PersistenceError{Op: "catalog lookup", Err: err}
			}
			problems = append(problems, &LineError{Line: n, ProductID: line.ProductID, Err: ErrProductNotFound})
			continue
		}
		price, err := Price(p.UnitPrice, p.GSTRate, line.Quantity)
		if err != nil {
			problems = append(problems, &LineError{Line: n, ProductID: line.ProductID, Err: err})
			continue
		}
		totals.Add(price)
		draft.Items = append(draft.Items, DraftLine{
			ProductID:    p.ID,
			ProductName:  p.Name,
			ProductModel: p.Model,
			ProductBrand: p.Brand,
			Quantity:     line.Quantity,
			UnitPrice:    p.UnitPrice,
			GSTRate:      p.GSTRate,
			Price:        price,
		})
	}

	if len(problems) > 0 {
		zap.L().Debug("quotation rejected", zap.Int("problems", len(problems)))
		return nil, &ValidationError{Problems: problems}
	}

	draft.Subtotal = totals.Subtotal
	draft.Tax = totals.Tax
	draft.TotalAmount = totals.Total
	return draft, nil
}

func (a *Assembler) quotationDate(d time.Time) time.Time {
	if d.IsZero() {
		now := time.Now
		if a.Now != nil {
			now = a.Now
		}
		d = now()
	}
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
