package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	hundred    = decimal.NewFromInt(100)
	maxGSTRate = hundred
)

// LinePrice is the priced breakdown of one quotation line.
type LinePrice struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Price computes subtotal, GST and tax-inclusive total for quantity units
// at unitPrice with gstRate percent. The total is rounded to the cent once,
// from the unrounded amount; Tax is whatever makes Subtotal+Tax equal it.
func Price(unitPrice, gstRate decimal.Decimal, quantity int) (LinePrice, error) {
	if quantity < 1 {
		return LinePrice{}, fmt.Errorf("%w: quantity %d is below 1", ErrInvalidLineItem, quantity)
	}
	if unitPrice.IsNegative() {
		return LinePrice{}, fmt.Errorf("%w: unit price %s is negative", ErrInvalidLineItem, unitPrice)
	}
	if gstRate.IsNegative() || gstRate.GreaterThan(maxGSTRate) {
		return LinePrice{}, fmt.Errorf("%w: gst rate %s is outside 0-100", ErrInvalidLineItem, gstRate)
	}

	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	total := gross.Mul(hundred.Add(gstRate)).Div(hundred).Round(2)
	subtotal := gross.Round(2)
	return LinePrice{
		Subtotal: subtotal,
		Tax:      total.Sub(subtotal),
		Total:    total,
	}, nil
}

// Totals accumulates line prices into quotation-level sums.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Add folds one line into the running totals.
func (t *Totals) Add(p LinePrice) {
	t.Subtotal = t.Subtotal.Add(p.Subtotal)
	t.Tax = t.Tax.Add(p.Tax)
	t.Total = t.Total.Add(p.Total)
}
