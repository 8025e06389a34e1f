// Package pdf renders printable quotations.
package pdf

import (
	"fmt"
	"strconv"

	"github.com/diewo77/go-quotations/internal/config"
	"github.com/diewo77/go-quotations/internal/services"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	mconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

var (
	small  = props.Text{Size: 8}
	right  = props.Text{Size: 8, Align: align.Right}
	header = props.Text{Size: 8, Style: fontstyle.Bold}
	hright = props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
)

// QuotationPDF renders v with the shop details on top. Only the stored
// snapshot values in v are printed.
func QuotationPDF(shop config.ShopConfig, v *services.QuotationView) ([]byte, error) {
	cfg := mconfig.NewBuilder().
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		Build()
	m := maroto.New(cfg)

	m.AddRows(text.NewRow(10, shop.Name, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}))
	if shop.Address != "" {
		m.AddRows(text.NewRow(5, shop.Address, props.Text{Size: 9, Align: align.Center}))
	}
	if contact := contactLine(shop); contact != "" {
		m.AddRows(text.NewRow(5, contact, props.Text{Size: 9, Align: align.Center}))
	}
	if shop.GSTIN != "" {
		m.AddRows(text.NewRow(5, "GSTIN: "+shop.GSTIN, props.Text{Size: 9, Align: align.Center}))
	}
	m.AddRows(line.NewRow(4))

	m.AddRows(text.NewRow(9, "QUOTATION", props.Text{Size: 13, Style: fontstyle.Bold, Align: align.Center}))
	m.AddRow(6,
		text.NewCol(6, "Quotation No: "+v.Number, props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(6, "Date: "+v.QuotationDate.Format("02-01-2006"), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(6, "Customer: "+v.CustomerName, props.Text{Size: 9}),
		text.NewCol(6, "Status: "+string(v.Status), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRows(line.NewRow(4))

	m.AddRow(7,
		text.NewCol(1, "#", header),
		text.NewCol(4, "Product", header),
		text.NewCol(1, "Qty", hright),
		text.NewCol(2, "Unit Price", hright),
		text.NewCol(1, "GST %", hright),
		text.NewCol(3, "Total", hright),
	)
	rows := make([]core.Row, 0, len(v.Items))
	for i, it := range v.Items {
		rows = append(rows, lineRow(i+1, it))
	}
	m.AddRows(rows...)
	m.AddRows(line.NewRow(4))

	m.AddRow(6, text.NewCol(9, "Subtotal (Excl. GST)", right), text.NewCol(3, money(v.Subtotal), right))
	m.AddRow(6, text.NewCol(9, "Total GST Amount", right), text.NewCol(3, money(v.Tax), right))
	m.AddRow(7,
		text.NewCol(9, "Grand Total (Incl. GST)", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(3, money(v.TotalAmount), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)

	m.AddRows(text.NewRow(14, "Prices are valid as quoted on the date above.", props.Text{Top: 8, Size: 8, Style: fontstyle.Italic}))
	m.AddRows(text.NewRow(16, "For "+shop.Name, props.Text{Top: 6, Size: 9, Align: align.Right}))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate quotation %s: %w", v.Number, err)
	}
	return doc.GetBytes(), nil
}

func lineRow(n int, it services.LineView) core.Row {
	product := it.ProductName
	if it.ProductModel != "" {
		product += " (" + it.ProductModel + ")"
	}
	if it.ProductBrand != "" {
		product += " - " + it.ProductBrand
	}
	return row.New(6).Add(
		text.NewCol(1, strconv.Itoa(n), small),
		text.NewCol(4, product, small),
		text.NewCol(1, strconv.Itoa(it.Quantity), right),
		text.NewCol(2, money(it.UnitPrice), right),
		text.NewCol(1, it.GSTRate.StringFixed(2), right),
		text.NewCol(3, money(it.Total), right),
	)
}

func contactLine(shop config.ShopConfig) string {
	switch {
	case shop.Phone != "" && shop.Email != "":
		return "Phone: " + shop.Phone + " | Email: " + shop.Email
	case shop.Phone != "":
		return "Phone: " + shop.Phone
	case shop.Email != "":
		return "Email: " + shop.Email
	}
	return ""
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }
