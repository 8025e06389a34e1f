package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// QuotationStatus represents the status of a quotation.
type QuotationStatus string

const (
	QuotationStatusIssued   QuotationStatus = "Issued"
	QuotationStatusDraft    QuotationStatus = "Draft"
	QuotationStatusAccepted QuotationStatus = "Accepted"
	QuotationStatusRejected QuotationStatus = "Rejected"
)

// ParseQuotationStatus matches s case-insensitively against the known statuses.
func ParseQuotationStatus(s string) (QuotationStatus, bool) {
	for _, st := range []QuotationStatus{
		QuotationStatusIssued,
		QuotationStatusDraft,
		QuotationStatusAccepted,
		QuotationStatusRejected,
	} {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}

// Quotation is an issued price offer. Everything except Status is frozen
// once the row is committed.
type Quotation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Number        string          `gorm:"column:quotation_number;size:64;uniqueIndex;not null" json:"quotation_number"`
	QuotationDate time.Time       `gorm:"type:date;not null" json:"quotation_date"`
	CustomerName  string          `gorm:"size:255;not null" json:"customer_name"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	Status        QuotationStatus `gorm:"size:20;not null;default:'Issued'" json:"status"`

	Items []QuotationItem `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// QuotationItem is one priced line of a quotation. Product fields are
// snapshots; ProductID is kept for reference only and may point to a
// product that no longer exists.
type QuotationItem struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	QuotationID uint `gorm:"index;not null" json:"quotation_id"`
	ProductID   uint `gorm:"index;not null" json:"product_id"`

	ProductName  string `gorm:"size:255;not null" json:"product_name"`
	ProductModel string `gorm:"size:255" json:"product_model"`
	ProductBrand string `gorm:"size:255" json:"product_brand,omitempty"`

	Quantity         int             `gorm:"not null" json:"quantity"`
	UnitPriceAtQuote decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price_at_quote"`
	GSTRateAtQuote   decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"gst_rate_at_quote"`
	ItemTotal        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"item_total"`

	// Position keeps the submission order.
	Position int `gorm:"default:0" json:"position"`
}
