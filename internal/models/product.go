package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog entry. The quotation workflow only reads it.
type Product struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `gorm:"size:255;not null;index:idx_products_name_model,priority:1" json:"name"`
	Model    string `gorm:"size:255;not null;index:idx_products_name_model,priority:2" json:"model"`
	Brand    string `gorm:"size:255" json:"brand,omitempty"`
	Category string `gorm:"size:100" json:"category,omitempty"`

	// GSTRate is a percentage in [0, 100], e.g. 18 for 18%.
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	GSTRate   decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"gst_rate"`

	ImagePath string `gorm:"size:500" json:"image_path,omitempty"`
}
