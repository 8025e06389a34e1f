package db

import (
	"errors"
	"fmt"

	"github.com/diewo77/go-quotations/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedProduct struct {
	name, model, brand, category string
	price, gst                   string
}

var baseCatalog = []seedProduct{
	{"Ceiling Fan", "Efficiencia Neo 1200mm", "Havells", "Fans", "2450.00", "18"},
	{"LED Bulb", "Stellar Bright 9W B22", "Philips", "Lighting", "99.00", "12"},
	{"LED Batten", "T5 20W 4ft", "Syska", "Lighting", "349.00", "12"},
	{"Modular Switch", "Roma 6A 1-Way", "Anchor", "Switches", "45.00", "18"},
	{"MCB", "DX3 32A SP C-Curve", "Legrand", "Protection", "289.00", "18"},
	{"FR PVC Wire", "1.5 sq mm 90m", "Polycab", "Wires", "1390.00", "18"},
}

// Seed inserts the base electrical catalog. Products already present (same
// name and model) are left untouched, so running it twice is harmless.
func Seed(conn *gorm.DB) error {
	created := 0
	for _, sp := range baseCatalog {
		var existing models.Product
		err := conn.Where("name = ? AND model = ?", sp.name, sp.model).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("seed lookup %s: %w", sp.name, err)
		}
		p := models.Product{
			Name:      sp.name,
			Model:     sp.model,
			Brand:     sp.brand,
			Category:  sp.category,
			UnitPrice: decimal.RequireFromString(sp.price),
			GSTRate:   decimal.RequireFromString(sp.gst),
		}
		if err := conn.Create(&p).Error; err != nil {
			return fmt.Errorf("seed %s: %w", sp.name, err)
		}
		created++
	}
	zap.L().Info("catalog seeded", zap.Int("created", created))
	return nil
}
