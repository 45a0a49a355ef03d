package models

import "gorm.io/gorm"

// Stock status labels derived from the stock count.
const (
	StockOut = "Out of Stock"
	StockLow = "Low Stock"
	StockIn  = "In Stock"
)

// lowStockThreshold is the highest stock count still labelled "Low Stock".
const lowStockThreshold = 5

// Product is a handcrafted item listed by an artisan.
// Rating is denormalised: the review service recomputes it whenever a
// review is added or removed.
type Product struct {
	Model
	Title       string  `gorm:"size:200;not null;index" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"size:100;index" json:"category"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	ImageURL    string  `gorm:"size:500" json:"image_url,omitempty"`
	Rating      float64 `gorm:"not null;default:0" json:"rating"` // mean of review ratings, 1 decimal
	ArtisanID   uint    `gorm:"not null;index" json:"artisan_id"`

	// Derived, never stored.
	StockStatus string `gorm:"-" json:"stock_status"`
}

// StockStatusFor maps a stock count to its display label.
func StockStatusFor(stock int) string {
	switch {
	case stock <= 0:
		return StockOut
	case stock <= lowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}

// AfterFind fills the derived stock label on every load.
func (p *Product) AfterFind(_ *gorm.DB) error {
	p.StockStatus = StockStatusFor(p.Stock)
	return nil
}

// AfterSave keeps the label current on create and update.
func (p *Product) AfterSave(_ *gorm.DB) error {
	p.StockStatus = StockStatusFor(p.Stock)
	return nil
}
