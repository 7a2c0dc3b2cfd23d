package models

import (
	"time"

	"gorm.io/gorm"
)

// Default variant options used when a product does not declare its own.
var (
	DefaultSizes  = []string{"S", "M", "L", "XL"}
	DefaultColors = []string{"Black", "White"}
)

type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null" json:"price"` // selling price, snapshot into carts
	MRP         float64        `json:"mrp"`
	Image       string         `json:"image"`
	CategoryID  uint           `gorm:"index" json:"category_id"`
	Category    Category       `json:"category"`
	BrandID     uint           `gorm:"index" json:"brand_id"`
	Brand       Brand          `json:"brand"`
	Sizes       StringList     `gorm:"type:text" json:"sizes"`
	Colors      StringList     `gorm:"type:text" json:"colors"`
	Stock       int            `json:"stock"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// VariantSizes returns the product's size options, falling back to the defaults.
func (p *Product) VariantSizes() []string {
	if len(p.Sizes) > 0 {
		return p.Sizes
	}
	return DefaultSizes
}

// VariantColors returns the product's color options, falling back to the defaults.
func (p *Product) VariantColors() []string {
	if len(p.Colors) > 0 {
		return p.Colors
	}
	return DefaultColors
}
