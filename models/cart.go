package models

import "time"

type Cart struct {
	CartID     uint       `gorm:"primaryKey" json:"cart_id"`
	UserID     string     `gorm:"uniqueIndex" json:"user_id"` // one cart per user
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CouponCode string     `json:"coupon_code,omitempty"`
	Subtotal   float64    `json:"subtotal"`
	Discount   float64    `json:"discount"`
	Shipping   float64    `json:"shipping"`
	Tax        float64    `json:"tax"`
	Total      float64    `json:"total"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"index" json:"cart_id"`
	ProductID uint      `json:"product_id"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
	UnitPrice float64   `json:"unit_price"` // price snapshot taken when the item was added
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// LineTotal is the item's contribution to the cart subtotal.
func (i *CartItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
