package models

import (
	"time"

	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

type Coupon struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Code          string       `gorm:"uniqueIndex;not null" json:"code"` // uppercase alphanumeric, 3-20 chars
	Description   string       `json:"description"`
	DiscountType  DiscountType `gorm:"type:VARCHAR(20)" json:"discount_type"`
	DiscountValue float64      `json:"discount_value"` // percent when type=percentage, amount when type=fixed
	MaxDiscount   *float64     `json:"max_discount,omitempty"`
	MinOrderValue *float64     `json:"min_order_value,omitempty"`
	MaxOrderValue *float64     `json:"max_order_value,omitempty"`

	UsageLimit        *int `json:"usage_limit,omitempty"`
	UsageLimitPerUser *int `json:"usage_limit_per_user,omitempty"`
	UsedCount         int  `json:"used_count"`

	ExpiryDate time.Time `json:"expiry_date"`

	// Scoping: allow-lists grant, deny-lists take precedence.
	ApplicableCategories IDList `gorm:"type:text" json:"applicable_categories"`
	ApplicableBrands     IDList `gorm:"type:text" json:"applicable_brands"`
	ApplicableProducts   IDList `gorm:"type:text" json:"applicable_products"`
	ExcludedCategories   IDList `gorm:"type:text" json:"excluded_categories"`
	ExcludedBrands       IDList `gorm:"type:text" json:"excluded_brands"`
	ExcludedProducts     IDList `gorm:"type:text" json:"excluded_products"`

	// User restrictions. newUsersOnly and existingUsersOnly are mutually exclusive
	// and rejected at validation time.
	NewUsersOnly      bool `json:"new_users_only"`
	ExistingUsersOnly bool `json:"existing_users_only"`
	FirstOrderOnly    bool `json:"first_order_only"`
	MinOrdersRequired *int `json:"min_orders_required,omitempty"`

	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// CouponRedemption records one successful use of a coupon by a user, written in the
// order-placement transaction and removed again if that order is cancelled.
type CouponRedemption struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CouponID   uint      `gorm:"index" json:"coupon_id"`
	UserID     string    `gorm:"index" json:"user_id"`
	OrderID    uint      `gorm:"index" json:"order_id"`
	RedeemedAt time.Time `json:"redeemed_at"`
}
