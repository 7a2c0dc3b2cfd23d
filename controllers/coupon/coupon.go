package couponControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajat290/obeyyo-api/models"
	"github.com/rajat290/obeyyo-api/validation"
	"gorm.io/gorm"
)

func respondValidation(c *gin.Context, fieldErrs []validation.FieldError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":  "validation failed",
		"code":   models.ErrCodeValidationFailed,
		"fields": fieldErrs,
	})
}

// POST /admin/coupons
func CreateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.CouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		req.Code = strings.ToUpper(strings.TrimSpace(req.Code))

		if fieldErrs := validation.ValidateCouponCreate(&req, time.Now()); len(fieldErrs) > 0 {
			respondValidation(c, fieldErrs)
			return
		}

		coupon := models.Coupon{
			Code:                 req.Code,
			Description:          req.Description,
			DiscountType:         models.DiscountType(req.DiscountType),
			DiscountValue:        *req.DiscountValue,
			MaxDiscount:          req.MaxDiscount,
			MinOrderValue:        req.MinOrderValue,
			MaxOrderValue:        req.MaxOrderValue,
			UsageLimit:           req.UsageLimit,
			UsageLimitPerUser:    req.UsageLimitPerUser,
			ExpiryDate:           *req.ExpiryDate,
			ApplicableCategories: models.IDList(req.ApplicableCategories),
			ApplicableBrands:     models.IDList(req.ApplicableBrands),
			ApplicableProducts:   models.IDList(req.ApplicableProducts),
			ExcludedCategories:   models.IDList(req.ExcludedCategories),
			ExcludedBrands:       models.IDList(req.ExcludedBrands),
			ExcludedProducts:     models.IDList(req.ExcludedProducts),
			Active:               true,
		}
		if req.NewUsersOnly != nil {
			coupon.NewUsersOnly = *req.NewUsersOnly
		}
		if req.ExistingUsersOnly != nil {
			coupon.ExistingUsersOnly = *req.ExistingUsersOnly
		}
		if req.FirstOrderOnly != nil {
			coupon.FirstOrderOnly = *req.FirstOrderOnly
		}
		coupon.MinOrdersRequired = req.MinOrdersRequired
		if req.Active != nil {
			coupon.Active = *req.Active
		}

		if err := db.Create(&coupon).Error; err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "duplicate") ||
				strings.Contains(strings.ToLower(err.Error()), "unique") {
				c.JSON(http.StatusConflict, gin.H{"error": "coupon code already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create coupon"})
			return
		}

		c.JSON(http.StatusCreated, coupon)
	}
}

// PUT /admin/coupons/:id
func UpdateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if fieldErrs := validation.Run(validation.PositiveID("id", id)); len(fieldErrs) > 0 {
			respondValidation(c, fieldErrs)
			return
		}

		var req validation.CouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		req.Code = strings.ToUpper(strings.TrimSpace(req.Code))

		if fieldErrs := validation.ValidateCouponUpdate(&req, time.Now()); len(fieldErrs) > 0 {
			respondValidation(c, fieldErrs)
			return
		}

		var coupon models.Coupon
		if err := db.First(&coupon, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found", "code": models.ErrCodeNotFound})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		// apply only the supplied fields
		if req.Code != "" {
			coupon.Code = req.Code
		}
		if req.Description != "" {
			coupon.Description = req.Description
		}
		if req.DiscountType != "" {
			coupon.DiscountType = models.DiscountType(req.DiscountType)
		}
		if req.DiscountValue != nil {
			coupon.DiscountValue = *req.DiscountValue
		}
		if req.MaxDiscount != nil {
			coupon.MaxDiscount = req.MaxDiscount
		}
		if req.MinOrderValue != nil {
			coupon.MinOrderValue = req.MinOrderValue
		}
		if req.MaxOrderValue != nil {
			coupon.MaxOrderValue = req.MaxOrderValue
		}
		if req.UsageLimit != nil {
			coupon.UsageLimit = req.UsageLimit
		}
		if req.UsageLimitPerUser != nil {
			coupon.UsageLimitPerUser = req.UsageLimitPerUser
		}
		if req.ExpiryDate != nil {
			coupon.ExpiryDate = *req.ExpiryDate
		}
		if req.ApplicableCategories != nil {
			coupon.ApplicableCategories = models.IDList(req.ApplicableCategories)
		}
		if req.ApplicableBrands != nil {
			coupon.ApplicableBrands = models.IDList(req.ApplicableBrands)
		}
		if req.ApplicableProducts != nil {
			coupon.ApplicableProducts = models.IDList(req.ApplicableProducts)
		}
		if req.ExcludedCategories != nil {
			coupon.ExcludedCategories = models.IDList(req.ExcludedCategories)
		}
		if req.ExcludedBrands != nil {
			coupon.ExcludedBrands = models.IDList(req.ExcludedBrands)
		}
		if req.ExcludedProducts != nil {
			coupon.ExcludedProducts = models.IDList(req.ExcludedProducts)
		}
		if req.NewUsersOnly != nil {
			coupon.NewUsersOnly = *req.NewUsersOnly
		}
		if req.ExistingUsersOnly != nil {
			coupon.ExistingUsersOnly = *req.ExistingUsersOnly
		}
		if req.FirstOrderOnly != nil {
			coupon.FirstOrderOnly = *req.FirstOrderOnly
		}
		if req.MinOrdersRequired != nil {
			coupon.MinOrdersRequired = req.MinOrdersRequired
		}
		if req.Active != nil {
			coupon.Active = *req.Active
		}

		// the stored pair must stay consistent after a partial update
		if coupon.NewUsersOnly && coupon.ExistingUsersOnly {
			respondValidation(c, []validation.FieldError{{
				Field:   "new_users_only",
				Message: "new_users_only and existing_users_only cannot both be set",
			}})
			return
		}

		if err := db.Save(&coupon).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update coupon"})
			return
		}
		c.JSON(http.StatusOK, coupon)
	}
}

// GET /admin/coupons
func GetAllCoupons(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var couponsList []models.Coupon
		if err := db.Order("created_at DESC").Find(&couponsList).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
			return
		}
		c.JSON(http.StatusOK, couponsList)
	}
}

// GET /admin/coupons/:id
func GetCouponByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupon models.Coupon
		if err := db.First(&coupon, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found", "code": models.ErrCodeNotFound})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		c.JSON(http.StatusOK, coupon)
	}
}

// DELETE /admin/coupons/:id
func DeleteCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Coupon{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete coupon"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found", "code": models.ErrCodeNotFound})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted"})
	}
}
