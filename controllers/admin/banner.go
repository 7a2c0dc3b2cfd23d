package adminController

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajat290/obeyyo-api/models"
	"github.com/rajat290/obeyyo-api/validation"
	"gorm.io/gorm"
)

// POST /admin/banners
func CreateBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.BannerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if fieldErrs := validation.ValidateBannerCreate(&req); len(fieldErrs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "validation failed",
				"code":   models.ErrCodeValidationFailed,
				"fields": fieldErrs,
			})
			return
		}

		banner := models.Banner{
			Title:     req.Title,
			ImageURL:  req.ImageURL,
			LinkURL:   req.LinkURL,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Active:    true,
		}
		if req.Active != nil {
			banner.Active = *req.Active
		}

		if err := db.Create(&banner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create banner"})
			return
		}
		c.JSON(http.StatusCreated, banner)
	}
}

// PUT /admin/banners/:id
func UpdateBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.BannerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if fieldErrs := validation.ValidateBannerUpdate(&req); len(fieldErrs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "validation failed",
				"code":   models.ErrCodeValidationFailed,
				"fields": fieldErrs,
			})
			return
		}

		var banner models.Banner
		if err := db.First(&banner, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found", "code": models.ErrCodeNotFound})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		if req.Title != "" {
			banner.Title = req.Title
		}
		if req.ImageURL != "" {
			banner.ImageURL = req.ImageURL
		}
		if req.LinkURL != "" {
			banner.LinkURL = req.LinkURL
		}
		if req.StartDate != nil {
			banner.StartDate = req.StartDate
		}
		if req.EndDate != nil {
			banner.EndDate = req.EndDate
		}
		if req.Active != nil {
			banner.Active = *req.Active
		}

		// cross-field rule re-checked on the merged result
		if banner.StartDate != nil && banner.EndDate != nil && !banner.EndDate.After(*banner.StartDate) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "validation failed",
				"code":   models.ErrCodeValidationFailed,
				"fields": []validation.FieldError{{Field: "end_date", Message: "end_date must be after start_date"}},
			})
			return
		}

		if err := db.Save(&banner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update banner"})
			return
		}
		c.JSON(http.StatusOK, banner)
	}
}

// GET /admin/banners
func GetBanners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banners []models.Banner
		if err := db.Find(&banners).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get banners"})
			return
		}
		c.JSON(http.StatusOK, banners)
	}
}

// GET /banners — public storefront listing, live banners only
func GetActiveBanners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banners []models.Banner
		if err := db.Where("active = ?", true).Find(&banners).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get banners"})
			return
		}
		now := time.Now()
		live := banners[:0]
		for i := range banners {
			if banners[i].Live(now) {
				live = append(live, banners[i])
			}
		}
		c.JSON(http.StatusOK, live)
	}
}

// DELETE /admin/banners/:id
func DeleteBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Banner{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete banner"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found", "code": models.ErrCodeNotFound})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Banner deleted"})
	}
}
