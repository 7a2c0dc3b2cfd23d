package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajat290/obeyyo-api/models"
	"github.com/rajat290/obeyyo-api/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.Category{},
		&models.Brand{},
		&models.Cart{},
		&models.CartItem{},
		&models.Coupon{},
		&models.CouponRedemption{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

type checkoutFixture struct {
	user    models.User
	address models.Address
	product models.Product
	coupon  models.Coupon
	cart    models.Cart
}

// seedCheckout builds a user with an address, a product with stock, an
// unrestricted fixed-discount coupon and a cart holding two units with the
// coupon applied.
func seedCheckout(t *testing.T, db *gorm.DB) checkoutFixture {
	t.Helper()

	f := checkoutFixture{
		user:    models.User{ID: "u-1", Email: "u1@example.com"},
		product: models.Product{Name: "Sneakers", Price: 600, Stock: 10, IsActive: true},
		coupon: models.Coupon{
			Code:          "SAVE100",
			DiscountType:  models.DiscountTypeFixed,
			DiscountValue: 100,
			ExpiryDate:    time.Now().Add(24 * time.Hour),
			Active:        true,
		},
	}
	require.NoError(t, db.Create(&f.user).Error)
	f.address = models.Address{UserID: f.user.ID, Line1: "1 Main St", City: "Pune", Country: "IN"}
	require.NoError(t, db.Create(&f.address).Error)
	require.NoError(t, db.Create(&f.product).Error)
	require.NoError(t, db.Create(&f.coupon).Error)

	f.cart = models.Cart{UserID: f.user.ID, CouponCode: f.coupon.Code}
	require.NoError(t, db.Create(&f.cart).Error)
	item := models.CartItem{
		CartID:    f.cart.CartID,
		ProductID: f.product.ID,
		Size:      "9",
		Color:     "Black",
		UnitPrice: f.product.Price,
		Quantity:  2,
		AddedAt:   time.Now(),
	}
	require.NoError(t, db.Create(&item).Error)
	return f
}

// Placement must atomically snapshot the cart, reserve stock, count the coupon
// redemption and clear the cart.
func TestPlaceOrderAtomicity(t *testing.T) {
	db := setupTestDB(t)
	f := seedCheckout(t, db)

	order, err := PlaceOrder(db, f.user.ID, &validation.OrderCreateRequest{
		ShippingAddressID: f.address.ID,
		PaymentMethod:     string(models.PaymentMethodCOD),
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	// subtotal 1200, fixed 100 off, free shipping, 18% tax on the subtotal
	assert.InDelta(t, 1200.0, order.Subtotal, 0.001)
	assert.InDelta(t, 100.0, order.Discount, 0.001)
	assert.InDelta(t, 0.0, order.ShippingCost, 0.001)
	assert.InDelta(t, 216.0, order.Tax, 0.001)
	assert.InDelta(t, 1316.0, order.TotalAmount, 0.001)

	var product models.Product
	require.NoError(t, db.First(&product, f.product.ID).Error)
	assert.Equal(t, 8, product.Stock)

	var coupon models.Coupon
	require.NoError(t, db.First(&coupon, f.coupon.ID).Error)
	assert.Equal(t, 1, coupon.UsedCount)

	var redemptions int64
	require.NoError(t, db.Model(&models.CouponRedemption{}).
		Where("order_id = ?", order.ID).Count(&redemptions).Error)
	assert.EqualValues(t, 1, redemptions)

	var itemCount int64
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("cart_id = ?", f.cart.CartID).Count(&itemCount).Error)
	assert.EqualValues(t, 0, itemCount)
}

// An admin moving an order to cancelled through the status endpoint must
// restore the reserved stock and roll back the coupon redemption, exactly like
// a user-initiated cancel.
func TestAdminStatusCancelRestoresStockAndCoupon(t *testing.T) {
	db := setupTestDB(t)
	f := seedCheckout(t, db)

	order, err := PlaceOrder(db, f.user.ID, &validation.OrderCreateRequest{
		ShippingAddressID: f.address.ID,
		PaymentMethod:     string(models.PaymentMethodCOD),
	})
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/admin/orders/:orderID/status", UpdateOrderStatusHandler(db))

	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/admin/orders/%d/status", order.ID),
		strings.NewReader(`{"status": "cancelled"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusCancelled, got.Status)

	var product models.Product
	require.NoError(t, db.First(&product, f.product.ID).Error)
	assert.Equal(t, 10, product.Stock)

	var coupon models.Coupon
	require.NoError(t, db.First(&coupon, f.coupon.ID).Error)
	assert.Equal(t, 0, coupon.UsedCount)

	var redemptions int64
	require.NoError(t, db.Model(&models.CouponRedemption{}).
		Where("order_id = ?", order.ID).Count(&redemptions).Error)
	assert.EqualValues(t, 0, redemptions)
}

// A shipped order may not be cancelled through the admin status endpoint either.
func TestAdminStatusCancelAfterShippedRejected(t *testing.T) {
	db := setupTestDB(t)
	f := seedCheckout(t, db)

	order, err := PlaceOrder(db, f.user.ID, &validation.OrderCreateRequest{
		ShippingAddressID: f.address.ID,
		PaymentMethod:     string(models.PaymentMethodCOD),
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.OrderStatusShipped).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/admin/orders/:orderID/status", UpdateOrderStatusHandler(db))

	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/admin/orders/%d/status", order.ID),
		strings.NewReader(`{"status": "cancelled"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	var product models.Product
	require.NoError(t, db.First(&product, f.product.ID).Error)
	assert.Equal(t, 8, product.Stock) // still reserved
}

// Checkout against an address that does not exist, or belongs to someone else,
// must fail without touching stock or the cart.
func TestPlaceOrderUnknownAddress(t *testing.T) {
	db := setupTestDB(t)
	f := seedCheckout(t, db)

	_, err := PlaceOrder(db, f.user.ID, &validation.OrderCreateRequest{
		ShippingAddressID: 999999,
		PaymentMethod:     string(models.PaymentMethodCOD),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	var product models.Product
	require.NoError(t, db.First(&product, f.product.ID).Error)
	assert.Equal(t, 10, product.Stock)

	var itemCount int64
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("cart_id = ?", f.cart.CartID).Count(&itemCount).Error)
	assert.EqualValues(t, 1, itemCount)
}
