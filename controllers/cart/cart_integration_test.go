package cartControllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajat290/obeyyo-api/models"
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

// Two first-ever mutations for the same user race on creating the cart row.
// Both must succeed and end up merged into one cart line.
func TestAddCartItemConcurrentFirstMutation(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{ID: "u-1", Email: "u1@example.com"}
	require.NoError(t, db.Create(&user).Error)
	product := models.Product{Name: "Tee", Price: 499, Stock: 20, IsActive: true}
	require.NoError(t, db.Create(&product).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/user/cart/items", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		AddCartItem(db)(c)
	})

	body := fmt.Sprintf(`{"product_id": %d, "size": "M", "color": "Black", "quantity": 1}`, product.ID)

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/user/cart/items", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])

	var carts []models.Cart
	require.NoError(t, db.Find(&carts).Error)
	require.Len(t, carts, 1)

	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", carts[0].CartID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 998.0, carts[0].Subtotal, 0.001)
}
