package handlers

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jaeminyoo/homepoint/internal/middleware"
	"github.com/jaeminyoo/homepoint/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Partner{},
		&models.Product{},
		&models.PaymentOrder{},
		&models.PointLedgerEntry{},
	))
	return db
}

func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))

	r.POST("/v1/webhooks/payment", PaymentWebhook)

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.POST("/orders", CreateOrder)
		protected.GET("/orders/:orderId", GetOrder)
		protected.POST("/orders/:orderId/session", CreateSession)
		protected.POST("/orders/:orderId/confirm", ConfirmPayment)
		protected.GET("/points/balance", GetBalance)
	}
	return r
}

func seedTestOrder(t *testing.T, db *gorm.DB, email string) (models.Partner, models.PaymentOrder) {
	t.Helper()

	partner := models.Partner{Email: email, Password: "x", BusinessName: "Cleaning Crew"}
	require.NoError(t, db.Create(&partner).Error)

	product := models.Product{ID: "points_10000", Name: "points_10000", Type: models.ProductTypePoints, AmountSupplyKRW: 10000}
	if err := db.First(&models.Product{}, "id = ?", product.ID).Error; err != nil {
		require.NoError(t, db.Create(&product).Error)
	}

	order := models.PaymentOrder{
		AccountID: partner.ID,
		ProductID: product.ID,
		Amount:    product.AmountSupplyKRW,
		Status:    models.OrderStatusReady,
	}
	require.NoError(t, db.Create(&order).Error)
	return partner, order
}

func bearerToken(t *testing.T, secret string, partner models.Partner) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": partner.ID.String(),
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return "Bearer " + signed
}
