package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jaeminyoo/homepoint/internal/models"
)

// newTestDB opens an in-memory database limited to one connection so
// concurrent transactions in tests serialize the same way row locks do in
// Postgres.
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

func seedPartner(t *testing.T, db *gorm.DB, email string) models.Partner {
	t.Helper()

	partner := models.Partner{
		Email:        email,
		Password:     "x",
		BusinessName: "Cleaning Crew",
	}
	require.NoError(t, db.Create(&partner).Error)
	return partner
}

func seedProduct(t *testing.T, db *gorm.DB, id, productType string, supplyKRW int) models.Product {
	t.Helper()

	product := models.Product{
		ID:              id,
		Name:            id,
		Type:            productType,
		AmountSupplyKRW: supplyKRW,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedReadyOrder(t *testing.T, db *gorm.DB, partner models.Partner, product models.Product) models.PaymentOrder {
	t.Helper()

	order := models.PaymentOrder{
		AccountID: partner.ID,
		ProductID: product.ID,
		Amount:    product.AmountSupplyKRW,
		Status:    models.OrderStatusReady,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}
