package config

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jaeminyoo/homepoint/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	AppEnv        string
	WebhookSecret string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		AppEnv:        os.Getenv("APP_ENV"),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),
	}

	// Unsigned webhooks are a dev-only convenience; production must
	// verify every delivery.
	if cfg.AppEnv == "production" && cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("WEBHOOK_SECRET is required when APP_ENV=production")
	}

	return cfg, nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&models.Partner{}, &models.Product{}, &models.PaymentOrder{}, &models.PointLedgerEntry{})
	if err != nil {
		return nil, err
	}

	seedProducts(db)

	return db, nil
}

func seedProducts(db *gorm.DB) {
	products := []models.Product{
		{ID: "points_10000", Name: "Point charge 10,000", Type: models.ProductTypePoints, AmountSupplyKRW: 10000},
		{ID: "points_30000", Name: "Point charge 30,000", Type: models.ProductTypePoints, AmountSupplyKRW: 30000},
		{ID: "points_50000", Name: "Point charge 50,000", Type: models.ProductTypePoints, AmountSupplyKRW: 50000},
		{ID: "points_100000", Name: "Point charge 100,000", Type: models.ProductTypePoints, AmountSupplyKRW: 100000},
		{ID: "partner_subscription", Name: "Partner subscription (30 days)", Type: models.ProductTypeSubscription, AmountSupplyKRW: 90000},
	}

	for _, product := range products {
		var existingProduct models.Product
		result := db.Where("id = ?", product.ID).First(&existingProduct)
		if result.Error != nil {
			db.Create(&product)
		}
	}
}
