package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ProductTypePoints       = "points"
	ProductTypeSubscription = "subscription"
)

// Product is a fixed catalog entry. AmountSupplyKRW is the pre-VAT price;
// the billing calculator derives the pay amount and point yield from it.
type Product struct {
	ID              string `gorm:"primary_key"`
	Name            string `gorm:"not null"`
	Type            string `gorm:"not null;default:'points'"`
	AmountSupplyKRW int    `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
