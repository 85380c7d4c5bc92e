package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusReady  = "READY"
	OrderStatusPaid   = "PAID"
	OrderStatusFailed = "FAILED"
	// Reserved. No flow in this service produces it yet.
	OrderStatusCancelled = "CANCELLED"
)

// PaymentOrder tracks one purchase attempt. Status only ever moves
// READY -> PAID or READY -> FAILED, and only through the finalizer.
// Orders are never deleted.
type PaymentOrder struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID       string    `gorm:"not null"`
	Amount          int       `gorm:"not null"` // supply (pre-VAT) KRW, immutable
	Status          string    `gorm:"not null;default:'READY';index"`
	GatewayProvider *string
	GatewayTxID     *string
	StatusDetail    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (order *PaymentOrder) BeforeCreate(tx *gorm.DB) (err error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return
}

func (order *PaymentOrder) Terminal() bool {
	switch order.Status {
	case OrderStatusPaid, OrderStatusFailed, OrderStatusCancelled:
		return true
	}
	return false
}
