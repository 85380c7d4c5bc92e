package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LedgerCredit = "credit"
	LedgerDebit  = "debit"
)

const (
	EntryTypeCreditCharge = "credit_charge"
	EntryTypeDebitQuote   = "debit_quote"
	EntryTypeCreditBonus  = "credit_bonus"
	EntryTypeRefund       = "refund"
)

// PointLedgerEntry is append-only: no updates, no deletes, no soft-delete
// column. An account's balance is the sum of its signed entries;
// BalanceAfter is a running snapshot captured at write time for display.
type PointLedgerEntry struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount         int64     `gorm:"not null"`
	Direction      string    `gorm:"not null"`
	Type           string    `gorm:"not null"`
	Reason         string
	RelatedOrderID *uuid.UUID `gorm:"type:uuid;index"`
	AmountPayKRW   *int
	BalanceAfter   int64 `gorm:"not null"`
	CreatedAt      time.Time
}

func (entry *PointLedgerEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return
}

// Delta is the signed effect of the entry on the balance.
func (entry *PointLedgerEntry) Delta() int64 {
	if entry.Direction == LedgerDebit {
		return -entry.Amount
	}
	return entry.Amount
}
