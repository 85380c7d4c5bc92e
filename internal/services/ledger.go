package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jaeminyoo/homepoint/internal/models"
)

// appendEntry writes one ledger entry inside the caller's transaction.
//
// The partner counter update comes first: the conditional UPDATE takes the
// partner row lock, which serializes concurrent appends for the same
// account, and for debits its balance guard rejects overdrafts atomically.
// BalanceAfter is then computed from the ledger itself (including the row
// just inserted), never from a read made before the lock was held.
func appendEntry(tx *gorm.DB, e models.PointLedgerEntry) (*models.PointLedgerEntry, error) {
	if e.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	counter := tx.Model(&models.Partner{}).Where("id = ?", e.AccountID)
	if e.Direction == models.LedgerDebit {
		counter = counter.Where("points_balance >= ?", e.Amount)
	}
	res := counter.UpdateColumn("points_balance", gorm.Expr("points_balance + ?", e.Delta()))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if e.Direction == models.LedgerDebit {
			var partner models.Partner
			if err := tx.First(&partner, "id = ?", e.AccountID).Error; err == nil {
				return nil, ErrInsufficientPoints
			}
		}
		return nil, gorm.ErrRecordNotFound
	}

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if err := tx.Create(&e).Error; err != nil {
		return nil, err
	}

	balance, err := balanceOf(tx, e.AccountID)
	if err != nil {
		return nil, err
	}
	e.BalanceAfter = balance
	if err := tx.Model(&models.PointLedgerEntry{}).Where("id = ?", e.ID).
		UpdateColumn("balance_after", balance).Error; err != nil {
		return nil, err
	}

	return &e, nil
}

func balanceOf(tx *gorm.DB, accountID uuid.UUID) (int64, error) {
	var balance int64
	err := tx.Model(&models.PointLedgerEntry{}).
		Where("account_id = ?", accountID).
		Select("COALESCE(SUM(CASE WHEN direction = ? THEN amount ELSE -amount END), 0)", models.LedgerCredit).
		Scan(&balance).Error
	return balance, err
}

// BalanceOf sums every ledger entry for the account. This is the
// authoritative balance; the partner counter is only a display cache.
func BalanceOf(db *gorm.DB, accountID uuid.UUID) (int64, error) {
	return balanceOf(db, accountID)
}

// DebitPoints consumes points for a quote. Fails with
// ErrInsufficientPoints rather than letting the balance go negative.
func DebitPoints(db *gorm.DB, accountID uuid.UUID, amount int64, reason string) (*models.PointLedgerEntry, error) {
	var entry *models.PointLedgerEntry
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		entry, txErr = appendEntry(tx, models.PointLedgerEntry{
			AccountID: accountID,
			Amount:    amount,
			Direction: models.LedgerDebit,
			Type:      models.EntryTypeDebitQuote,
			Reason:    reason,
		})
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// RecentEntries returns the newest ledger entries for the account.
func RecentEntries(db *gorm.DB, accountID uuid.UUID, limit int) ([]models.PointLedgerEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var entries []models.PointLedgerEntry
	err := db.Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
