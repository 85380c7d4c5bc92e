package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jaeminyoo/homepoint/internal/models"
)

func creditForTest(t *testing.T, db *gorm.DB, partner models.Partner, amount int64) {
	t.Helper()
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		_, err := appendEntry(tx, models.PointLedgerEntry{
			AccountID: partner.ID,
			Amount:    amount,
			Direction: models.LedgerCredit,
			Type:      models.EntryTypeCreditCharge,
			Reason:    "test credit",
		})
		return err
	}))
}

func TestAppendRejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	partner := seedPartner(t, db, "p1@example.com")

	for _, amount := range []int64{0, -1, -100} {
		err := db.Transaction(func(tx *gorm.DB) error {
			_, txErr := appendEntry(tx, models.PointLedgerEntry{
				AccountID: partner.ID,
				Amount:    amount,
				Direction: models.LedgerCredit,
				Type:      models.EntryTypeCreditCharge,
			})
			return txErr
		})
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %d", amount)
	}
}

func TestBalanceOfSumsSignedEntries(t *testing.T) {
	db := newTestDB(t)
	partner := seedPartner(t, db, "p1@example.com")

	creditForTest(t, db, partner, 500)
	creditForTest(t, db, partner, 250)

	_, err := DebitPoints(db, partner.ID, 120, "quote #1")
	require.NoError(t, err)

	balance, err := BalanceOf(db, partner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(630), balance)
}

func TestBalanceOfEmptyLedger(t *testing.T) {
	db := newTestDB(t)
	partner := seedPartner(t, db, "p1@example.com")

	balance, err := BalanceOf(db, partner.ID)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestDebitRejectsOverdraft(t *testing.T) {
	db := newTestDB(t)
	partner := seedPartner(t, db, "p1@example.com")

	creditForTest(t, db, partner, 100)

	_, err := DebitPoints(db, partner.ID, 101, "too much")
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	// Failed debit leaves no trace.
	balance, err := BalanceOf(db, partner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)

	entry, err := DebitPoints(db, partner.ID, 100, "exact")
	require.NoError(t, err)
	assert.Equal(t, int64(0), entry.BalanceAfter)
}

func TestConcurrentAppendsLoseNoUpdates(t *testing.T) {
	db := newTestDB(t)
	partner := seedPartner(t, db, "p1@example.com")

	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = db.Transaction(func(tx *gorm.DB) error {
				_, err := appendEntry(tx, models.PointLedgerEntry{
					AccountID: partner.ID,
					Amount:    10,
					Direction: models.LedgerCredit,
					Type:      models.EntryTypeCreditCharge,
					Reason:    fmt.Sprintf("worker %d", i),
				})
				return err
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}

	balance, err := BalanceOf(db, partner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(workers*10), balance)

	// The display counter reconciles with the authoritative sum.
	var got models.Partner
	require.NoError(t, db.First(&got, "id = ?", partner.ID).Error)
	assert.Equal(t, balance, got.PointsBalance)
}

func TestRecentEntries(t *testing.T) {
	db := newTestDB(t)
	partner := seedPartner(t, db, "p1@example.com")

	for i := 0; i < 5; i++ {
		creditForTest(t, db, partner, int64(10+i))
	}

	entries, err := RecentEntries(db, partner.ID, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	entries, err = RecentEntries(db, partner.ID, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}
