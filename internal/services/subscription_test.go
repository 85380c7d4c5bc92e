package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jaeminyoo/homepoint/internal/models"
)

func activePartner(t *testing.T, db *gorm.DB, periodEnd time.Time, autoRenew bool) models.Partner {
	t.Helper()

	partner := seedPartner(t, db, "sub@example.com")
	start := periodEnd.Add(-models.SubscriptionPeriod)
	partner.Subscription = models.Subscription{
		Status:             models.SubscriptionActive,
		CurrentPeriodStart: &start,
		CurrentPeriodEnd:   &periodEnd,
		AutoRenew:          autoRenew,
		NextBillingAt:      &periodEnd,
	}
	require.NoError(t, db.Save(&partner).Error)
	return partner
}

func TestRefreshAdvancesElapsedAutoRenewPeriod(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()
	partner := activePartner(t, db, now.Add(-time.Second), true)

	require.NoError(t, RefreshSubscription(db, &partner, now))

	var got models.Partner
	require.NoError(t, db.First(&got, "id = ?", partner.ID).Error)
	assert.Equal(t, models.SubscriptionActive, got.Subscription.Status)
	require.NotNil(t, got.Subscription.CurrentPeriodEnd)
	assert.WithinDuration(t, now.Add(models.SubscriptionPeriod), *got.Subscription.CurrentPeriodEnd, time.Second)
	require.NotNil(t, got.Subscription.NextBillingAt)
}

func TestRefreshExpiresWithoutAutoRenew(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()
	partner := activePartner(t, db, now.Add(-time.Second), false)

	require.NoError(t, RefreshSubscription(db, &partner, now))

	var got models.Partner
	require.NoError(t, db.First(&got, "id = ?", partner.ID).Error)
	assert.Equal(t, models.SubscriptionExpired, got.Subscription.Status)
	assert.Nil(t, got.Subscription.NextBillingAt)
}

func TestRefreshIsNoOpBeforePeriodEnd(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()
	partner := activePartner(t, db, now.Add(time.Hour), true)
	before := partner.Subscription

	require.NoError(t, RefreshSubscription(db, &partner, now))

	assert.Equal(t, before, partner.Subscription)
}

func TestRefreshDoesNotDoubleAdvance(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()
	partner := activePartner(t, db, now.Add(-time.Second), true)

	require.NoError(t, RefreshSubscription(db, &partner, now))
	firstEnd := *partner.Subscription.CurrentPeriodEnd

	// Redundant refresh within the fresh period changes nothing.
	require.NoError(t, RefreshSubscription(db, &partner, now.Add(time.Minute)))
	assert.Equal(t, firstEnd, *partner.Subscription.CurrentPeriodEnd)
}

func TestRefreshIgnoresInactiveSubscription(t *testing.T) {
	db := newTestDB(t)
	partner := seedPartner(t, db, "none@example.com")

	require.NoError(t, RefreshSubscription(db, &partner, time.Now().UTC()))
	assert.Empty(t, partner.Subscription.Status)
}

func TestSubscriptionRefreshBoundary(t *testing.T) {
	now := time.Now().UTC()

	s := models.Subscription{Status: models.SubscriptionActive, AutoRenew: true}
	end := now // exactly elapsed
	s.CurrentPeriodEnd = &end
	assert.True(t, s.Refresh(now))

	s = models.Subscription{Status: models.SubscriptionActive, AutoRenew: true}
	future := now.Add(time.Nanosecond)
	s.CurrentPeriodEnd = &future
	assert.False(t, s.Refresh(now))
}
