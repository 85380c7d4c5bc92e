package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/jaeminyoo/homepoint/internal/models"
)

// RefreshSubscription rolls the partner's subscription forward (or expires
// it) when its period has elapsed, persisting only when something changed.
// Called opportunistically on partner reads instead of by a scheduler, so
// redundant calls must be harmless.
func RefreshSubscription(db *gorm.DB, partner *models.Partner, now time.Time) error {
	if !partner.Subscription.Refresh(now) {
		return nil
	}

	return db.Model(&models.Partner{}).Where("id = ?", partner.ID).
		Updates(map[string]interface{}{
			"subscription_status":               partner.Subscription.Status,
			"subscription_current_period_start": partner.Subscription.CurrentPeriodStart,
			"subscription_current_period_end":   partner.Subscription.CurrentPeriodEnd,
			"subscription_auto_renew":           partner.Subscription.AutoRenew,
			"subscription_next_billing_at":      partner.Subscription.NextBillingAt,
		}).Error
}
