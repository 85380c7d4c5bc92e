package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaeminyoo/homepoint/internal/helpers"
	"github.com/jaeminyoo/homepoint/internal/models"
	"github.com/jaeminyoo/homepoint/internal/services"
)

// GetMyPartner returns the caller's partner profile. Reading is also the
// moment the subscription gets refreshed; there is no scheduled job.
func GetMyPartner(c *gin.Context) {
	accountID, ok := requestAccountID(c)
	if !ok {
		return
	}
	gormDB, ok := requestDB(c)
	if !ok {
		return
	}

	var partner models.Partner
	if err := gormDB.First(&partner, "id = ?", accountID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Partner not found.")
		return
	}

	if err := services.RefreshSubscription(gormDB, &partner, time.Now().UTC()); err != nil {
		helpers.RespondInternalError(c, err)
		return
	}

	balance, err := services.BalanceOf(gormDB, partner.ID)
	if err != nil {
		helpers.RespondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            partner.ID,
		"email":         partner.Email,
		"business_name": partner.BusinessName,
		"phone_number":  partner.PhoneNumber,
		"points": gin.H{
			"balance": balance,
		},
		"subscription": gin.H{
			"status":               partner.Subscription.Status,
			"current_period_start": partner.Subscription.CurrentPeriodStart,
			"current_period_end":   partner.Subscription.CurrentPeriodEnd,
			"auto_renew":           partner.Subscription.AutoRenew,
			"next_billing_at":      partner.Subscription.NextBillingAt,
		},
	})
}
