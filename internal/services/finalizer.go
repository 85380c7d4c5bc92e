package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jaeminyoo/homepoint/internal/billing"
	"github.com/jaeminyoo/homepoint/internal/models"
)

// Finalize is the single transition function for payment orders. Both the
// test-confirm endpoint and the gateway webhook call it; neither carries
// any transition logic of its own.
//
// The status write is a compare-and-set UPDATE conditioned on READY, run
// inside one transaction together with the point credit, so an order can
// never end up PAID without its ledger entry or vice versa. Whichever
// caller commits first decides the terminal state; every later call finds
// the order terminal and returns success without touching anything, which
// is what makes at-least-once webhook delivery safe.
func Finalize(db *gorm.DB, orderID uuid.UUID, nextStatus, gatewayProvider, statusDetail string) error {
	if nextStatus != models.OrderStatusPaid && nextStatus != models.OrderStatusFailed {
		return ErrInvalidStatus
	}

	return db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":     nextStatus,
			"updated_at": time.Now().UTC(),
		}
		if gatewayProvider != "" {
			updates["gateway_provider"] = gatewayProvider
		}
		if statusDetail != "" {
			updates["status_detail"] = statusDetail
		}

		res := tx.Model(&models.PaymentOrder{}).
			Where("id = ? AND status = ?", orderID, models.OrderStatusReady).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			var current models.PaymentOrder
			if err := tx.First(&current, "id = ?", orderID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrOrderNotFound
				}
				return err
			}
			// Already terminal: duplicate confirm or webhook retry.
			log.Debug().
				Str("order_id", orderID.String()).
				Str("status", current.Status).
				Msg("finalize no-op on terminal order")
			return nil
		}

		if nextStatus != models.OrderStatusPaid {
			return nil
		}

		var order models.PaymentOrder
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}

		bill := billing.Calc(float64(order.Amount))
		if bill.CreditedPoints > 0 {
			pay := bill.AmountPayKRW
			relatedID := order.ID
			if _, err := appendEntry(tx, models.PointLedgerEntry{
				AccountID:      order.AccountID,
				Amount:         int64(bill.CreditedPoints),
				Direction:      models.LedgerCredit,
				Type:           models.EntryTypeCreditCharge,
				Reason:         fmt.Sprintf("point charge (%s)", order.ProductID),
				RelatedOrderID: &relatedID,
				AmountPayKRW:   &pay,
			}); err != nil {
				return err
			}
		}

		return applyProductEffects(tx, &order)
	})
}

// applyProductEffects handles product-type specific side effects of a paid
// order, currently just subscription activation.
func applyProductEffects(tx *gorm.DB, order *models.PaymentOrder) error {
	var product models.Product
	if err := tx.First(&product, "id = ?", order.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if product.Type != models.ProductTypeSubscription {
		return nil
	}

	var partner models.Partner
	if err := tx.First(&partner, "id = ?", order.AccountID).Error; err != nil {
		return err
	}
	partner.Subscription.Activate(time.Now().UTC(), true)
	return tx.Model(&models.Partner{}).Where("id = ?", partner.ID).
		Updates(map[string]interface{}{
			"subscription_status":               partner.Subscription.Status,
			"subscription_current_period_start": partner.Subscription.CurrentPeriodStart,
			"subscription_current_period_end":   partner.Subscription.CurrentPeriodEnd,
			"subscription_auto_renew":           partner.Subscription.AutoRenew,
			"subscription_next_billing_at":      partner.Subscription.NextBillingAt,
		}).Error
}
