package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// SubscriptionPeriod is the fixed renewal increment.
const SubscriptionPeriod = 30 * 24 * time.Hour

type Subscription struct {
	Status             string `gorm:"default:''"`
	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
	AutoRenew          bool `gorm:"not null;default:false"`
	NextBillingAt      *time.Time
}

// Refresh rolls the period forward or expires the subscription once
// CurrentPeriodEnd has passed. Returns true when anything changed, so
// callers know whether to persist. Safe to call on every partner read.
func (s *Subscription) Refresh(now time.Time) bool {
	if s.Status != SubscriptionActive {
		return false
	}
	if s.CurrentPeriodEnd == nil || s.CurrentPeriodEnd.After(now) {
		return false
	}

	if s.AutoRenew {
		start := now
		end := now.Add(SubscriptionPeriod)
		s.CurrentPeriodStart = &start
		s.CurrentPeriodEnd = &end
		s.NextBillingAt = &end
		return true
	}

	s.Status = SubscriptionExpired
	s.NextBillingAt = nil
	return true
}

// Activate starts a fresh period, or extends the current one when the
// subscription is still active.
func (s *Subscription) Activate(now time.Time, autoRenew bool) {
	start := now
	if s.Status == SubscriptionActive && s.CurrentPeriodEnd != nil && s.CurrentPeriodEnd.After(now) {
		start = *s.CurrentPeriodEnd
	}
	end := start.Add(SubscriptionPeriod)

	s.Status = SubscriptionActive
	s.AutoRenew = autoRenew
	s.CurrentPeriodStart = &start
	s.CurrentPeriodEnd = &end
	s.NextBillingAt = &end
}

type Partner struct {
	gorm.Model
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Email        string    `gorm:"unique;not null"`
	Password     string    `gorm:"not null"`
	BusinessName string    `gorm:"not null"`
	PhoneNumber  string

	// Display cache. The ledger sum is authoritative.
	PointsBalance int64 `gorm:"not null;default:0"`

	Subscription Subscription `gorm:"embedded;embeddedPrefix:subscription_"`
}

func (partner *Partner) BeforeCreate(tx *gorm.DB) (err error) {
	if partner.ID == uuid.Nil {
		partner.ID = uuid.New()
	}
	return
}
