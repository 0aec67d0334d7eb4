package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriptionStatusTrialing = "trialing"
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
	SubscriptionStatusExpired  = "expired"
)

const (
	BillingIntervalTrial = "trial"
	BillingIntervalMonth = "month"
	BillingIntervalYear  = "year"
)

// UserSubscription links a user to a pricing row. Rows are never deleted;
// state changes are recorded as status transitions.
type UserSubscription struct {
	ID                 string     `gorm:"type:char(36);primaryKey" json:"id"`
	UserID             uint       `gorm:"not null;index:idx_user_subscriptions_user_created,priority:1" json:"userId"`
	PricingID          string     `gorm:"type:char(36);not null;index" json:"pricingId"`
	Pricing            *Pricing   `gorm:"foreignKey:PricingID" json:"pricing,omitempty"`
	Status             string     `gorm:"type:varchar(32);not null;index" json:"status"`
	BillingInterval    string     `gorm:"type:varchar(16);not null" json:"billingInterval"`
	TrialStartsAt      *time.Time `json:"trialStartsAt"`
	TrialEndsAt        *time.Time `json:"trialEndsAt"`
	CurrentPeriodStart *time.Time `json:"currentPeriodStart"`
	CurrentPeriodEnd   *time.Time `json:"currentPeriodEnd"`
	CanceledAt         *time.Time `json:"canceledAt"`
	CancellationReason string     `gorm:"type:varchar(500);not null;default:''" json:"cancellationReason"`
	// ActiveSlot carries UserID while the subscription is live and NULL
	// otherwise; its unique index allows one live subscription per user.
	ActiveSlot *uint     `gorm:"uniqueIndex:ux_user_subscriptions_active_slot" json:"-"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_user_subscriptions_user_created,priority:2" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (s *UserSubscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// IsLiveStatus reports whether status occupies the user's single live slot.
func IsLiveStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case SubscriptionStatusTrialing, SubscriptionStatusActive, SubscriptionStatusPastDue:
		return true
	default:
		return false
	}
}

// IsEntitling reports whether the subscription grants its pricing's features
// at the given instant. Trials stop entitling once TrialEndsAt has passed.
func (s *UserSubscription) IsEntitling(now time.Time) bool {
	if s == nil {
		return false
	}
	switch strings.ToLower(s.Status) {
	case SubscriptionStatusActive, SubscriptionStatusPastDue:
		return true
	case SubscriptionStatusTrialing:
		return s.TrialEndsAt != nil && now.Before(*s.TrialEndsAt)
	default:
		return false
	}
}

// IsCanceled reports whether the subscription was canceled.
func (s *UserSubscription) IsCanceled() bool {
	return s != nil && s.Status == SubscriptionStatusCanceled
}

// MarkCanceled transitions the subscription to canceled and frees the live slot.
func (s *UserSubscription) MarkCanceled(at time.Time, reason string) {
	s.Status = SubscriptionStatusCanceled
	s.CanceledAt = &at
	s.CancellationReason = strings.TrimSpace(reason)
	s.ActiveSlot = nil
}

// MarkExpired ends a lapsed subscription and frees the live slot.
func (s *UserSubscription) MarkExpired() {
	s.Status = SubscriptionStatusExpired
	s.ActiveSlot = nil
}
