package billing

import (
	"strings"
	"time"

	"github.com/ManuelReschke/ShopLedger/app/models"
)

const (
	fallbackTrialDays     = 14
	maxCancellationReason = 500
)

// trialLength returns how long a trial on the given plan lasts. Plans without
// their own trial length use the configured default.
func trialLength(plan *models.Plan, defaultDays int) time.Duration {
	days := defaultDays
	if plan != nil && plan.TrialDays > 0 {
		days = plan.TrialDays
	}
	if days <= 0 {
		days = fallbackTrialDays
	}
	return time.Duration(days) * 24 * time.Hour
}

func normalizeReason(reason string) string {
	r := strings.TrimSpace(reason)
	if len([]rune(r)) > maxCancellationReason {
		r = string([]rune(r)[:maxCancellationReason])
	}
	return r
}

// isLapsedTrial reports whether sub still occupies the live slot as a trial
// even though its trial window is over.
func isLapsedTrial(sub *models.UserSubscription, now time.Time) bool {
	return sub != nil &&
		sub.Status == models.SubscriptionStatusTrialing &&
		sub.TrialEndsAt != nil &&
		!now.Before(*sub.TrialEndsAt)
}
