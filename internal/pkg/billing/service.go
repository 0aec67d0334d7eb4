package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ManuelReschke/ShopLedger/app/models"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/entitlements"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/env"
	"gorm.io/gorm"
)

// Service manages the pricing catalog and the subscription lifecycle.
type Service struct {
	repo             Repository
	now              func() time.Time
	defaultTrialDays int
}

type Option func(*Service)

// WithClock replaces the time source used for trial and cancellation stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithDefaultTrialDays(days int) Option {
	return func(s *Service) { s.defaultTrialDays = days }
}

// NewService creates a billing service from an injected repository.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:             repo,
		now:              func() time.Time { return time.Now().UTC() },
		defaultTrialDays: env.GetEnvInt("SUBSCRIPTION_TRIAL_DAYS", fallbackTrialDays),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, opts ...Option) *Service {
	return NewService(NewRepository(db), opts...)
}

// Catalog is the public pricing view for one country.
type Catalog struct {
	CountryCode string                  `json:"countryCode"`
	Currency    *models.CountryCurrency `json:"currency"`
	Plans       []models.Plan           `json:"plans"`
	Pricing     []models.Pricing        `json:"pricing"`
}

// Catalog returns the active plans and the current pricing rows for a country.
// A country without currency data yields a nil Currency rather than an error.
func (s *Service) Catalog(ctx context.Context, countryCode string) (*Catalog, error) {
	plans, err := s.repo.ListActivePlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	pricing, err := s.repo.ListPricingForCountry(ctx, countryCode, true)
	if err != nil {
		return nil, fmt.Errorf("list pricing for %s: %w", countryCode, err)
	}
	currency, err := s.repo.GetCountryCurrency(ctx, countryCode)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get currency for %s: %w", countryCode, err)
	}

	return &Catalog{
		CountryCode: countryCode,
		Currency:    currency,
		Plans:       plans,
		Pricing:     pricing,
	}, nil
}

// StartTrial opens a trial on the given pricing row. A user holds at most one
// trialing, active or past_due subscription; a trial whose window has already
// ended is expired first and does not block a new one.
func (s *Service) StartTrial(ctx context.Context, userID uint, pricingID string) (*models.UserSubscription, error) {
	pricingID = strings.TrimSpace(pricingID)
	if userID == 0 {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if pricingID == "" {
		return nil, fmt.Errorf("%w: pricingId is required", ErrValidation)
	}

	var created *models.UserSubscription
	err := s.repo.Transaction(ctx, func(repo Repository) error {
		pricing, err := repo.GetPricingByID(ctx, pricingID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrPricingNotFound, pricingID)
		}
		if err != nil {
			return err
		}
		if !pricing.IsCurrent || pricing.Plan == nil || !pricing.Plan.IsActive {
			return fmt.Errorf("%w: %s is not offered", ErrPricingNotFound, pricingID)
		}

		now := s.now()
		live, err := repo.FindLiveSubscription(ctx, userID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
		case err != nil:
			return err
		case isLapsedTrial(live, now):
			live.MarkExpired()
			if err := repo.SaveSubscription(ctx, live); err != nil {
				return fmt.Errorf("expire lapsed trial %s: %w", live.ID, err)
			}
		default:
			return fmt.Errorf("%w: %s", ErrSubscriptionExists, live.ID)
		}

		trialEnds := now.Add(trialLength(pricing.Plan, s.defaultTrialDays))
		slot := userID
		sub := &models.UserSubscription{
			UserID:          userID,
			PricingID:       pricing.ID,
			Status:          models.SubscriptionStatusTrialing,
			BillingInterval: models.BillingIntervalTrial,
			TrialStartsAt:   &now,
			TrialEndsAt:     &trialEnds,
			ActiveSlot:      &slot,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := repo.CreateSubscription(ctx, sub); err != nil {
			// a concurrent request took the live slot first
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: user %d", ErrSubscriptionExists, userID)
			}
			return err
		}

		created, err = repo.GetSubscriptionByID(ctx, sub.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Cancel cancels subscriptionID on behalf of userID. Ownership is checked
// before anything is written. Cancelling a canceled subscription returns it
// unchanged.
func (s *Service) Cancel(ctx context.Context, userID uint, subscriptionID, reason string) (*models.UserSubscription, error) {
	subscriptionID = strings.TrimSpace(subscriptionID)
	if subscriptionID == "" {
		return nil, fmt.Errorf("%w: subscription id is required", ErrValidation)
	}

	var out *models.UserSubscription
	err := s.repo.Transaction(ctx, func(repo Repository) error {
		sub, err := repo.GetSubscriptionByID(ctx, subscriptionID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrSubscriptionNotFound, subscriptionID)
		}
		if err != nil {
			return err
		}
		if sub.UserID != userID {
			return ErrForbidden
		}
		if sub.IsCanceled() {
			out = sub
			return nil
		}

		sub.MarkCanceled(s.now(), normalizeReason(reason))
		if err := repo.SaveSubscription(ctx, sub); err != nil {
			return err
		}

		out, err = repo.GetSubscriptionByID(ctx, sub.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Status returns the newest subscription of the user with its pricing and
// plan, or nil when the user never subscribed.
func (s *Service) Status(ctx context.Context, userID uint) (*models.UserSubscription, error) {
	sub, err := s.repo.GetLatestSubscription(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

const (
	SourceSubscription = "subscription"
	SourceDefaultPlan  = "default"
	SourceNone         = "none"
)

// Entitlements is the resolved feature set of one user at one instant.
type Entitlements struct {
	PricingID string                  `json:"pricingId"`
	Source    string                  `json:"source"`
	Features  map[models.Feature]bool `json:"features"`

	evaluator *entitlements.Evaluator
}

// IsFeatureEnabled reports whether the feature key is granted.
func (e *Entitlements) IsFeatureEnabled(feature string) bool {
	if e == nil {
		return false
	}
	return e.evaluator.IsFeatureEnabled(e.PricingID, feature)
}

// Entitlements resolves what the user may use right now. The newest
// subscription counts while it entitles; otherwise the default plan's pricing
// for countryCode applies. With neither, every feature is denied.
func (s *Service) Entitlements(ctx context.Context, userID uint, countryCode string) (*Entitlements, error) {
	sub, err := s.Status(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub.IsEntitling(s.now()) {
		var pricings []models.Pricing
		if sub.Pricing != nil {
			pricings = append(pricings, *sub.Pricing)
		}
		return newEntitlements(sub.PricingID, SourceSubscription, pricings), nil
	}

	pricings, err := s.repo.ListPricingForCountry(ctx, countryCode, true)
	if err != nil {
		return nil, err
	}
	if def, ok := entitlements.DefaultPricing(pricings); ok {
		return newEntitlements(def.ID, SourceDefaultPlan, pricings), nil
	}
	return newEntitlements("", SourceNone, nil), nil
}

// CurrentPricingID returns the pricing id entitlements are derived from, or ""
// when there is none.
func (s *Service) CurrentPricingID(ctx context.Context, userID uint, countryCode string) (string, error) {
	e, err := s.Entitlements(ctx, userID, countryCode)
	if err != nil {
		return "", err
	}
	return e.PricingID, nil
}

func newEntitlements(pricingID, source string, pricings []models.Pricing) *Entitlements {
	ev := entitlements.NewEvaluator(pricings)
	return &Entitlements{
		PricingID: pricingID,
		Source:    source,
		Features:  ev.Features(pricingID),
		evaluator: ev,
	}
}
