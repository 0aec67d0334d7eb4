package billing

import (
	"context"

	"github.com/ManuelReschke/ShopLedger/app/models"
	"gorm.io/gorm"
)

// Repository provides DB operations used by the billing service.
type Repository interface {
	ListActivePlans(ctx context.Context) ([]models.Plan, error)
	ListPricingForCountry(ctx context.Context, countryCode string, withPlan bool) ([]models.Pricing, error)
	GetPricingByID(ctx context.Context, id string) (*models.Pricing, error)
	GetCountryCurrency(ctx context.Context, countryCode string) (*models.CountryCurrency, error)

	CreateSubscription(ctx context.Context, sub *models.UserSubscription) error
	SaveSubscription(ctx context.Context, sub *models.UserSubscription) error
	GetSubscriptionByID(ctx context.Context, id string) (*models.UserSubscription, error)
	FindLiveSubscription(ctx context.Context, userID uint) (*models.UserSubscription, error)
	GetLatestSubscription(ctx context.Context, userID uint) (*models.UserSubscription, error)

	// Transaction runs fn against a repository bound to one database
	// transaction. Returning an error rolls everything back.
	Transaction(ctx context.Context, fn func(repo Repository) error) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ListActivePlans(ctx context.Context) ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").Order("name ASC").
		Find(&plans).Error
	return plans, err
}

func (r *gormRepository) ListPricingForCountry(ctx context.Context, countryCode string, withPlan bool) ([]models.Pricing, error) {
	var pricings []models.Pricing
	q := r.db.WithContext(ctx).
		Joins("JOIN plans ON plans.id = pricings.plan_id AND plans.is_active = ?", true).
		Where("pricings.country_code = ? AND pricings.is_current = ?", countryCode, true).
		Order("plans.sort_order ASC").Order("plans.name ASC")
	if withPlan {
		q = q.Preload("Plan")
	}
	err := q.Find(&pricings).Error
	return pricings, err
}

func (r *gormRepository) GetPricingByID(ctx context.Context, id string) (*models.Pricing, error) {
	var p models.Pricing
	if err := r.db.WithContext(ctx).Preload("Plan").Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) GetCountryCurrency(ctx context.Context, countryCode string) (*models.CountryCurrency, error) {
	var cc models.CountryCurrency
	if err := r.db.WithContext(ctx).Where("country_code = ?", countryCode).First(&cc).Error; err != nil {
		return nil, err
	}
	return &cc, nil
}

func (r *gormRepository) CreateSubscription(ctx context.Context, sub *models.UserSubscription) error {
	return r.db.WithContext(ctx).Omit("Pricing").Create(sub).Error
}

func (r *gormRepository) SaveSubscription(ctx context.Context, sub *models.UserSubscription) error {
	return r.db.WithContext(ctx).Omit("Pricing").Save(sub).Error
}

func (r *gormRepository) GetSubscriptionByID(ctx context.Context, id string) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	if err := r.db.WithContext(ctx).Preload("Pricing.Plan").Where("id = ?", id).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) FindLiveSubscription(ctx context.Context, userID uint) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, []string{
			models.SubscriptionStatusTrialing,
			models.SubscriptionStatusActive,
			models.SubscriptionStatusPastDue,
		}).
		Order("created_at DESC").Order("id DESC").
		Limit(1).Find(&sub).Error
	if err != nil {
		return nil, err
	}
	if sub.ID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &sub, nil
}

// GetLatestSubscription returns the most recently created subscription of the
// user regardless of status. Ties on created_at are broken by id.
func (r *gormRepository) GetLatestSubscription(ctx context.Context, userID uint) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := r.db.WithContext(ctx).
		Preload("Pricing.Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(1).Find(&sub).Error
	if err != nil {
		return nil, err
	}
	if sub.ID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &sub, nil
}

func (r *gormRepository) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}
