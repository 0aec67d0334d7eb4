package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Pricing is a plan's price and feature offering for one country. Features
// live here rather than on Plan so the same tier can differ per region.
// Prices are stored in minor currency units.
type Pricing struct {
	ID           string                            `gorm:"type:char(36);primaryKey" json:"id"`
	PlanID       string                            `gorm:"type:char(36);not null;index:idx_pricings_plan_country,priority:1" json:"planId"`
	Plan         *Plan                             `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	CountryCode  string                            `gorm:"type:varchar(8);not null;index:idx_pricings_plan_country,priority:2;index" json:"countryCode"`
	MonthlyPrice int64                             `gorm:"not null" json:"monthlyPrice"`
	YearlyPrice  int64                             `gorm:"not null" json:"yearlyPrice"`
	Features     datatypes.JSONType[FeatureMatrix] `gorm:"not null" json:"features"`
	IsCurrent    bool                              `gorm:"not null;index" json:"isCurrent"`
	CreatedAt    time.Time                         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time                         `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (p *Pricing) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// FeatureMatrix returns the decoded feature flags of this pricing row.
func (p *Pricing) FeatureMatrix() FeatureMatrix {
	if p == nil {
		return FeatureMatrix{}
	}
	return p.Features.Data()
}

// CountryCurrency is static reference data describing a country's currency.
type CountryCurrency struct {
	CountryCode    string `gorm:"type:varchar(8);primaryKey" json:"countryCode"`
	CountryName    string `gorm:"type:varchar(100);not null" json:"countryName"`
	CurrencyCode   string `gorm:"type:varchar(8);not null" json:"currencyCode"`
	CurrencySymbol string `gorm:"type:varchar(8);not null" json:"currencySymbol"`
	CurrencyName   string `gorm:"type:varchar(100);not null" json:"currencyName"`
}

func (CountryCurrency) TableName() string { return "country_currencies" }
