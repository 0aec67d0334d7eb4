package database

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ManuelReschke/ShopLedger/app/models"
)

// seedNamespace keeps seeded ids stable so re-running the seed updates rows in place.
var seedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://shopledger.app/seed"))

func SeedID(kind, key string) string {
	return uuid.NewSHA1(seedNamespace, []byte(kind+":"+key)).String()
}

var seedCountries = []models.CountryCurrency{
	{CountryCode: "NG", CountryName: "Nigeria", CurrencyCode: "NGN", CurrencySymbol: "₦", CurrencyName: "Nigerian Naira"},
	{CountryCode: "GH", CountryName: "Ghana", CurrencyCode: "GHS", CurrencySymbol: "GH₵", CurrencyName: "Ghanaian Cedi"},
	{CountryCode: "KE", CountryName: "Kenya", CurrencyCode: "KES", CurrencySymbol: "KSh", CurrencyName: "Kenyan Shilling"},
	{CountryCode: "ZAR", CountryName: "South Africa", CurrencyCode: "ZAR", CurrencySymbol: "R", CurrencyName: "South African Rand"},
	{CountryCode: "US", CountryName: "United States", CurrencyCode: "USD", CurrencySymbol: "$", CurrencyName: "US Dollar"},
}

var seedPlans = []models.Plan{
	{Name: "Free", Description: "Record sales and keep your books in one place.", IsActive: true, IsDefault: true, SortOrder: 0, TrialDays: 0},
	{Name: "Basic", Description: "Track expenses and customers who buy on credit.", IsActive: true, SortOrder: 1, TrialDays: 14},
	{Name: "Premium", Description: "Everything, including analytics and credit reports.", IsActive: true, SortOrder: 2, TrialDays: 14},
}

// monthly and yearly prices per plan and country, in minor units
var seedPrices = map[string]map[string][2]int64{
	"Free": {"NG": {0, 0}, "GH": {0, 0}, "KE": {0, 0}, "ZAR": {0, 0}, "US": {0, 0}},
	"Basic": {
		"NG": {500000, 5000000}, "GH": {5000, 50000}, "KE": {50000, 500000},
		"ZAR": {9900, 99000}, "US": {999, 9990},
	},
	"Premium": {
		"NG": {1000000, 10000000}, "GH": {10000, 100000}, "KE": {100000, 1000000},
		"ZAR": {19900, 199000}, "US": {1999, 19990},
	},
}

func seedFeatures(plan, country string) models.FeatureMatrix {
	switch plan {
	case "Premium":
		return models.FeatureMatrix{
			Expenses: true, ExpensesAnalytics: true, Credit: true,
			CreditReports: true, Invoicing: true, Inventory: true,
		}
	case "Basic":
		m := models.FeatureMatrix{Expenses: true, Credit: true, Invoicing: true}
		// credit sales dominate in Nigeria, so Basic there includes the reports
		if country == "NG" {
			m.CreditReports = true
		}
		return m
	default:
		return models.FeatureMatrix{}
	}
}

// SeedCatalog upserts the reference countries, plans and pricing rows.
func SeedCatalog(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&seedCountries).Error; err != nil {
			return err
		}

		for _, p := range seedPlans {
			plan := p
			plan.ID = SeedID("plan", plan.Name)
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&plan).Error; err != nil {
				return err
			}

			for _, c := range seedCountries {
				prices := seedPrices[plan.Name][c.CountryCode]
				pricing := models.Pricing{
					ID:           SeedID("pricing", plan.Name+":"+c.CountryCode),
					PlanID:       plan.ID,
					CountryCode:  c.CountryCode,
					MonthlyPrice: prices[0],
					YearlyPrice:  prices[1],
					Features:     datatypes.NewJSONType(seedFeatures(plan.Name, c.CountryCode)),
					IsCurrent:    true,
				}
				if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&pricing).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
