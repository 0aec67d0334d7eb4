package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/ShopLedger/app/models"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/database"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/database/databasetest"
)

func TestSeedCatalogIsIdempotent(t *testing.T) {
	db := databasetest.NewSeeded(t)
	require.NoError(t, database.SeedCatalog(db))

	var plans, pricings, countries int64
	require.NoError(t, db.Model(&models.Plan{}).Count(&plans).Error)
	require.NoError(t, db.Model(&models.Pricing{}).Count(&pricings).Error)
	require.NoError(t, db.Model(&models.CountryCurrency{}).Count(&countries).Error)

	assert.Equal(t, int64(3), plans)
	assert.Equal(t, int64(5), countries)
	assert.Equal(t, int64(15), pricings)
}

func TestSeedCatalogExactlyOneDefaultPlan(t *testing.T) {
	db := databasetest.NewSeeded(t)

	var defaults []models.Plan
	require.NoError(t, db.Where("is_default = ?", true).Find(&defaults).Error)
	require.Len(t, defaults, 1)
	assert.Equal(t, "Free", defaults[0].Name)
}

func TestSeededFeatureMatrixRoundTrips(t *testing.T) {
	db := databasetest.NewSeeded(t)

	var p models.Pricing
	require.NoError(t, db.First(&p, "id = ?", database.SeedID("pricing", "Basic:NG")).Error)

	m := p.FeatureMatrix()
	assert.True(t, m.Credit)
	assert.True(t, m.CreditReports)
	assert.False(t, m.ExpensesAnalytics)

	var us models.Pricing
	require.NoError(t, db.First(&us, "id = ?", database.SeedID("pricing", "Basic:US")).Error)
	assert.False(t, us.FeatureMatrix().CreditReports)
}
