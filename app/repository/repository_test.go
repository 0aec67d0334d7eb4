package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ManuelReschke/ShopLedger/app/models"
	"github.com/ManuelReschke/ShopLedger/app/repository"
	"github.com/ManuelReschke/ShopLedger/internal/pkg/database/databasetest"
)

func newRepos(t *testing.T) (*repository.Repositories, *gorm.DB) {
	t.Helper()
	db := databasetest.New(t)
	return repository.NewFactory(db).GetRepositories(), db
}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC)
}

func TestUserRepository(t *testing.T) {
	repos, _ := newRepos(t)

	u, err := models.CreateUser("Ada Obi", "Ada@Example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, repos.User.Create(u))

	dup, err := models.CreateUser("Ada Two", "ada@example.com", "secret123")
	require.NoError(t, err)
	assert.Error(t, repos.User.Create(dup), "email is unique")

	byEmail, err := repos.User.GetByEmail("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byEmail.BusinessName = "Ada Stores"
	byEmail.CountryCode = "NG"
	require.NoError(t, repos.User.Update(byEmail))
	require.NoError(t, repos.User.TouchLastLogin(u.ID, day(2)))

	got, err := repos.User.GetByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Stores", got.BusinessName)
	assert.Equal(t, "NG", got.CountryCode)
	require.NotNil(t, got.LastLoginAt)
	assert.True(t, got.CheckPassword("secret123"))

	_, err = repos.User.GetByID(999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSaleRepository(t *testing.T) {
	repos, _ := newRepos(t)

	for _, s := range []models.Sale{
		{UserID: 1, Item: "rice", Quantity: 2, UnitPrice: 500, Amount: 1000, SoldAt: day(1)},
		{UserID: 1, Item: "beans", Quantity: 1, UnitPrice: 300, Amount: 300, SoldAt: day(3)},
		{UserID: 2, Item: "oil", Quantity: 1, UnitPrice: 900, Amount: 900, SoldAt: day(2)},
	} {
		sale := s
		require.NoError(t, repos.Sale.Create(&sale))
	}

	sales, err := repos.Sale.ListByUser(1, repository.Period{})
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "beans", sales[0].Item)

	sales, err = repos.Sale.ListByUser(1, repository.Period{From: day(2), To: day(4)})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "beans", sales[0].Item)

	// another user's sale looks missing
	other, err := repos.Sale.ListByUser(2, repository.Period{})
	require.NoError(t, err)
	assert.ErrorIs(t, repos.Sale.DeleteForUser(1, other[0].ID), gorm.ErrRecordNotFound)
	assert.NoError(t, repos.Sale.DeleteForUser(2, other[0].ID))
	assert.ErrorIs(t, repos.Sale.DeleteForUser(2, other[0].ID), gorm.ErrRecordNotFound)
}

func TestExpenseTotalsByCategory(t *testing.T) {
	repos, _ := newRepos(t)

	for _, e := range []models.Expense{
		{UserID: 1, Title: "Shop rent", Category: "rent", Amount: 50000, SpentAt: day(1)},
		{UserID: 1, Title: "Bus", Category: "transport", Amount: 800, SpentAt: day(2)},
		{UserID: 1, Title: "Taxi", Category: "transport", Amount: 1200, SpentAt: day(5)},
		{UserID: 2, Title: "Rent", Category: "rent", Amount: 99999, SpentAt: day(1)},
	} {
		expense := e
		require.NoError(t, repos.Expense.Create(&expense))
	}

	totals, err := repos.Expense.TotalsByCategory(1, repository.Period{})
	require.NoError(t, err)
	assert.Equal(t, []repository.CategoryTotal{
		{Category: "rent", Total: 50000, Count: 1},
		{Category: "transport", Total: 2000, Count: 2},
	}, totals)

	totals, err = repos.Expense.TotalsByCategory(1, repository.Period{From: day(2)})
	require.NoError(t, err)
	assert.Equal(t, []repository.CategoryTotal{{Category: "transport", Total: 2000, Count: 2}}, totals)

	expenses, err := repos.Expense.ListByUser(1, repository.Period{})
	require.NoError(t, err)
	require.Len(t, expenses, 3)
	assert.Equal(t, "Taxi", expenses[0].Title)
}

func TestDebtorBalancesAndReport(t *testing.T) {
	repos, _ := newRepos(t)

	ada := &models.Debtor{UserID: 1, Name: "Ada"}
	bola := &models.Debtor{UserID: 1, Name: "Bola"}
	chidi := &models.Debtor{UserID: 1, Name: "Chidi"}
	stranger := &models.Debtor{UserID: 2, Name: "Zed"}
	for _, d := range []*models.Debtor{ada, bola, chidi, stranger} {
		require.NoError(t, repos.Debtor.Create(d))
	}

	entries := []models.CreditEntry{
		{DebtorID: ada.ID, UserID: 1, Kind: models.CreditKindCredit, Amount: 5000, OccurredAt: day(1)},
		{DebtorID: ada.ID, UserID: 1, Kind: models.CreditKindRepayment, Amount: 2000, OccurredAt: day(2)},
		{DebtorID: bola.ID, UserID: 1, Kind: models.CreditKindCredit, Amount: 7000, OccurredAt: day(3)},
		{DebtorID: stranger.ID, UserID: 2, Kind: models.CreditKindCredit, Amount: 100, OccurredAt: day(3)},
	}
	for _, e := range entries {
		entry := e
		require.NoError(t, repos.Debtor.AddEntry(&entry))
	}

	balances, err := repos.Debtor.ListWithBalances(1)
	require.NoError(t, err)
	require.Len(t, balances, 3)
	assert.Equal(t, "Ada", balances[0].Name)
	assert.Equal(t, int64(5000), balances[0].TotalCredit)
	assert.Equal(t, int64(2000), balances[0].TotalRepaid)
	assert.Equal(t, int64(3000), balances[0].Outstanding)
	assert.Equal(t, int64(7000), balances[1].Outstanding)
	assert.Equal(t, "Chidi", balances[2].Name)
	assert.Zero(t, balances[2].Outstanding)

	report, err := repos.Debtor.Report(1)
	require.NoError(t, err)
	assert.Equal(t, int64(12000), report.TotalCredit)
	assert.Equal(t, int64(2000), report.TotalRepaid)
	assert.Equal(t, int64(10000), report.Outstanding)
	assert.Equal(t, int64(2), report.DebtorCount)
	require.Len(t, report.TopDebtors, 2)
	assert.Equal(t, "Bola", report.TopDebtors[0].Name)

	list, err := repos.Debtor.ListEntries(1, ada.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.CreditKindRepayment, list[0].Kind)

	_, err = repos.Debtor.GetForUser(1, stranger.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
