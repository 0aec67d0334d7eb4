package repository

import (
	"sort"

	"github.com/ManuelReschke/ShopLedger/app/models"
	"gorm.io/gorm"
)

const topDebtorsLimit = 5

type debtorRepository struct {
	db *gorm.DB
}

func NewDebtorRepository(db *gorm.DB) DebtorRepository {
	return &debtorRepository{db: db}
}

func (r *debtorRepository) Create(debtor *models.Debtor) error {
	return r.db.Create(debtor).Error
}

// GetForUser returns the debtor only if it belongs to userID
func (r *debtorRepository) GetForUser(userID, id uint) (*models.Debtor, error) {
	var d models.Debtor
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// ListWithBalances returns every debtor of the user with its credit and
// repayment sums, ordered by name.
func (r *debtorRepository) ListWithBalances(userID uint) ([]DebtorBalance, error) {
	var rows []DebtorBalance
	err := r.db.Model(&models.Debtor{}).
		Select(
			"debtors.*, "+
				"COALESCE(SUM(CASE WHEN credit_entries.kind = ? THEN credit_entries.amount ELSE 0 END), 0) AS total_credit, "+
				"COALESCE(SUM(CASE WHEN credit_entries.kind = ? THEN credit_entries.amount ELSE 0 END), 0) AS total_repaid",
			models.CreditKindCredit, models.CreditKindRepayment,
		).
		Joins("LEFT JOIN credit_entries ON credit_entries.debtor_id = debtors.id").
		Where("debtors.user_id = ?", userID).
		Group("debtors.id").
		Order("debtors.name ASC").Order("debtors.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Outstanding = rows[i].TotalCredit - rows[i].TotalRepaid
	}
	return rows, nil
}

func (r *debtorRepository) AddEntry(entry *models.CreditEntry) error {
	return r.db.Create(entry).Error
}

// ListEntries returns the entries of one debtor, newest first
func (r *debtorRepository) ListEntries(userID, debtorID uint) ([]models.CreditEntry, error) {
	var entries []models.CreditEntry
	err := r.db.Where("debtor_id = ? AND user_id = ?", debtorID, userID).
		Order("occurred_at DESC").Order("id DESC").
		Find(&entries).Error
	return entries, err
}

func (r *debtorRepository) Report(userID uint) (*CreditReport, error) {
	var report CreditReport
	err := r.db.Model(&models.CreditEntry{}).
		Select(
			"COALESCE(SUM(CASE WHEN kind = ? THEN amount ELSE 0 END), 0) AS total_credit, "+
				"COALESCE(SUM(CASE WHEN kind = ? THEN amount ELSE 0 END), 0) AS total_repaid, "+
				"COUNT(DISTINCT debtor_id) AS debtor_count",
			models.CreditKindCredit, models.CreditKindRepayment,
		).
		Where("user_id = ?", userID).
		Scan(&report).Error
	if err != nil {
		return nil, err
	}
	report.Outstanding = report.TotalCredit - report.TotalRepaid

	balances, err := r.ListWithBalances(userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(balances, func(i, j int) bool {
		return balances[i].Outstanding > balances[j].Outstanding
	})
	report.TopDebtors = make([]DebtorBalance, 0, topDebtorsLimit)
	for _, b := range balances {
		if b.Outstanding <= 0 || len(report.TopDebtors) == topDebtorsLimit {
			break
		}
		report.TopDebtors = append(report.TopDebtors, b)
	}
	return &report, nil
}
