package repository

import (
	"github.com/ManuelReschke/ShopLedger/app/models"
	"gorm.io/gorm"
)

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(expense *models.Expense) error {
	return r.db.Create(expense).Error
}

// ListByUser returns the user's expenses, newest first
func (r *expenseRepository) ListByUser(userID uint, period Period) ([]models.Expense, error) {
	var expenses []models.Expense
	q := period.apply(r.db.Where("user_id = ?", userID), "spent_at")
	err := q.Order("spent_at DESC").Order("id DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) DeleteForUser(userID, id uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TotalsByCategory sums expenses per category, largest first
func (r *expenseRepository) TotalsByCategory(userID uint, period Period) ([]CategoryTotal, error) {
	var totals []CategoryTotal
	q := period.apply(r.db.Model(&models.Expense{}).Where("user_id = ?", userID), "spent_at")
	err := q.Select("category, SUM(amount) AS total, COUNT(*) AS count").
		Group("category").
		Order("total DESC").Order("category ASC").
		Scan(&totals).Error
	return totals, err
}
