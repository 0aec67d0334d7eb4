package repository

import (
	"github.com/ManuelReschke/ShopLedger/app/models"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(sale *models.Sale) error {
	return r.db.Create(sale).Error
}

// ListByUser returns the user's sales, newest first
func (r *saleRepository) ListByUser(userID uint, period Period) ([]models.Sale, error) {
	var sales []models.Sale
	q := period.apply(r.db.Where("user_id = ?", userID), "sold_at")
	err := q.Order("sold_at DESC").Order("id DESC").Find(&sales).Error
	return sales, err
}

// DeleteForUser deletes a sale owned by userID. Sales of other users are
// reported as gorm.ErrRecordNotFound.
func (r *saleRepository) DeleteForUser(userID, id uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Sale{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
