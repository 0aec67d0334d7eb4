package models

import "time"

// Expense is a business expense. Amounts are in minor currency units.
type Expense struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_expenses_user_spent,priority:1" json:"userId"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Category  string    `gorm:"type:varchar(100);not null;index" json:"category"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Note      string    `gorm:"type:text" json:"note"`
	SpentAt   time.Time `gorm:"not null;index:idx_expenses_user_spent,priority:2" json:"spentAt"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (e Expense) OccurredAt() time.Time { return e.SpentAt }

func (e Expense) Total() int64 { return e.Amount }
