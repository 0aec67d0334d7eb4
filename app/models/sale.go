package models

import "time"

// Sale is a single recorded sale. Amounts are in minor currency units.
type Sale struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_sales_user_sold,priority:1" json:"userId"`
	Item         string    `gorm:"type:varchar(200);not null" json:"item"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	UnitPrice    int64     `gorm:"not null" json:"unitPrice"`
	Amount       int64     `gorm:"not null" json:"amount"`
	CustomerName string    `gorm:"type:varchar(150);not null;default:''" json:"customerName"`
	SoldAt       time.Time `gorm:"not null;index:idx_sales_user_sold,priority:2" json:"soldAt"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (s Sale) OccurredAt() time.Time { return s.SoldAt }

func (s Sale) Total() int64 { return s.Amount }
