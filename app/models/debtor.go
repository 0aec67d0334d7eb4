package models

import "time"

const (
	CreditKindCredit    = "credit"
	CreditKindRepayment = "repayment"
)

// Debtor is a customer who buys on credit.
type Debtor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(40);not null;default:''" json:"phone"`
	Note      string    `gorm:"type:text" json:"note"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// CreditEntry records goods given on credit or a repayment against a debtor.
type CreditEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DebtorID    uint      `gorm:"not null;index" json:"debtorId"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	Kind        string    `gorm:"type:varchar(16);not null" json:"kind"`
	Amount      int64     `gorm:"not null" json:"amount"`
	Description string    `gorm:"type:varchar(255);not null;default:''" json:"description"`
	OccurredAt  time.Time `gorm:"not null;index" json:"occurredAt"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// SignedAmount is positive for credit and negative for repayments.
func (e CreditEntry) SignedAmount() int64 {
	if e.Kind == CreditKindRepayment {
		return -e.Amount
	}
	return e.Amount
}
