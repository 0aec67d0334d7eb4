package repository

import (
	"time"

	"github.com/ManuelReschke/ShopLedger/app/models"
	"gorm.io/gorm"
)

// Period limits a listing to [From, To). Zero values leave that side open.
type Period struct {
	From time.Time
	To   time.Time
}

func (p Period) apply(db *gorm.DB, column string) *gorm.DB {
	if !p.From.IsZero() {
		db = db.Where(column+" >= ?", p.From)
	}
	if !p.To.IsZero() {
		db = db.Where(column+" < ?", p.To)
	}
	return db
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	TouchLastLogin(id uint, at time.Time) error
}

// SaleRepository defines the interface for sale-related database operations
type SaleRepository interface {
	Create(sale *models.Sale) error
	ListByUser(userID uint, period Period) ([]models.Sale, error)
	DeleteForUser(userID, id uint) error
}

// ExpenseRepository defines the interface for expense-related database operations
type ExpenseRepository interface {
	Create(expense *models.Expense) error
	ListByUser(userID uint, period Period) ([]models.Expense, error)
	DeleteForUser(userID, id uint) error
	TotalsByCategory(userID uint, period Period) ([]CategoryTotal, error)
}

// DebtorRepository defines the interface for debtors and their credit entries
type DebtorRepository interface {
	Create(debtor *models.Debtor) error
	GetForUser(userID, id uint) (*models.Debtor, error)
	ListWithBalances(userID uint) ([]DebtorBalance, error)
	AddEntry(entry *models.CreditEntry) error
	ListEntries(userID, debtorID uint) ([]models.CreditEntry, error)
	Report(userID uint) (*CreditReport, error)
}

// CategoryTotal is the summed expense amount of one category.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
	Count    int64  `json:"count"`
}

// DebtorBalance is a debtor with the sums of its credit entries.
type DebtorBalance struct {
	models.Debtor `gorm:"embedded"`
	TotalCredit   int64 `json:"totalCredit"`
	TotalRepaid   int64 `json:"totalRepaid"`
	Outstanding   int64 `gorm:"-" json:"outstanding"`
}

// CreditReport summarises all credit given by one user.
type CreditReport struct {
	TotalCredit int64           `json:"totalCredit"`
	TotalRepaid int64           `json:"totalRepaid"`
	Outstanding int64           `json:"outstanding"`
	DebtorCount int64           `json:"debtorCount"`
	TopDebtors  []DebtorBalance `gorm:"-" json:"topDebtors"`
}

// Repositories struct holds all repository instances
type Repositories struct {
	User    UserRepository
	Sale    SaleRepository
	Expense ExpenseRepository
	Debtor  DebtorRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Sale:    NewSaleRepository(db),
		Expense: NewExpenseRepository(db),
		Debtor:  NewDebtorRepository(db),
	}
}
