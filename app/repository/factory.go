package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetUserRepository returns the user repository instance
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetSaleRepository returns the sale repository instance
func (f *Factory) GetSaleRepository() SaleRepository {
	return f.GetRepositories().Sale
}

// GetExpenseRepository returns the expense repository instance
func (f *Factory) GetExpenseRepository() ExpenseRepository {
	return f.GetRepositories().Expense
}

// GetDebtorRepository returns the debtor repository instance
func (f *Factory) GetDebtorRepository() DebtorRepository {
	return f.GetRepositories().Debtor
}
