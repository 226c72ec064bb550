package persistence

import (
	"context"

	"gorm.io/gorm"

	appinv "github.com/motodesk/backend/internal/application/inventory"
	"github.com/motodesk/backend/internal/domain/inventory"
	"github.com/motodesk/backend/internal/domain/ledger"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// A lifecycle operation and the ledger entry it emits commit or roll back
// together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories exposes repositories scoped to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// VehicleRepo returns the vehicle repository scoped to the current transaction
func (r *gormTransactionalRepositories) VehicleRepo() inventory.VehicleRepository {
	return NewGormVehicleRepository(r.tx)
}

// LedgerRepo returns the ledger repository scoped to the current transaction
func (r *gormTransactionalRepositories) LedgerRepo() ledger.TransactionRepository {
	return NewGormCashTransactionRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
