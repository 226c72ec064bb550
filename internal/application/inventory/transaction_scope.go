package inventory

import (
	"context"

	"github.com/motodesk/backend/internal/domain/inventory"
	"github.com/motodesk/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to the vehicle store and
// the cash ledger. Every lifecycle operation that emits a ledger entry runs
// inside a scope so the vehicle mutation and the ledger append commit or
// roll back as one unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories touched by a
// lifecycle operation. All repositories returned share the same underlying
// database transaction.
//
// Aggregate Boundary Notes:
//   - VehicleRepo: Repository for the Vehicle aggregate root. Cost events
//     and the disposal record are child entities persisted with the root.
//   - LedgerRepo: Append-only repository for cash ledger entries. Lifecycle
//     operations may append at most one entry per invocation.
type TransactionalRepositories interface {
	// VehicleRepo returns the vehicle repository scoped to the current transaction
	VehicleRepo() inventory.VehicleRepository
	// LedgerRepo returns the ledger repository scoped to the current transaction
	LedgerRepo() ledger.TransactionRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	vehicleRepo inventory.VehicleRepository
	ledgerRepo  ledger.TransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	vehicleRepo inventory.VehicleRepository,
	ledgerRepo ledger.TransactionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		vehicleRepo: vehicleRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// VehicleRepo returns the vehicle repository.
func (s *NoOpTransactionScope) VehicleRepo() inventory.VehicleRepository {
	return s.vehicleRepo
}

// LedgerRepo returns the ledger repository.
func (s *NoOpTransactionScope) LedgerRepo() ledger.TransactionRepository {
	return s.ledgerRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
