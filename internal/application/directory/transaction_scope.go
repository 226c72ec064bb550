package directory

import (
	"context"

	"github.com/motodesk/backend/internal/domain/directory"
)

// TransactionScope provides transactional access to the directory store.
// Signup writes an organization and its founding actor together; running
// both inside a scope means an organization can never persist without the
// full-access actor that anchors its directory invariant.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the directory repositories.
// All repositories returned share the same underlying database transaction.
type TransactionalRepositories interface {
	// ActorRepo returns the actor repository scoped to the current transaction
	ActorRepo() directory.ActorRepository
	// OrgRepo returns the organization repository scoped to the current transaction
	OrgRepo() directory.OrganizationRepository
}

// NoOpTransactionScope runs the function against the given repositories
// without a real transaction. Useful for testing.
type NoOpTransactionScope struct {
	actorRepo directory.ActorRepository
	orgRepo   directory.OrganizationRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	actorRepo directory.ActorRepository,
	orgRepo directory.OrganizationRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		actorRepo: actorRepo,
		orgRepo:   orgRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ActorRepo returns the actor repository.
func (s *NoOpTransactionScope) ActorRepo() directory.ActorRepository {
	return s.actorRepo
}

// OrgRepo returns the organization repository.
func (s *NoOpTransactionScope) OrgRepo() directory.OrganizationRepository {
	return s.orgRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
