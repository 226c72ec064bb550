package persistence

import (
	"context"

	"gorm.io/gorm"

	appdir "github.com/motodesk/backend/internal/application/directory"
	"github.com/motodesk/backend/internal/domain/directory"
)

// GormDirectoryScope implements the directory TransactionScope using GORM
// transactions. An organization and its founding actor commit or roll back
// together.
type GormDirectoryScope struct {
	db *gorm.DB
}

// NewGormDirectoryScope creates a new GormDirectoryScope
func NewGormDirectoryScope(db *gorm.DB) *GormDirectoryScope {
	return &GormDirectoryScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormDirectoryScope) Execute(ctx context.Context, fn func(repos appdir.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormDirectoryRepositories{tx: tx}
		return fn(repos)
	})
}

// gormDirectoryRepositories exposes repositories scoped to one transaction
type gormDirectoryRepositories struct {
	tx *gorm.DB
}

// ActorRepo returns the actor repository scoped to the current transaction
func (r *gormDirectoryRepositories) ActorRepo() directory.ActorRepository {
	return NewGormActorRepository(r.tx)
}

// OrgRepo returns the organization repository scoped to the current transaction
func (r *gormDirectoryRepositories) OrgRepo() directory.OrganizationRepository {
	return NewGormOrganizationRepository(r.tx)
}

// Ensure GormDirectoryScope implements TransactionScope
var _ appdir.TransactionScope = (*GormDirectoryScope)(nil)

// Ensure gormDirectoryRepositories implements TransactionalRepositories
var _ appdir.TransactionalRepositories = (*gormDirectoryRepositories)(nil)
