package ledger

import (
	"context"

	"github.com/google/uuid"
)

// TransactionRepository is the append-only store for ledger entries.
// There is deliberately no update or delete: once written, an entry is
// immutable even if the vehicle it references is later removed.
type TransactionRepository interface {
	// Append persists a new entry and assigns its insertion sequence
	Append(ctx context.Context, tx *Transaction) error
	// FindByID finds an entry by ID within an organization
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Transaction, error)
	// FindAllForOrg returns the full log for an organization ordered by
	// occurred_at descending, ties broken by insertion sequence descending
	FindAllForOrg(ctx context.Context, orgID uuid.UUID) ([]Transaction, error)
	// FindByVehicle returns entries referencing a vehicle, newest first
	FindByVehicle(ctx context.Context, orgID, vehicleID uuid.UUID) ([]Transaction, error)
}
