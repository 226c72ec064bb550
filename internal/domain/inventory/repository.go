package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/motodesk/backend/internal/domain/shared"
)

// VehicleFilter defines filtering options for vehicle list queries
type VehicleFilter struct {
	Status   *VehicleStatus
	Search   string // matches make, model, reg number
	Page     int
	PageSize int
}

// VehicleRepository persists the Vehicle aggregate. Cost events and the
// disposal record are child entities saved through the aggregate root.
type VehicleRepository interface {
	// FindByID finds a vehicle by ID within an organization, cost events
	// ordered by occurrence
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Vehicle, error)
	// FindAllForOrg lists vehicles for an organization with filtering
	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter VehicleFilter) ([]Vehicle, int64, error)
	// Save creates or updates the aggregate, including its children
	Save(ctx context.Context, v *Vehicle) error
	// Delete removes the vehicle and its child records. Ledger entries
	// referencing the vehicle stay behind untouched.
	Delete(ctx context.Context, orgID, id uuid.UUID) error
	// CountByStatus returns how many vehicles an organization holds per status
	CountByStatus(ctx context.Context, orgID uuid.UUID) (map[VehicleStatus]int64, error)
}

// DefaultVehicleFilter returns a filter with default paging
func DefaultVehicleFilter() VehicleFilter {
	f := shared.DefaultFilter()
	return VehicleFilter{Page: f.Page, PageSize: f.PageSize}
}
