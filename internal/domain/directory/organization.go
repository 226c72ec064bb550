package directory

import (
	"strings"

	"github.com/motodesk/backend/internal/domain/shared"
)

// Organization is the tenancy unit: one dealership. All vehicles, ledger
// entries and actors are scoped to exactly one organization.
type Organization struct {
	shared.BaseAggregateRoot
	Name string
}

// NewOrganization creates an organization at signup
func NewOrganization(name string) (*Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Organization name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Organization name cannot exceed 200 characters")
	}

	return &Organization{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}
