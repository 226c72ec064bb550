package directory

import (
	"context"

	"github.com/google/uuid"
)

// ActorRepository persists actors. Email lookups span all organizations
// because an email identifies at most one actor system-wide.
type ActorRepository interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Actor, error)
	// FindByEmail searches across organizations; returns (nil, nil) when no
	// actor carries the email
	FindByEmail(ctx context.Context, email string) (*Actor, error)
	FindAllForOrg(ctx context.Context, orgID uuid.UUID) ([]Actor, error)
	// CountFullAccess counts the organization's full-access actors,
	// optionally excluding one actor (the one about to change or leave)
	CountFullAccess(ctx context.Context, orgID uuid.UUID, excludeID *uuid.UUID) (int64, error)
	Save(ctx context.Context, a *Actor) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// OrganizationRepository persists organizations
type OrganizationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	Save(ctx context.Context, org *Organization) error
}
