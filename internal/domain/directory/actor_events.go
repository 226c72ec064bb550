package directory

import (
	"github.com/google/uuid"

	"github.com/motodesk/backend/internal/domain/access"
	"github.com/motodesk/backend/internal/domain/shared"
)

// ActorInvitedEvent is raised when an actor joins an organization
type ActorInvitedEvent struct {
	shared.BaseDomainEvent
	ActorID uuid.UUID   `json:"actor_id"`
	Email   string      `json:"email"`
	Role    access.Role `json:"role"`
}

// EventType returns the event type name
func (e *ActorInvitedEvent) EventType() string {
	return "ActorInvited"
}

// NewActorInvitedEvent creates a new ActorInvitedEvent
func NewActorInvitedEvent(a *Actor) *ActorInvitedEvent {
	return &ActorInvitedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ActorInvited", "Actor", a.ID, a.OrgID),
		ActorID:         a.ID,
		Email:           a.Email,
		Role:            a.Role,
	}
}

// ActorRoleChangedEvent is raised when an actor's role changes
type ActorRoleChangedEvent struct {
	shared.BaseDomainEvent
	ActorID      uuid.UUID   `json:"actor_id"`
	PreviousRole access.Role `json:"previous_role"`
	NewRole      access.Role `json:"new_role"`
}

// EventType returns the event type name
func (e *ActorRoleChangedEvent) EventType() string {
	return "ActorRoleChanged"
}

// NewActorRoleChangedEvent creates a new ActorRoleChangedEvent
func NewActorRoleChangedEvent(a *Actor, previous access.Role) *ActorRoleChangedEvent {
	return &ActorRoleChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ActorRoleChanged", "Actor", a.ID, a.OrgID),
		ActorID:         a.ID,
		PreviousRole:    previous,
		NewRole:         a.Role,
	}
}
