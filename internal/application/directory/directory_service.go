package directory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/motodesk/backend/internal/domain/access"
	"github.com/motodesk/backend/internal/domain/directory"
	"github.com/motodesk/backend/internal/domain/shared"
)

// Service manages the actors of one organization. It owns the directory
// invariant: an organization always keeps at least one full-access actor,
// so role downgrades and removals that would strand the organization are
// rejected before any state changes.
type Service struct {
	actorRepo directory.ActorRepository
	logger    *zap.Logger
}

// NewService creates a new directory Service
func NewService(actorRepo directory.ActorRepository, logger *zap.Logger) *Service {
	return &Service{
		actorRepo: actorRepo,
		logger:    logger,
	}
}

// ActorResponse represents an actor in API responses
type ActorResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InviteActorRequest represents a request to add an actor to the organization
type InviteActorRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	Role        string `json:"role" binding:"required,oneof=FULL_ACCESS RESTRICTED READ_ONLY"`
}

// ChangeRoleRequest represents a request to change an actor's role
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=FULL_ACCESS RESTRICTED READ_ONLY"`
}

// Invite adds a new actor to the organization. An email identifies at most
// one actor system-wide, so an invite for an email that exists anywhere
// fails with CONFLICT.
func (s *Service) Invite(ctx context.Context, orgID uuid.UUID, actingRole access.Role, req InviteActorRequest) (*ActorResponse, error) {
	if !access.Can(actingRole, access.CapabilityManageDirectory) {
		return nil, shared.ErrForbidden
	}

	existing, err := s.actorRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrConflict
	}

	actor, err := directory.NewActor(orgID, req.Email, req.DisplayName, req.Password, access.Role(req.Role))
	if err != nil {
		return nil, err
	}

	if err := s.actorRepo.Save(ctx, actor); err != nil {
		return nil, err
	}

	s.logger.Info("Actor invited",
		zap.String("org_id", orgID.String()),
		zap.String("actor_id", actor.ID.String()),
		zap.String("role", actor.Role.String()))

	return toActorResponse(actor), nil
}

// ChangeRole assigns a new role to an actor. Downgrading the last
// full-access actor fails with INVARIANT_VIOLATION and changes nothing.
func (s *Service) ChangeRole(ctx context.Context, orgID, actorID uuid.UUID, actingRole access.Role, req ChangeRoleRequest) (*ActorResponse, error) {
	if !access.Can(actingRole, access.CapabilityManageDirectory) {
		return nil, shared.ErrForbidden
	}

	actor, err := s.actorRepo.FindByID(ctx, orgID, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Actor not found")
	}

	newRole := access.Role(req.Role)
	if actor.HasFullAccess() && newRole != access.RoleFullAccess {
		remaining, err := s.actorRepo.CountFullAccess(ctx, orgID, &actorID)
		if err != nil {
			return nil, err
		}
		if remaining == 0 {
			return nil, shared.ErrInvariantViolation
		}
	}

	if err := actor.ChangeRole(newRole); err != nil {
		return nil, err
	}

	if err := s.actorRepo.Save(ctx, actor); err != nil {
		return nil, err
	}

	s.logger.Info("Actor role changed",
		zap.String("org_id", orgID.String()),
		zap.String("actor_id", actorID.String()),
		zap.String("role", newRole.String()))

	return toActorResponse(actor), nil
}

// Remove deletes an actor from the organization. Removing the last
// full-access actor fails with INVARIANT_VIOLATION and changes nothing.
func (s *Service) Remove(ctx context.Context, orgID, actorID uuid.UUID, actingRole access.Role) error {
	if !access.Can(actingRole, access.CapabilityManageDirectory) {
		return shared.ErrForbidden
	}

	actor, err := s.actorRepo.FindByID(ctx, orgID, actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return shared.NewDomainError("NOT_FOUND", "Actor not found")
	}

	if actor.HasFullAccess() {
		remaining, err := s.actorRepo.CountFullAccess(ctx, orgID, &actorID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return shared.ErrInvariantViolation
		}
	}

	if err := s.actorRepo.Delete(ctx, orgID, actorID); err != nil {
		return err
	}

	s.logger.Info("Actor removed",
		zap.String("org_id", orgID.String()),
		zap.String("actor_id", actorID.String()))

	return nil
}

// List returns all actors of the organization
func (s *Service) List(ctx context.Context, orgID uuid.UUID) ([]ActorResponse, error) {
	actors, err := s.actorRepo.FindAllForOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	responses := make([]ActorResponse, len(actors))
	for i := range actors {
		responses[i] = *toActorResponse(&actors[i])
	}
	return responses, nil
}

func toActorResponse(a *directory.Actor) *ActorResponse {
	return &ActorResponse{
		ID:          a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		Role:        a.Role.String(),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
