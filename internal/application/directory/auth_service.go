package directory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/motodesk/backend/internal/domain/access"
	"github.com/motodesk/backend/internal/domain/directory"
	"github.com/motodesk/backend/internal/domain/shared"
	"github.com/motodesk/backend/internal/infrastructure/auth"
)

// AuthService handles signup, login and session lifecycle. Signup is the
// only way an organization comes into existence: it creates the org and
// its first actor, who necessarily holds full access.
type AuthService struct {
	scope     TransactionScope
	actorRepo directory.ActorRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	scope TransactionScope,
	actorRepo directory.ActorRepository,
	jwt *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		scope:     scope,
		actorRepo: actorRepo,
		jwt:       jwt,
		blacklist: blacklist,
		logger:    logger,
	}
}

// SignupRequest creates an organization and its founding actor
type SignupRequest struct {
	OrganizationName string `json:"organization_name" binding:"required,max=200"`
	Email            string `json:"email" binding:"required,email"`
	DisplayName      string `json:"display_name" binding:"required"`
	Password         string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest authenticates an existing actor
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse carries the token pair and the authenticated actor
type AuthResponse struct {
	AccessToken           string        `json:"access_token"`
	RefreshToken          string        `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time     `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time     `json:"refresh_token_expires_at"`
	TokenType             string        `json:"token_type"`
	OrgID                 uuid.UUID     `json:"org_id"`
	Actor                 ActorResponse `json:"actor"`
}

// Signup creates a new organization together with its first actor. The
// founding actor always gets full access so the directory invariant holds
// from the first moment.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	existing, err := s.actorRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrConflict
	}

	org, err := directory.NewOrganization(req.OrganizationName)
	if err != nil {
		return nil, err
	}

	actor, err := directory.NewActor(org.ID, req.Email, req.DisplayName, req.Password, access.RoleFullAccess)
	if err != nil {
		return nil, err
	}

	// The organization and its founding actor must land together: an org
	// row without a full-access actor would violate the directory invariant.
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.OrgRepo().Save(ctx, org); err != nil {
			return err
		}
		return repos.ActorRepo().Save(ctx, actor)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Organization created",
		zap.String("org_id", org.ID.String()),
		zap.String("actor_id", actor.ID.String()))

	return s.issueTokens(actor)
}

// Login authenticates an actor by email and password
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	actor, err := s.actorRepo.FindByEmail(ctx, req.Email)
	if err != nil || actor == nil {
		s.logger.Warn("Login attempt for unknown email")
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !actor.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("actor_id", actor.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	s.logger.Info("Actor logged in",
		zap.String("org_id", actor.OrgID.String()),
		zap.String("actor_id", actor.ID.String()))

	return s.issueTokens(actor)
}

// Refresh exchanges a valid refresh token for a new token pair. The role
// is re-read from the store so a role change takes effect here.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	orgID, err := claims.GetOrgUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid organization ID in token")
	}
	actorID, err := claims.GetActorUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid actor ID in token")
	}

	actor, err := s.actorRepo.FindByID(ctx, orgID, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Actor no longer exists")
	}

	pair, err := s.jwt.RefreshTokenPair(req.RefreshToken, actor.Email, actor.Role.String())
	if err != nil {
		return nil, mapTokenError(err)
	}

	return &AuthResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		OrgID:                 actor.OrgID,
		Actor:                 *toActorResponse(actor),
	}, nil
}

// Logout revokes the presented access token by blacklisting its JTI for
// the remainder of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
	}

	s.logger.Info("Actor logged out", zap.String("actor_id", claims.ActorID))
	return nil
}

// CurrentActor returns the authenticated actor's directory record
func (s *AuthService) CurrentActor(ctx context.Context, orgID, actorID uuid.UUID) (*ActorResponse, error) {
	actor, err := s.actorRepo.FindByID(ctx, orgID, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Actor not found")
	}
	return toActorResponse(actor), nil
}

func (s *AuthService) issueTokens(actor *directory.Actor) (*AuthResponse, error) {
	pair, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		OrgID:   actor.OrgID,
		ActorID: actor.ID,
		Email:   actor.Email,
		Role:    actor.Role.String(),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &AuthResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		OrgID:                 actor.OrgID,
		Actor:                 *toActorResponse(actor),
	}, nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
}
