package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/motodesk/backend/internal/domain/access"
	"github.com/motodesk/backend/internal/domain/directory"
	"github.com/motodesk/backend/internal/infrastructure/auth"
	"github.com/motodesk/backend/internal/infrastructure/config"
)

// MockOrganizationRepository is a mock implementation of directory.OrganizationRepository
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Save(ctx context.Context, org *directory.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func newAuthService(actorRepo *MockActorRepository, orgRepo *MockOrganizationRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "motodesk-test",
		MaxRefreshCount:        10,
	})
	scope := NewNoOpTransactionScope(actorRepo, orgRepo)
	return NewAuthService(scope, actorRepo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func TestAuthService_Signup_BootstrapsOrgWithFullAccessActor(t *testing.T) {
	actorRepo := new(MockActorRepository)
	orgRepo := new(MockOrganizationRepository)
	service := newAuthService(actorRepo, orgRepo)

	actorRepo.On("FindByEmail", mock.Anything, "owner@motodesk.test").Return(nil, nil)
	orgRepo.On("Save", mock.Anything, mock.AnythingOfType("*directory.Organization")).Return(nil)
	actorRepo.On("Save", mock.Anything, mock.MatchedBy(func(a *directory.Actor) bool {
		return a.Role == access.RoleFullAccess
	})).Return(nil)

	resp, err := service.Signup(context.Background(), SignupRequest{
		OrganizationName: "Sharma Motors",
		Email:            "owner@motodesk.test",
		DisplayName:      "Anil Sharma",
		Password:         "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "FULL_ACCESS", resp.Actor.Role)
	assert.NotEqual(t, uuid.Nil, resp.OrgID)
}

func TestAuthService_Signup_ActorSaveFailureAbortsSignup(t *testing.T) {
	actorRepo := new(MockActorRepository)
	orgRepo := new(MockOrganizationRepository)
	service := newAuthService(actorRepo, orgRepo)

	boom := errors.New("actor insert refused")
	actorRepo.On("FindByEmail", mock.Anything, "owner@motodesk.test").Return(nil, nil)
	orgRepo.On("Save", mock.Anything, mock.AnythingOfType("*directory.Organization")).Return(nil)
	actorRepo.On("Save", mock.Anything, mock.AnythingOfType("*directory.Actor")).Return(boom)

	_, err := service.Signup(context.Background(), SignupRequest{
		OrganizationName: "Sharma Motors",
		Email:            "owner@motodesk.test",
		DisplayName:      "Anil Sharma",
		Password:         "password123",
	})

	require.ErrorIs(t, err, boom)
}

func TestAuthService_Signup_DuplicateEmailConflicts(t *testing.T) {
	actorRepo := new(MockActorRepository)
	orgRepo := new(MockOrganizationRepository)
	service := newAuthService(actorRepo, orgRepo)
	existing := testActor(t, uuid.New(), "owner@motodesk.test", access.RoleFullAccess)

	actorRepo.On("FindByEmail", mock.Anything, "owner@motodesk.test").Return(existing, nil)

	_, err := service.Signup(context.Background(), SignupRequest{
		OrganizationName: "Sharma Motors",
		Email:            "owner@motodesk.test",
		DisplayName:      "Anil Sharma",
		Password:         "password123",
	})

	assertCode(t, err, "CONFLICT")
	orgRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	actorRepo := new(MockActorRepository)
	orgRepo := new(MockOrganizationRepository)
	service := newAuthService(actorRepo, orgRepo)
	actor := testActor(t, uuid.New(), "owner@motodesk.test", access.RoleFullAccess)

	actorRepo.On("FindByEmail", mock.Anything, "owner@motodesk.test").Return(actor, nil)

	resp, err := service.Login(context.Background(), LoginRequest{
		Email:    "owner@motodesk.test",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, actor.OrgID, resp.OrgID)
	assert.Equal(t, actor.ID, resp.Actor.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	actorRepo := new(MockActorRepository)
	orgRepo := new(MockOrganizationRepository)
	service := newAuthService(actorRepo, orgRepo)
	actor := testActor(t, uuid.New(), "owner@motodesk.test", access.RoleFullAccess)

	actorRepo.On("FindByEmail", mock.Anything, "owner@motodesk.test").Return(actor, nil)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "owner@motodesk.test",
		Password: "wrong-password",
	})

	assertCode(t, err, "INVALID_CREDENTIALS")
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	actorRepo := new(MockActorRepository)
	orgRepo := new(MockOrganizationRepository)
	service := newAuthService(actorRepo, orgRepo)

	actorRepo.On("FindByEmail", mock.Anything, "nobody@motodesk.test").Return(nil, nil)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "nobody@motodesk.test",
		Password: "password123",
	})

	assertCode(t, err, "INVALID_CREDENTIALS")
}

func TestAuthService_Refresh_PicksUpRoleChange(t *testing.T) {
	actorRepo := new(MockActorRepository)
	orgRepo := new(MockOrganizationRepository)
	service := newAuthService(actorRepo, orgRepo)
	actor := testActor(t, uuid.New(), "member@motodesk.test", access.RoleFullAccess)

	actorRepo.On("FindByEmail", mock.Anything, "member@motodesk.test").Return(actor, nil)
	actorRepo.On("FindByID", mock.Anything, actor.OrgID, actor.ID).Return(actor, nil)

	login, err := service.Login(context.Background(), LoginRequest{
		Email:    "member@motodesk.test",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, actor.ChangeRole(access.RoleRestricted))

	resp, err := service.Refresh(context.Background(), RefreshRequest{RefreshToken: login.RefreshToken})

	require.NoError(t, err)
	assert.Equal(t, "RESTRICTED", resp.Actor.Role)
}

func TestAuthService_Logout_BlacklistsToken(t *testing.T) {
	actorRepo := new(MockActorRepository)
	orgRepo := new(MockOrganizationRepository)
	service := newAuthService(actorRepo, orgRepo)
	actor := testActor(t, uuid.New(), "owner@motodesk.test", access.RoleFullAccess)

	actorRepo.On("FindByEmail", mock.Anything, "owner@motodesk.test").Return(actor, nil)

	resp, err := service.Login(context.Background(), LoginRequest{
		Email:    "owner@motodesk.test",
		Password: "password123",
	})
	require.NoError(t, err)

	claims, err := service.jwt.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), claims))

	blacklisted, err := service.blacklist.IsBlacklisted(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, blacklisted)
}
