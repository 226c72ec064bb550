package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	directoryapp "github.com/motodesk/backend/internal/application/directory"
	"github.com/motodesk/backend/internal/domain/access"
	"github.com/motodesk/backend/internal/domain/directory"
	"github.com/motodesk/backend/internal/infrastructure/auth"
	"github.com/motodesk/backend/internal/infrastructure/config"
	"github.com/motodesk/backend/internal/interfaces/http/middleware"
)

// memoryBlacklist is an in-memory auth.TokenBlacklist for tests
type memoryBlacklist struct {
	mu   sync.Mutex
	jtis map[string]struct{}
}

func newMemoryBlacklist() *memoryBlacklist {
	return &memoryBlacklist{jtis: make(map[string]struct{})}
}

func (b *memoryBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jtis[jti] = struct{}{}
	return nil
}

func (b *memoryBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.jtis[jti]
	return ok, nil
}

func (b *memoryBlacklist) AddActorTokensToBlacklist(ctx context.Context, actorID string, ttl time.Duration) error {
	return nil
}

func (b *memoryBlacklist) IsActorTokenInvalidated(ctx context.Context, actorID string, tokenIssuedAt time.Time) (bool, error) {
	return false, nil
}

type authTestEnv struct {
	router    *gin.Engine
	actorRepo *mockActorRepo
	orgRepo   *mockOrgRepo
	jwt       *auth.JWTService
	blacklist *memoryBlacklist
	service   *directoryapp.AuthService
}

func setupAuthTest(t *testing.T) *authTestEnv {
	t.Helper()

	env := &authTestEnv{
		actorRepo: newMockActorRepo(),
		orgRepo:   newMockOrgRepo(),
		blacklist: newMemoryBlacklist(),
	}
	env.jwt = auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	})
	scope := directoryapp.NewNoOpTransactionScope(env.actorRepo, env.orgRepo)
	env.service = directoryapp.NewAuthService(scope, env.actorRepo, env.jwt, env.blacklist, zap.NewNop())

	h := NewAuthHandler(env.service)
	router := gin.New()
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)
	env.router = router

	return env
}

func (e *authTestEnv) signup(t *testing.T, email string) directoryapp.AuthResponse {
	t.Helper()
	w := postJSON(e.router, "/api/v1/auth/signup", map[string]any{
		"organization_name": "Patil Motors",
		"email":             email,
		"display_name":      "Anil Patil",
		"password":          "showroom-pass",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeResponse(t, w)
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var authResp directoryapp.AuthResponse
	require.NoError(t, json.Unmarshal(raw, &authResp))
	return authResp
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("creates organization with full access founder", func(t *testing.T) {
		env := setupAuthTest(t)

		resp := env.signup(t, "owner@patilmotors.in")

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "FULL_ACCESS", resp.Actor.Role)
		assert.Len(t, env.orgRepo.orgs, 1)
		assert.Len(t, env.actorRepo.actors, 1)

		claims, err := env.jwt.ValidateAccessToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, resp.OrgID.String(), claims.OrgID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		env := setupAuthTest(t)
		env.signup(t, "owner@patilmotors.in")

		w := postJSON(env.router, "/api/v1/auth/signup", map[string]any{
			"organization_name": "Another Showroom",
			"email":             "owner@patilmotors.in",
			"display_name":      "Someone Else",
			"password":          "showroom-pass",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})

	t.Run("rejects short password", func(t *testing.T) {
		env := setupAuthTest(t)

		w := postJSON(env.router, "/api/v1/auth/signup", map[string]any{
			"organization_name": "Patil Motors",
			"email":             "owner@patilmotors.in",
			"display_name":      "Anil Patil",
			"password":          "short",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		env := setupAuthTest(t)
		env.signup(t, "owner@patilmotors.in")

		w := postJSON(env.router, "/api/v1/auth/login", map[string]any{
			"email":    "owner@patilmotors.in",
			"password": "showroom-pass",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "access_token")
	})

	t.Run("wrong password", func(t *testing.T) {
		env := setupAuthTest(t)
		env.signup(t, "owner@patilmotors.in")

		w := postJSON(env.router, "/api/v1/auth/login", map[string]any{
			"email":    "owner@patilmotors.in",
			"password": "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
	})

	t.Run("unknown email", func(t *testing.T) {
		env := setupAuthTest(t)

		w := postJSON(env.router, "/api/v1/auth/login", map[string]any{
			"email":    "nobody@patilmotors.in",
			"password": "showroom-pass",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("valid refresh token", func(t *testing.T) {
		env := setupAuthTest(t)
		signup := env.signup(t, "owner@patilmotors.in")

		w := postJSON(env.router, "/api/v1/auth/refresh", map[string]any{
			"refresh_token": signup.RefreshToken,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "access_token")
	})

	t.Run("garbage refresh token", func(t *testing.T) {
		env := setupAuthTest(t)

		w := postJSON(env.router, "/api/v1/auth/refresh", map[string]any{
			"refresh_token": "not-a-token",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_INVALID")
	})

	t.Run("refresh picks up role change", func(t *testing.T) {
		env := setupAuthTest(t)
		signup := env.signup(t, "owner@patilmotors.in")

		// Invite a second full-access actor so the founder can be demoted
		second, err := directory.NewActor(signup.OrgID, "partner@patilmotors.in", "Sunil Patil", "showroom-pass", access.RoleFullAccess)
		require.NoError(t, err)
		require.NoError(t, env.actorRepo.Save(t.Context(), second))

		founder := env.actorRepo.actors[signup.Actor.ID]
		require.NoError(t, founder.ChangeRole(access.RoleReadOnly))

		w := postJSON(env.router, "/api/v1/auth/refresh", map[string]any{
			"refresh_token": signup.RefreshToken,
		})

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		raw, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		var refreshed directoryapp.AuthResponse
		require.NoError(t, json.Unmarshal(raw, &refreshed))

		claims, err := env.jwt.ValidateAccessToken(refreshed.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "READ_ONLY", claims.Role)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("blacklists the presented token", func(t *testing.T) {
		env := setupAuthTest(t)
		signup := env.signup(t, "owner@patilmotors.in")

		claims, err := env.jwt.ValidateAccessToken(signup.AccessToken)
		require.NoError(t, err)

		router := gin.New()
		api := router.Group("/api/v1")
		api.Use(func(c *gin.Context) {
			c.Set(middleware.JWTClaimsKey, claims)
			c.Next()
		})
		NewAuthHandler(env.service).RegisterRoutes(api)

		w := postJSON(router, "/api/v1/auth/logout", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		blacklisted, err := env.blacklist.IsBlacklisted(t.Context(), claims.ID)
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("without claims is unauthorized", func(t *testing.T) {
		env := setupAuthTest(t)

		w := postJSON(env.router, "/api/v1/auth/logout", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("returns the authenticated actor", func(t *testing.T) {
		env := setupAuthTest(t)
		signup := env.signup(t, "owner@patilmotors.in")

		router := gin.New()
		api := router.Group("/api/v1")
		api.Use(authStub(signup.OrgID, signup.Actor.ID, access.RoleFullAccess))
		NewAuthHandler(env.service).RegisterRoutes(api)

		w := getPath(router, "/api/v1/auth/me")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "owner@patilmotors.in")
	})

	t.Run("actor removed after token issued", func(t *testing.T) {
		env := setupAuthTest(t)
		signup := env.signup(t, "owner@patilmotors.in")
		delete(env.actorRepo.actors, signup.Actor.ID)

		router := gin.New()
		api := router.Group("/api/v1")
		api.Use(authStub(signup.OrgID, signup.Actor.ID, access.RoleFullAccess))
		NewAuthHandler(env.service).RegisterRoutes(api)

		w := getPath(router, "/api/v1/auth/me")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
