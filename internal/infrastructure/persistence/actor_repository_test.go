package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/motodesk/backend/internal/domain/access"
	"github.com/motodesk/backend/internal/domain/directory"
	"github.com/motodesk/backend/internal/infrastructure/persistence/models"
)

func setupDirectoryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.OrganizationModel{}, &models.ActorModel{})
	require.NoError(t, err)

	return db
}

func newDirectoryActor(t *testing.T, orgID uuid.UUID, email string, role access.Role) *directory.Actor {
	a, err := directory.NewActor(orgID, email, "Test Actor", "password123", role)
	require.NoError(t, err)
	return a
}

func TestGormActorRepository_FindByEmail(t *testing.T) {
	db := setupDirectoryTestDB(t)
	repo := NewGormActorRepository(db)
	ctx := context.Background()

	t.Run("finds actor regardless of organization", func(t *testing.T) {
		orgID := uuid.New()
		a := newDirectoryActor(t, orgID, "owner@motodesk.test", access.RoleFullAccess)
		require.NoError(t, repo.Save(ctx, a))

		found, err := repo.FindByEmail(ctx, "owner@motodesk.test")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, a.ID, found.ID)
		assert.Equal(t, orgID, found.OrgID)
		assert.True(t, found.VerifyPassword("password123"))
	})

	t.Run("normalizes the lookup email", func(t *testing.T) {
		a := newDirectoryActor(t, uuid.New(), "mixed@motodesk.test", access.RoleRestricted)
		require.NoError(t, repo.Save(ctx, a))

		found, err := repo.FindByEmail(ctx, "  MIXED@motodesk.test ")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, a.ID, found.ID)
	})

	t.Run("returns nil without error for unknown email", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "nobody@motodesk.test")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestGormActorRepository_FindByID(t *testing.T) {
	db := setupDirectoryTestDB(t)
	repo := NewGormActorRepository(db)
	ctx := context.Background()

	orgID := uuid.New()
	a := newDirectoryActor(t, orgID, "staff@motodesk.test", access.RoleReadOnly)
	require.NoError(t, repo.Save(ctx, a))

	t.Run("finds within organization", func(t *testing.T) {
		found, err := repo.FindByID(ctx, orgID, a.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, access.RoleReadOnly, found.Role)
	})

	t.Run("returns nil across organizations", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New(), a.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestGormActorRepository_CountFullAccess(t *testing.T) {
	db := setupDirectoryTestDB(t)
	repo := NewGormActorRepository(db)
	ctx := context.Background()

	orgID := uuid.New()
	owner := newDirectoryActor(t, orgID, "owner@dealer.test", access.RoleFullAccess)
	partner := newDirectoryActor(t, orgID, "partner@dealer.test", access.RoleFullAccess)
	staff := newDirectoryActor(t, orgID, "staff@dealer.test", access.RoleRestricted)
	require.NoError(t, repo.Save(ctx, owner))
	require.NoError(t, repo.Save(ctx, partner))
	require.NoError(t, repo.Save(ctx, staff))

	t.Run("counts full access actors", func(t *testing.T) {
		count, err := repo.CountFullAccess(ctx, orgID, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("excludes the given actor", func(t *testing.T) {
		count, err := repo.CountFullAccess(ctx, orgID, &owner.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("scopes to the organization", func(t *testing.T) {
		count, err := repo.CountFullAccess(ctx, uuid.New(), nil)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestGormActorRepository_SaveUpdatesRole(t *testing.T) {
	db := setupDirectoryTestDB(t)
	repo := NewGormActorRepository(db)
	ctx := context.Background()

	orgID := uuid.New()
	a := newDirectoryActor(t, orgID, "promote@dealer.test", access.RoleRestricted)
	require.NoError(t, repo.Save(ctx, a))

	require.NoError(t, a.ChangeRole(access.RoleFullAccess))
	require.NoError(t, repo.Save(ctx, a))

	found, err := repo.FindByID(ctx, orgID, a.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, access.RoleFullAccess, found.Role)
}

func TestGormActorRepository_Delete(t *testing.T) {
	db := setupDirectoryTestDB(t)
	repo := NewGormActorRepository(db)
	ctx := context.Background()

	orgID := uuid.New()
	a := newDirectoryActor(t, orgID, "leaver@dealer.test", access.RoleReadOnly)
	require.NoError(t, repo.Save(ctx, a))

	require.NoError(t, repo.Delete(ctx, orgID, a.ID))

	found, err := repo.FindByID(ctx, orgID, a.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGormActorRepository_FindAllForOrg(t *testing.T) {
	db := setupDirectoryTestDB(t)
	repo := NewGormActorRepository(db)
	ctx := context.Background()

	orgID := uuid.New()
	require.NoError(t, repo.Save(ctx, newDirectoryActor(t, orgID, "one@dealer.test", access.RoleFullAccess)))
	require.NoError(t, repo.Save(ctx, newDirectoryActor(t, orgID, "two@dealer.test", access.RoleReadOnly)))
	require.NoError(t, repo.Save(ctx, newDirectoryActor(t, uuid.New(), "other@dealer.test", access.RoleFullAccess)))

	actors, err := repo.FindAllForOrg(ctx, orgID)
	require.NoError(t, err)
	assert.Len(t, actors, 2)
}

func TestGormOrganizationRepository(t *testing.T) {
	db := setupDirectoryTestDB(t)
	repo := NewGormOrganizationRepository(db)
	ctx := context.Background()

	t.Run("saves and finds an organization", func(t *testing.T) {
		org, err := directory.NewOrganization("Patil Motors")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, org))

		found, err := repo.FindByID(ctx, org.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Patil Motors", found.Name)
	})

	t.Run("returns nil for unknown organization", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
