package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/motodesk/backend/internal/domain/access"
	"github.com/motodesk/backend/internal/domain/directory"
	"github.com/motodesk/backend/internal/infrastructure/persistence/models"
)

// GormActorRepository implements directory.ActorRepository using GORM
type GormActorRepository struct {
	db *gorm.DB
}

// NewGormActorRepository creates a new GormActorRepository
func NewGormActorRepository(db *gorm.DB) *GormActorRepository {
	return &GormActorRepository{db: db}
}

// FindByID finds an actor by ID within an organization
func (r *GormActorRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*directory.Actor, error) {
	var model models.ActorModel
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail searches across all organizations. Returns (nil, nil) when no
// actor carries the email, matching the other finders in this package.
func (r *GormActorRepository) FindByEmail(ctx context.Context, email string) (*directory.Actor, error) {
	var model models.ActorModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOrg lists the organization's actors ordered by creation time
func (r *GormActorRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID) ([]directory.Actor, error) {
	var rows []models.ActorModel
	if err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	actors := make([]directory.Actor, 0, len(rows))
	for i := range rows {
		actors = append(actors, *rows[i].ToDomain())
	}
	return actors, nil
}

// CountFullAccess counts the organization's full-access actors, optionally
// excluding one. The directory service uses this to guard the last
// full-access actor.
func (r *GormActorRepository) CountFullAccess(ctx context.Context, orgID uuid.UUID, excludeID *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ActorModel{}).
		Where("org_id = ? AND role = ?", orgID, access.RoleFullAccess)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an actor
func (r *GormActorRepository) Save(ctx context.Context, a *directory.Actor) error {
	model := models.ActorModelFromDomain(a)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an actor from an organization
func (r *GormActorRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&models.ActorModel{}).Error
}

// Ensure GormActorRepository implements ActorRepository
var _ directory.ActorRepository = (*GormActorRepository)(nil)

// GormOrganizationRepository implements directory.OrganizationRepository using GORM
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewGormOrganizationRepository creates a new GormOrganizationRepository
func NewGormOrganizationRepository(db *gorm.DB) *GormOrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Organization, error) {
	var model models.OrganizationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an organization
func (r *GormOrganizationRepository) Save(ctx context.Context, org *directory.Organization) error {
	model := models.OrganizationModelFromDomain(org)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormOrganizationRepository implements OrganizationRepository
var _ directory.OrganizationRepository = (*GormOrganizationRepository)(nil)
