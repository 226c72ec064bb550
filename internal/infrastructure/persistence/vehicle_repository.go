package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/motodesk/backend/internal/domain/inventory"
	"github.com/motodesk/backend/internal/infrastructure/persistence/models"
)

// GormVehicleRepository implements inventory.VehicleRepository using GORM.
// Cost events and the disposal record travel with the aggregate.
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID finds a vehicle by ID within an organization. Cost events are
// loaded in occurrence order.
func (r *GormVehicleRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*inventory.Vehicle, error) {
	var model models.VehicleModel
	if err := r.db.WithContext(ctx).
		Preload("CostEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at ASC")
		}).
		Preload("Disposal").
		Where("org_id = ? AND id = ?", orgID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOrg lists vehicles for an organization with filtering and paging
func (r *GormVehicleRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter inventory.VehicleFilter) ([]inventory.Vehicle, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.VehicleModel{}).
		Where("org_id = ?", orgID)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(make) LIKE ? OR LOWER(model) LIKE ? OR LOWER(reg_number) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var rows []models.VehicleModel
	if err := query.
		Preload("CostEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at ASC")
		}).
		Preload("Disposal").
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	vehicles := make([]inventory.Vehicle, 0, len(rows))
	for i := range rows {
		vehicles = append(vehicles, *rows[i].ToDomain())
	}
	return vehicles, total, nil
}

// Save creates or updates the aggregate including its child records.
// Existing cost events are immutable so re-saving them is a no-op upsert.
func (r *GormVehicleRepository) Save(ctx context.Context, v *inventory.Vehicle) error {
	model := models.VehicleModelFromDomain(v)
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(model).Error
}

// Delete removes the vehicle and its child records. Ledger entries that
// reference the vehicle are deliberately left behind.
func (r *GormVehicleRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vehicle_id = ?", id).Delete(&models.CostEventModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vehicle_id = ?", id).Delete(&models.DisposalRecordModel{}).Error; err != nil {
			return err
		}
		return tx.Where("org_id = ? AND id = ?", orgID, id).Delete(&models.VehicleModel{}).Error
	})
}

// CountByStatus returns how many vehicles an organization holds per status
func (r *GormVehicleRepository) CountByStatus(ctx context.Context, orgID uuid.UUID) (map[inventory.VehicleStatus]int64, error) {
	var rows []struct {
		Status inventory.VehicleStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.VehicleModel{}).
		Select("status, COUNT(*) as count").
		Where("org_id = ?", orgID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[inventory.VehicleStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Ensure GormVehicleRepository implements VehicleRepository
var _ inventory.VehicleRepository = (*GormVehicleRepository)(nil)
