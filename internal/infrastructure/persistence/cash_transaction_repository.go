package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/motodesk/backend/internal/domain/ledger"
	"github.com/motodesk/backend/internal/infrastructure/persistence/models"
)

// GormCashTransactionRepository implements ledger.TransactionRepository using GORM.
// The store is append-only: no update or delete methods exist.
type GormCashTransactionRepository struct {
	db *gorm.DB
}

// NewGormCashTransactionRepository creates a new GormCashTransactionRepository
func NewGormCashTransactionRepository(db *gorm.DB) *GormCashTransactionRepository {
	return &GormCashTransactionRepository{db: db}
}

// Append persists a new ledger entry and assigns its insertion sequence.
// The sequence is monotonic per organization and breaks ordering ties
// between entries sharing an occurred_at timestamp.
func (r *GormCashTransactionRepository) Append(ctx context.Context, tx *ledger.Transaction) error {
	var maxSeq int64
	if err := r.db.WithContext(ctx).
		Model(&models.CashTransactionModel{}).
		Where("org_id = ?", tx.OrgID).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&maxSeq).Error; err != nil {
		return err
	}

	tx.Seq = maxSeq + 1

	model := models.CashTransactionModelFromDomain(tx)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds an entry by ID within an organization
func (r *GormCashTransactionRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*ledger.Transaction, error) {
	var model models.CashTransactionModel
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

// FindAllForOrg returns the organization's full log, newest first.
// Ties on occurred_at are broken by insertion sequence.
func (r *GormCashTransactionRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID) ([]ledger.Transaction, error) {
	var rows []models.CashTransactionModel
	if err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("occurred_at DESC, seq DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(rows), nil
}

// FindByVehicle returns entries referencing a vehicle, newest first
func (r *GormCashTransactionRepository) FindByVehicle(ctx context.Context, orgID, vehicleID uuid.UUID) ([]ledger.Transaction, error) {
	var rows []models.CashTransactionModel
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND vehicle_id = ?", orgID, vehicleID).
		Order("occurred_at DESC, seq DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(rows), nil
}

func toDomainTransactions(rows []models.CashTransactionModel) []ledger.Transaction {
	txs := make([]ledger.Transaction, 0, len(rows))
	for i := range rows {
		txs = append(txs, *rows[i].ToDomain())
	}
	return txs
}

// Ensure GormCashTransactionRepository implements TransactionRepository
var _ ledger.TransactionRepository = (*GormCashTransactionRepository)(nil)
