package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motodesk/backend/internal/domain/ledger"
	"github.com/motodesk/backend/internal/domain/shared/valueobject"
)

// CashTransactionModel is the persistence model for the ledger Transaction
// aggregate. Rows are append-only: no update path exists in the repository.
type CashTransactionModel struct {
	OrgAggregateModel
	Amount      decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	Direction   ledger.Direction           `gorm:"type:varchar(3);not null"`
	Category    ledger.Category            `gorm:"type:varchar(20);not null;index"`
	Description string                     `gorm:"type:varchar(500);not null"`
	VehicleID   *uuid.UUID                 `gorm:"type:uuid;index"`
	OccurredAt  time.Time                  `gorm:"not null;index"`
	Channel     valueobject.PaymentChannel `gorm:"type:varchar(10);not null"`
	Seq         int64                      `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (CashTransactionModel) TableName() string {
	return "cash_transactions"
}

// ToDomain converts the persistence model to a domain Transaction
func (m *CashTransactionModel) ToDomain() *ledger.Transaction {
	return &ledger.Transaction{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		Amount:           m.Amount,
		Direction:        m.Direction,
		Category:         m.Category,
		Description:      m.Description,
		VehicleID:        m.VehicleID,
		OccurredAt:       m.OccurredAt,
		Channel:          m.Channel,
		Seq:              m.Seq,
	}
}

// FromDomain populates the persistence model from a domain Transaction
func (m *CashTransactionModel) FromDomain(t *ledger.Transaction) {
	m.FromDomainOrgAggregateRoot(t.OrgAggregateRoot)
	m.Amount = t.Amount
	m.Direction = t.Direction
	m.Category = t.Category
	m.Description = t.Description
	m.VehicleID = t.VehicleID
	m.OccurredAt = t.OccurredAt
	m.Channel = t.Channel
	m.Seq = t.Seq
}

// CashTransactionModelFromDomain creates a new persistence model from a domain Transaction
func CashTransactionModelFromDomain(t *ledger.Transaction) *CashTransactionModel {
	m := &CashTransactionModel{}
	m.FromDomain(t)
	return m
}
