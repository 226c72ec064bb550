package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motodesk/backend/internal/domain/shared"
	"github.com/motodesk/backend/internal/domain/shared/valueobject"
)

// Direction indicates whether money moved into or out of the business
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// IsValid checks if the direction is a valid Direction
func (d Direction) IsValid() bool {
	return d == DirectionIn || d == DirectionOut
}

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// Category classifies what a cash movement was for
type Category string

const (
	CategorySale        Category = "SALE"        // vehicle disposal proceeds
	CategoryAcquisition Category = "ACQUISITION" // vehicle purchase cost
	CategoryExpense     Category = "EXPENSE"     // repair / holding cost
	CategoryAdjustment  Category = "ADJUSTMENT"  // manual entry (capital, correction)
)

// IsValid checks if the category is a valid Category
func (c Category) IsValid() bool {
	switch c {
	case CategorySale, CategoryAcquisition, CategoryExpense, CategoryAdjustment:
		return true
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// IsSystemGenerated reports whether entries of this category may only be
// produced as side effects of lifecycle operations, never entered directly.
func (c Category) IsSystemGenerated() bool {
	return c != CategoryAdjustment
}

// Transaction is an immutable, append-only cash ledger entry. It is the
// system's source of truth for money movement: balances are always derived
// by folding over the transaction log and are never stored.
type Transaction struct {
	shared.OrgAggregateRoot
	Amount      decimal.Decimal
	Direction   Direction
	Category    Category
	Description string
	VehicleID   *uuid.UUID // originating vehicle, if any
	OccurredAt  time.Time
	Channel     valueobject.PaymentChannel
	// Seq is the insertion order assigned by the store. It breaks ties
	// between transactions sharing the same OccurredAt.
	Seq int64
}

// NewTransaction creates a ledger entry. Only malformed input is rejected;
// the ledger never refuses an entry on business grounds.
func NewTransaction(
	orgID uuid.UUID,
	amount valueobject.Money,
	direction Direction,
	category Category,
	description string,
	channel valueobject.PaymentChannel,
) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Direction must be IN or OUT")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category is not valid")
	}
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment channel is not valid")
	}

	tx := &Transaction{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Amount:           amount.Amount(),
		Direction:        direction,
		Category:         category,
		Description:      description,
		OccurredAt:       time.Now(),
		Channel:          channel,
	}

	tx.AddDomainEvent(NewTransactionAppendedEvent(tx))

	return tx, nil
}

// SetVehicleRef links the entry to the vehicle that produced it
func (t *Transaction) SetVehicleRef(vehicleID uuid.UUID) {
	t.VehicleID = &vehicleID
}

// SetOccurredAt overrides the server-assigned timestamp. Used when the
// caller supplies an explicit business date for a manual adjustment.
func (t *Transaction) SetOccurredAt(at time.Time) {
	if !at.IsZero() {
		t.OccurredAt = at
	}
}

// SignedAmount returns +Amount for IN entries and -Amount for OUT entries
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Direction == DirectionIn {
		return t.Amount
	}
	return t.Amount.Neg()
}

// AmountMoney returns the amount as Money
func (t *Transaction) AmountMoney() valueobject.Money {
	return valueobject.NewMoney(t.Amount)
}
