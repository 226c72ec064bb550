package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motodesk/backend/internal/domain/shared/valueobject"
)

// CostEvent is a recorded expense against a vehicle during its holding
// period. It is immutable once created; the vehicle keeps an append-only
// ordered list of them.
type CostEvent struct {
	ID           uuid.UUID
	VehicleID    uuid.UUID
	Amount       decimal.Decimal
	Description  string
	Channel      valueobject.PaymentChannel
	MechanicNote string
	OccurredAt   time.Time
}

// NewCostEvent creates a cost event. Validation happens on the aggregate
// (Vehicle.RecordCost); this constructor only assembles the record.
func NewCostEvent(vehicleID uuid.UUID, amount decimal.Decimal, description string, channel valueobject.PaymentChannel, mechanicNote string) *CostEvent {
	return &CostEvent{
		ID:           uuid.New(),
		VehicleID:    vehicleID,
		Amount:       amount,
		Description:  description,
		Channel:      channel,
		MechanicNote: mechanicNote,
		OccurredAt:   time.Now(),
	}
}

// AmountMoney returns the amount as Money
func (e *CostEvent) AmountMoney() valueobject.Money {
	return valueobject.NewMoney(e.Amount)
}
