package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motodesk/backend/internal/domain/shared"
	"github.com/motodesk/backend/internal/domain/shared/valueobject"
)

// VehicleAcquiredEvent is raised when a vehicle enters the inventory
type VehicleAcquiredEvent struct {
	shared.BaseDomainEvent
	VehicleID       uuid.UUID                  `json:"vehicle_id"`
	Make            string                     `json:"make"`
	Model           string                     `json:"model"`
	Year            int                        `json:"year"`
	AcquisitionCost decimal.Decimal            `json:"acquisition_cost"`
	Channel         valueobject.PaymentChannel `json:"channel"`
	InitialStatus   VehicleStatus              `json:"initial_status"`
}

// EventType returns the event type name
func (e *VehicleAcquiredEvent) EventType() string {
	return "VehicleAcquired"
}

// NewVehicleAcquiredEvent creates a new VehicleAcquiredEvent
func NewVehicleAcquiredEvent(v *Vehicle) *VehicleAcquiredEvent {
	return &VehicleAcquiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("VehicleAcquired", "Vehicle", v.ID, v.OrgID),
		VehicleID:       v.ID,
		Make:            v.Make,
		Model:           v.Model,
		Year:            v.Year,
		AcquisitionCost: v.AcquisitionCost,
		Channel:         v.AcquisitionChannel,
		InitialStatus:   v.Status,
	}
}

// CostRecordedEvent is raised when a cost event is appended to a vehicle
type CostRecordedEvent struct {
	shared.BaseDomainEvent
	VehicleID   uuid.UUID                  `json:"vehicle_id"`
	CostEventID uuid.UUID                  `json:"cost_event_id"`
	Amount      decimal.Decimal            `json:"amount"`
	Description string                     `json:"description"`
	Channel     valueobject.PaymentChannel `json:"channel"`
	// CostOccurredAt avoids shadowing BaseDomainEvent.OccurredAt(),
	// which would break the shared.DomainEvent interface.
	CostOccurredAt time.Time `json:"occurred_at"`
}

// EventType returns the event type name
func (e *CostRecordedEvent) EventType() string {
	return "VehicleCostRecorded"
}

// NewCostRecordedEvent creates a new CostRecordedEvent
func NewCostRecordedEvent(v *Vehicle, cost *CostEvent) *CostRecordedEvent {
	return &CostRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("VehicleCostRecorded", "Vehicle", v.ID, v.OrgID),
		VehicleID:       v.ID,
		CostEventID:     cost.ID,
		Amount:          cost.Amount,
		Description:     cost.Description,
		Channel:         cost.Channel,
		CostOccurredAt:  cost.OccurredAt,
	}
}

// VehicleDisposedEvent is raised when a vehicle's lifecycle is closed
type VehicleDisposedEvent struct {
	shared.BaseDomainEvent
	VehicleID  uuid.UUID                  `json:"vehicle_id"`
	DisposalID uuid.UUID                  `json:"disposal_id"`
	Amount     decimal.Decimal            `json:"amount"`
	BuyerName  string                     `json:"buyer_name"`
	Channel    valueobject.PaymentChannel `json:"channel"`
	DisposedBy uuid.UUID                  `json:"disposed_by"`
}

// EventType returns the event type name
func (e *VehicleDisposedEvent) EventType() string {
	return "VehicleDisposed"
}

// NewVehicleDisposedEvent creates a new VehicleDisposedEvent
func NewVehicleDisposedEvent(v *Vehicle, record *DisposalRecord) *VehicleDisposedEvent {
	return &VehicleDisposedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("VehicleDisposed", "Vehicle", v.ID, v.OrgID),
		VehicleID:       v.ID,
		DisposalID:      record.ID,
		Amount:          record.Amount,
		BuyerName:       record.Buyer.Name,
		Channel:         record.Channel,
		DisposedBy:      record.DisposedBy,
	}
}
