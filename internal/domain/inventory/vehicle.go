package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motodesk/backend/internal/domain/shared"
	"github.com/motodesk/backend/internal/domain/shared/valueobject"
)

// VehicleStatus represents where a vehicle sits in its lifecycle
type VehicleStatus string

const (
	StatusAvailable    VehicleStatus = "AVAILABLE"
	StatusReserved     VehicleStatus = "RESERVED"
	StatusUnderService VehicleStatus = "UNDER_SERVICE"
	StatusDisposed     VehicleStatus = "DISPOSED" // terminal
)

// IsValid checks if the status is a valid VehicleStatus
func (s VehicleStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusUnderService, StatusDisposed:
		return true
	}
	return false
}

// String returns the string representation of VehicleStatus
func (s VehicleStatus) String() string {
	return string(s)
}

// IsTerminal returns true once no further lifecycle changes are allowed
func (s VehicleStatus) IsTerminal() bool {
	return s == StatusDisposed
}

// Counterparty identifies who a vehicle was acquired from.
// These details are restricted fields: visible only to full-access actors.
type Counterparty struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	IDProof string `json:"id_proof,omitempty"`
}

// Vehicle is the aggregate root for a tracked inventory unit moving through
// acquisition, optional cost events and a terminal disposal. Every lifecycle
// transition emits exactly one cash ledger entry; that pairing is enforced by
// the application layer, not here.
type Vehicle struct {
	shared.OrgAggregateRoot

	// Descriptive attributes
	Make          string
	Model         string
	Year          int
	Color         string
	EngineNumber  string
	ChassisNumber string
	Odometer      int
	Description   string
	PhotoRefs     []string

	// Acquisition record (restricted fields)
	AcquisitionCost    decimal.Decimal
	AcquisitionChannel valueobject.PaymentChannel
	AcquiredFrom       Counterparty
	AcquiredAt         time.Time

	// Registration documents
	RegNumber string
	RegDate   *time.Time

	Status     VehicleStatus
	CostEvents []CostEvent
	Disposal   *DisposalRecord // present iff Status == DISPOSED
}

// AcquireVehicleSpec carries the fields needed to bring a vehicle into stock
type AcquireVehicleSpec struct {
	Make               string
	Model              string
	Year               int
	Color              string
	EngineNumber       string
	ChassisNumber      string
	Odometer           int
	Description        string
	PhotoRefs          []string
	AcquisitionCost    valueobject.Money
	AcquisitionChannel valueobject.PaymentChannel
	AcquiredFrom       Counterparty
	AcquiredAt         time.Time
	RegNumber          string
	RegDate            *time.Time
	InitialStatus      VehicleStatus
}

// NewVehicle creates a vehicle from an acquisition. A zero acquisition cost
// is legal (gifted or trade-in stock); a negative one is not. The initial
// status defaults to AVAILABLE and may never be DISPOSED.
func NewVehicle(orgID uuid.UUID, spec AcquireVehicleSpec) (*Vehicle, error) {
	if strings.TrimSpace(spec.Make) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Make cannot be empty")
	}
	if strings.TrimSpace(spec.Model) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Model cannot be empty")
	}
	if spec.Year < 1900 || spec.Year > time.Now().Year()+1 {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Year %d is out of range", spec.Year))
	}
	if spec.AcquisitionCost.IsNegative() {
		return nil, shared.ErrInvalidAmount
	}
	if !spec.AcquisitionChannel.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment channel is not valid")
	}

	status := spec.InitialStatus
	if status == "" {
		status = StatusAvailable
	}
	if !status.IsValid() || status == StatusDisposed {
		return nil, shared.NewDomainError("INVALID_STATE", "Initial status must be AVAILABLE, RESERVED or UNDER_SERVICE")
	}

	acquiredAt := spec.AcquiredAt
	if acquiredAt.IsZero() {
		acquiredAt = time.Now()
	}

	v := &Vehicle{
		OrgAggregateRoot:   shared.NewOrgAggregateRoot(orgID),
		Make:               strings.TrimSpace(spec.Make),
		Model:              strings.TrimSpace(spec.Model),
		Year:               spec.Year,
		Color:              spec.Color,
		EngineNumber:       spec.EngineNumber,
		ChassisNumber:      spec.ChassisNumber,
		Odometer:           spec.Odometer,
		Description:        spec.Description,
		PhotoRefs:          spec.PhotoRefs,
		AcquisitionCost:    spec.AcquisitionCost.Amount(),
		AcquisitionChannel: spec.AcquisitionChannel,
		AcquiredFrom:       spec.AcquiredFrom,
		AcquiredAt:         acquiredAt,
		RegNumber:          spec.RegNumber,
		RegDate:            spec.RegDate,
		Status:             status,
		CostEvents:         make([]CostEvent, 0),
	}

	v.AddDomainEvent(NewVehicleAcquiredEvent(v))

	return v, nil
}

// DisplayName returns the human-readable identity of the vehicle
func (v *Vehicle) DisplayName() string {
	return fmt.Sprintf("%s %s", v.Make, v.Model)
}

// IsDisposed returns true once the vehicle has left the inventory
func (v *Vehicle) IsDisposed() bool {
	return v.Status == StatusDisposed
}

// RecordCost appends an immutable cost event to the vehicle's history.
// Disposed vehicles accept no further costs.
func (v *Vehicle) RecordCost(amount valueobject.Money, description string, channel valueobject.PaymentChannel, mechanicNote string) (*CostEvent, error) {
	if v.IsDisposed() {
		return nil, shared.ErrInvalidState
	}
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Cost description cannot be empty")
	}
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment channel is not valid")
	}

	event := NewCostEvent(v.ID, amount.Amount(), strings.TrimSpace(description), channel, mechanicNote)
	v.CostEvents = append(v.CostEvents, *event)
	v.Touch()
	v.IncrementVersion()

	v.AddDomainEvent(NewCostRecordedEvent(v, event))

	return event, nil
}

// Dispose closes the vehicle's lifecycle exactly once. The disposal record is
// attached, the status becomes terminal, and no further mutation is allowed.
func (v *Vehicle) Dispose(buyer Buyer, amount valueobject.Money, channel valueobject.PaymentChannel, disposedBy uuid.UUID) (*DisposalRecord, error) {
	if v.IsDisposed() {
		return nil, shared.ErrInvalidState
	}
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	if strings.TrimSpace(buyer.Name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Buyer name cannot be empty")
	}
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment channel is not valid")
	}
	if disposedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Disposing actor ID cannot be empty")
	}

	record := NewDisposalRecord(v.ID, buyer, amount.Amount(), channel, disposedBy)
	v.Disposal = record
	v.Status = StatusDisposed
	v.Touch()
	v.IncrementVersion()

	v.AddDomainEvent(NewVehicleDisposedEvent(v, record))

	return record, nil
}

// ChangeStatus moves the vehicle between the non-terminal states.
// DISPOSED is only reachable through Dispose and never left.
func (v *Vehicle) ChangeStatus(status VehicleStatus) error {
	if v.IsDisposed() {
		return shared.ErrInvalidState
	}
	if !status.IsValid() || status == StatusDisposed {
		return shared.NewDomainError("INVALID_STATE", "Status must be AVAILABLE, RESERVED or UNDER_SERVICE")
	}

	v.Status = status
	v.Touch()
	v.IncrementVersion()

	return nil
}

// VehicleDetails carries the mutable descriptive and registration fields
type VehicleDetails struct {
	Color       string
	Odometer    int
	Description string
	PhotoRefs   []string
	RegNumber   string
	RegDate     *time.Time
}

// UpdateDetails replaces the descriptive and registration fields.
// Identity fields (make, model, year, engine, chassis) and the acquisition
// record are not touched here.
func (v *Vehicle) UpdateDetails(details VehicleDetails) error {
	if v.IsDisposed() {
		return shared.ErrInvalidState
	}

	v.Color = details.Color
	v.Odometer = details.Odometer
	v.Description = details.Description
	v.PhotoRefs = details.PhotoRefs
	v.RegNumber = details.RegNumber
	v.RegDate = details.RegDate
	v.Touch()
	v.IncrementVersion()

	return nil
}

// UpdateAcquisition replaces the restricted acquisition record fields
func (v *Vehicle) UpdateAcquisition(cost valueobject.Money, channel valueobject.PaymentChannel, from Counterparty, at time.Time) error {
	if v.IsDisposed() {
		return shared.ErrInvalidState
	}
	if cost.IsNegative() {
		return shared.ErrInvalidAmount
	}
	if !channel.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Payment channel is not valid")
	}

	v.AcquisitionCost = cost.Amount()
	v.AcquisitionChannel = channel
	v.AcquiredFrom = from
	if !at.IsZero() {
		v.AcquiredAt = at
	}
	v.Touch()
	v.IncrementVersion()

	return nil
}

// TotalAcquisitionCost is the acquisition cost plus every recorded cost
// event. Recomputed on every read, never stored.
func (v *Vehicle) TotalAcquisitionCost() decimal.Decimal {
	total := v.AcquisitionCost
	for i := range v.CostEvents {
		total = total.Add(v.CostEvents[i].Amount)
	}
	return total
}

// Profit is the disposal amount minus the total acquisition cost. It only
// exists once the vehicle is disposed; nil before that.
func (v *Vehicle) Profit() *decimal.Decimal {
	if v.Disposal == nil {
		return nil
	}
	profit := v.Disposal.Amount.Sub(v.TotalAcquisitionCost())
	return &profit
}
