package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motodesk/backend/internal/domain/inventory"
	"github.com/motodesk/backend/internal/domain/shared/valueobject"
)

// VehicleModel is the persistence model for the Vehicle aggregate root.
// Cost events and the disposal record are child rows saved through the
// aggregate.
type VehicleModel struct {
	OrgAggregateModel
	Make          string `gorm:"type:varchar(100);not null;index"`
	Model         string `gorm:"type:varchar(100);not null;index"`
	Year          int    `gorm:"not null"`
	Color         string `gorm:"type:varchar(50)"`
	EngineNumber  string `gorm:"type:varchar(100)"`
	ChassisNumber string `gorm:"type:varchar(100)"`
	Odometer      int    `gorm:"not null;default:0"`
	Description   string `gorm:"type:text"`
	PhotoRefs     string `gorm:"type:jsonb;default:'[]'"`

	AcquisitionCost    decimal.Decimal            `gorm:"type:decimal(18,2);not null;default:0"`
	AcquisitionChannel valueobject.PaymentChannel `gorm:"type:varchar(10);not null"`
	AcquiredFromName   string                     `gorm:"type:varchar(200)"`
	AcquiredFromPhone  string                     `gorm:"type:varchar(30)"`
	AcquiredFromAddr   string                     `gorm:"column:acquired_from_address;type:varchar(500)"`
	AcquiredFromProof  string                     `gorm:"column:acquired_from_id_proof;type:varchar(100)"`
	AcquiredAt         time.Time                  `gorm:"not null"`

	RegNumber string `gorm:"type:varchar(30);index"`
	RegDate   *time.Time

	Status     inventory.VehicleStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE';index"`
	CostEvents []CostEventModel        `gorm:"foreignKey:VehicleID;references:ID;constraint:OnDelete:CASCADE"`
	Disposal   *DisposalRecordModel    `gorm:"foreignKey:VehicleID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (VehicleModel) TableName() string {
	return "vehicles"
}

// ToDomain converts the persistence model to a domain Vehicle aggregate
func (m *VehicleModel) ToDomain() *inventory.Vehicle {
	var photoRefs []string
	if m.PhotoRefs != "" {
		_ = json.Unmarshal([]byte(m.PhotoRefs), &photoRefs)
	}
	if photoRefs == nil {
		photoRefs = make([]string, 0)
	}

	v := &inventory.Vehicle{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		Make:             m.Make,
		Model:            m.Model,
		Year:             m.Year,
		Color:            m.Color,
		EngineNumber:     m.EngineNumber,
		ChassisNumber:    m.ChassisNumber,
		Odometer:         m.Odometer,
		Description:      m.Description,
		PhotoRefs:        photoRefs,

		AcquisitionCost:    m.AcquisitionCost,
		AcquisitionChannel: m.AcquisitionChannel,
		AcquiredFrom: inventory.Counterparty{
			Name:    m.AcquiredFromName,
			Phone:   m.AcquiredFromPhone,
			Address: m.AcquiredFromAddr,
			IDProof: m.AcquiredFromProof,
		},
		AcquiredAt: m.AcquiredAt,

		RegNumber: m.RegNumber,
		RegDate:   m.RegDate,

		Status:     m.Status,
		CostEvents: make([]inventory.CostEvent, 0, len(m.CostEvents)),
	}

	for i := range m.CostEvents {
		v.CostEvents = append(v.CostEvents, *m.CostEvents[i].ToDomain())
	}
	if m.Disposal != nil {
		v.Disposal = m.Disposal.ToDomain()
	}

	return v
}

// FromDomain populates the persistence model from a domain Vehicle aggregate
func (m *VehicleModel) FromDomain(v *inventory.Vehicle) {
	m.FromDomainOrgAggregateRoot(v.OrgAggregateRoot)
	m.Make = v.Make
	m.Model = v.Model
	m.Year = v.Year
	m.Color = v.Color
	m.EngineNumber = v.EngineNumber
	m.ChassisNumber = v.ChassisNumber
	m.Odometer = v.Odometer
	m.Description = v.Description

	refs := v.PhotoRefs
	if refs == nil {
		refs = make([]string, 0)
	}
	encoded, err := json.Marshal(refs)
	if err != nil {
		encoded = []byte("[]")
	}
	m.PhotoRefs = string(encoded)

	m.AcquisitionCost = v.AcquisitionCost
	m.AcquisitionChannel = v.AcquisitionChannel
	m.AcquiredFromName = v.AcquiredFrom.Name
	m.AcquiredFromPhone = v.AcquiredFrom.Phone
	m.AcquiredFromAddr = v.AcquiredFrom.Address
	m.AcquiredFromProof = v.AcquiredFrom.IDProof
	m.AcquiredAt = v.AcquiredAt

	m.RegNumber = v.RegNumber
	m.RegDate = v.RegDate

	m.Status = v.Status

	m.CostEvents = make([]CostEventModel, 0, len(v.CostEvents))
	for i := range v.CostEvents {
		m.CostEvents = append(m.CostEvents, *CostEventModelFromDomain(&v.CostEvents[i]))
	}
	if v.Disposal != nil {
		m.Disposal = DisposalRecordModelFromDomain(v.Disposal)
	} else {
		m.Disposal = nil
	}
}

// VehicleModelFromDomain creates a new persistence model from a domain Vehicle
func VehicleModelFromDomain(v *inventory.Vehicle) *VehicleModel {
	m := &VehicleModel{}
	m.FromDomain(v)
	return m
}

// CostEventModel is the persistence model for a vehicle cost event.
// Rows are immutable once written.
type CostEventModel struct {
	ID           uuid.UUID                  `gorm:"type:uuid;primary_key"`
	VehicleID    uuid.UUID                  `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	Description  string                     `gorm:"type:varchar(500);not null"`
	Channel      valueobject.PaymentChannel `gorm:"type:varchar(10);not null"`
	MechanicNote string                     `gorm:"type:text"`
	OccurredAt   time.Time                  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (CostEventModel) TableName() string {
	return "vehicle_cost_events"
}

// ToDomain converts the persistence model to a domain CostEvent
func (m *CostEventModel) ToDomain() *inventory.CostEvent {
	return &inventory.CostEvent{
		ID:           m.ID,
		VehicleID:    m.VehicleID,
		Amount:       m.Amount,
		Description:  m.Description,
		Channel:      m.Channel,
		MechanicNote: m.MechanicNote,
		OccurredAt:   m.OccurredAt,
	}
}

// CostEventModelFromDomain creates a new persistence model from a domain CostEvent
func CostEventModelFromDomain(e *inventory.CostEvent) *CostEventModel {
	return &CostEventModel{
		ID:           e.ID,
		VehicleID:    e.VehicleID,
		Amount:       e.Amount,
		Description:  e.Description,
		Channel:      e.Channel,
		MechanicNote: e.MechanicNote,
		OccurredAt:   e.OccurredAt,
	}
}

// DisposalRecordModel is the persistence model for a vehicle disposal.
// At most one row exists per vehicle.
type DisposalRecordModel struct {
	ID            uuid.UUID                  `gorm:"type:uuid;primary_key"`
	VehicleID     uuid.UUID                  `gorm:"type:uuid;not null;uniqueIndex"`
	BuyerName     string                     `gorm:"type:varchar(200);not null"`
	BuyerPhone    string                     `gorm:"type:varchar(30)"`
	BuyerAddress  string                     `gorm:"type:varchar(500)"`
	BuyerIDType   string                     `gorm:"column:buyer_id_proof_type;type:varchar(50)"`
	BuyerIDNumber string                     `gorm:"column:buyer_id_proof_number;type:varchar(100)"`
	Amount        decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	Channel       valueobject.PaymentChannel `gorm:"type:varchar(10);not null"`
	DisposedBy    uuid.UUID                  `gorm:"type:uuid;not null"`
	OccurredAt    time.Time                  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DisposalRecordModel) TableName() string {
	return "vehicle_disposals"
}

// ToDomain converts the persistence model to a domain DisposalRecord
func (m *DisposalRecordModel) ToDomain() *inventory.DisposalRecord {
	return &inventory.DisposalRecord{
		ID:        m.ID,
		VehicleID: m.VehicleID,
		Buyer: inventory.Buyer{
			Name:          m.BuyerName,
			Phone:         m.BuyerPhone,
			Address:       m.BuyerAddress,
			IDProofType:   m.BuyerIDType,
			IDProofNumber: m.BuyerIDNumber,
		},
		Amount:     m.Amount,
		Channel:    m.Channel,
		DisposedBy: m.DisposedBy,
		OccurredAt: m.OccurredAt,
	}
}

// DisposalRecordModelFromDomain creates a new persistence model from a domain DisposalRecord
func DisposalRecordModelFromDomain(r *inventory.DisposalRecord) *DisposalRecordModel {
	return &DisposalRecordModel{
		ID:            r.ID,
		VehicleID:     r.VehicleID,
		BuyerName:     r.Buyer.Name,
		BuyerPhone:    r.Buyer.Phone,
		BuyerAddress:  r.Buyer.Address,
		BuyerIDType:   r.Buyer.IDProofType,
		BuyerIDNumber: r.Buyer.IDProofNumber,
		Amount:        r.Amount,
		Channel:       r.Channel,
		DisposedBy:    r.DisposedBy,
		OccurredAt:    r.OccurredAt,
	}
}
