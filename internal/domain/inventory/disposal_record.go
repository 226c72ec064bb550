package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motodesk/backend/internal/domain/shared/valueobject"
)

// Buyer identifies the customer a vehicle was disposed to
type Buyer struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address,omitempty"`
	IDProofType   string `json:"id_proof_type,omitempty"`
	IDProofNumber string `json:"id_proof_number,omitempty"`
}

// DisposalRecord is the terminal sale event closing a vehicle's lifecycle.
// Attached exactly once; immutable once created.
type DisposalRecord struct {
	ID         uuid.UUID
	VehicleID  uuid.UUID
	Buyer      Buyer
	Amount     decimal.Decimal
	Channel    valueobject.PaymentChannel
	DisposedBy uuid.UUID
	OccurredAt time.Time
}

// NewDisposalRecord creates a disposal record. Validation happens on the
// aggregate (Vehicle.Dispose).
func NewDisposalRecord(vehicleID uuid.UUID, buyer Buyer, amount decimal.Decimal, channel valueobject.PaymentChannel, disposedBy uuid.UUID) *DisposalRecord {
	return &DisposalRecord{
		ID:         uuid.New(),
		VehicleID:  vehicleID,
		Buyer:      buyer,
		Amount:     amount,
		Channel:    channel,
		DisposedBy: disposedBy,
		OccurredAt: time.Now(),
	}
}

// AmountMoney returns the disposal amount as Money
func (r *DisposalRecord) AmountMoney() valueobject.Money {
	return valueobject.NewMoney(r.Amount)
}
