package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motodesk/backend/internal/domain/shared"
	"github.com/motodesk/backend/internal/domain/shared/valueobject"
)

// TransactionAppendedEvent is raised when a new entry is appended to the ledger
type TransactionAppendedEvent struct {
	shared.BaseDomainEvent
	TransactionID uuid.UUID                  `json:"transaction_id"`
	Amount        decimal.Decimal            `json:"amount"`
	Direction     Direction                  `json:"direction"`
	Category      Category                   `json:"category"`
	Channel       valueobject.PaymentChannel `json:"channel"`
	VehicleID     *uuid.UUID                 `json:"vehicle_id,omitempty"`
	AppendedAt    time.Time                  `json:"appended_at"`
}

// EventType returns the event type name
func (e *TransactionAppendedEvent) EventType() string {
	return "LedgerTransactionAppended"
}

// NewTransactionAppendedEvent creates a new TransactionAppendedEvent
func NewTransactionAppendedEvent(tx *Transaction) *TransactionAppendedEvent {
	return &TransactionAppendedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("LedgerTransactionAppended", "Transaction", tx.ID, tx.OrgID),
		TransactionID:   tx.ID,
		Amount:          tx.Amount,
		Direction:       tx.Direction,
		Category:        tx.Category,
		Channel:         tx.Channel,
		VehicleID:       tx.VehicleID,
		AppendedAt:      tx.OccurredAt,
	}
}
