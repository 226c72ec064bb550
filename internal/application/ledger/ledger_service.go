package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motodesk/backend/internal/domain/access"
	"github.com/motodesk/backend/internal/domain/ledger"
	"github.com/motodesk/backend/internal/domain/shared"
	"github.com/motodesk/backend/internal/domain/shared/valueobject"
	"github.com/motodesk/backend/internal/infrastructure/telemetry"
)

// Service provides application-level ledger operations. SALE, ACQUISITION
// and EXPENSE entries are produced exclusively by the inventory lifecycle
// manager; this service only accepts manual ADJUSTMENT entries from callers.
type Service struct {
	txRepo ledger.TransactionRepository
}

// NewService creates a new ledger Service
func NewService(txRepo ledger.TransactionRepository) *Service {
	return &Service{txRepo: txRepo}
}

// TransactionResponse represents a ledger entry in API responses
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   string          `json:"direction"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	VehicleID   *uuid.UUID      `json:"vehicle_id,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Channel     string          `json:"channel"`
}

// AppendAdjustmentRequest represents a manual adjustment entry
type AppendAdjustmentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Direction   string          `json:"direction" binding:"required,oneof=IN OUT"`
	Description string          `json:"description" binding:"required"`
	Channel     string          `json:"channel" binding:"required,paymentchannel"`
	OccurredAt  *time.Time      `json:"occurred_at"`
}

// BalanceResponse represents a derived balance. It is recomputed from the
// transaction log on every call.
type BalanceResponse struct {
	Balance   decimal.Decimal            `json:"balance"`
	Channel   *string                    `json:"channel,omitempty"`
	ByChannel map[string]decimal.Decimal `json:"by_channel,omitempty"`
}

// AppendAdjustment appends a manual ADJUSTMENT entry to the ledger.
// Only full-access actors may write to the ledger directly.
func (s *Service) AppendAdjustment(ctx context.Context, orgID uuid.UUID, role access.Role, req AppendAdjustmentRequest) (*TransactionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "append_adjustment",
		telemetry.WithAttribute(telemetry.SpanAttrOrgID, orgID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrChannel, req.Channel))
	defer span.End()

	if !access.Can(role, access.CapabilityRecordAdjustment) {
		telemetry.RecordError(span, shared.ErrForbidden)
		return nil, shared.ErrForbidden
	}

	tx, err := ledger.NewTransaction(
		orgID,
		valueobject.NewMoney(req.Amount),
		ledger.Direction(req.Direction),
		ledger.CategoryAdjustment,
		req.Description,
		valueobject.PaymentChannel(req.Channel),
	)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if req.OccurredAt != nil {
		tx.SetOccurredAt(*req.OccurredAt)
	}

	if err := s.txRepo.Append(ctx, tx); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.AddEvent(span, "ledger_appended",
		telemetry.SpanAttrTxID, tx.ID.String(),
		telemetry.SpanAttrAmount, tx.Amount.String())
	return toTransactionResponse(tx), nil
}

// ListChronological returns the full transaction log for the organization,
// most recent first, ties broken by insertion order.
func (s *Service) ListChronological(ctx context.Context, orgID uuid.UUID, role access.Role) ([]TransactionResponse, error) {
	if !access.Can(role, access.CapabilityViewLedger) {
		return nil, shared.ErrForbidden
	}

	txs, err := s.txRepo.FindAllForOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	responses := make([]TransactionResponse, len(txs))
	for i := range txs {
		responses[i] = *toTransactionResponse(&txs[i])
	}
	return responses, nil
}

// Balance folds the organization's transaction log into a balance,
// optionally restricted to one payment channel. Nothing is cached: the
// result is derived from the log on every call.
func (s *Service) Balance(ctx context.Context, orgID uuid.UUID, role access.Role, channel *valueobject.PaymentChannel) (*BalanceResponse, error) {
	if !access.Can(role, access.CapabilityViewLedger) {
		return nil, shared.ErrForbidden
	}
	if channel != nil && !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment channel is not valid")
	}

	txs, err := s.txRepo.FindAllForOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	resp := &BalanceResponse{Balance: ledger.BalanceOf(txs, channel)}
	if channel != nil {
		ch := channel.String()
		resp.Channel = &ch
		return resp, nil
	}

	resp.ByChannel = make(map[string]decimal.Decimal, 2)
	for ch, b := range ledger.BalanceByChannel(txs) {
		resp.ByChannel[ch.String()] = b
	}
	return resp, nil
}

// VehicleTransactions returns the ledger entries referencing one vehicle,
// newest first. Entries survive vehicle removal; the list may reference a
// vehicle that no longer exists.
func (s *Service) VehicleTransactions(ctx context.Context, orgID uuid.UUID, role access.Role, vehicleID uuid.UUID) ([]TransactionResponse, error) {
	if !access.Can(role, access.CapabilityViewLedger) {
		return nil, shared.ErrForbidden
	}

	txs, err := s.txRepo.FindByVehicle(ctx, orgID, vehicleID)
	if err != nil {
		return nil, err
	}

	responses := make([]TransactionResponse, len(txs))
	for i := range txs {
		responses[i] = *toTransactionResponse(&txs[i])
	}
	return responses, nil
}

func toTransactionResponse(tx *ledger.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          tx.ID,
		Amount:      tx.Amount,
		Direction:   tx.Direction.String(),
		Category:    tx.Category.String(),
		Description: tx.Description,
		VehicleID:   tx.VehicleID,
		OccurredAt:  tx.OccurredAt,
		Channel:     tx.Channel.String(),
	}
}
