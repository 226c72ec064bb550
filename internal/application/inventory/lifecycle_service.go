package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motodesk/backend/internal/domain/access"
	"github.com/motodesk/backend/internal/domain/inventory"
	"github.com/motodesk/backend/internal/domain/ledger"
	"github.com/motodesk/backend/internal/domain/shared"
	"github.com/motodesk/backend/internal/domain/shared/valueobject"
	"github.com/motodesk/backend/internal/infrastructure/telemetry"
)

// LifecycleService drives a vehicle through acquisition, cost events and
// disposal. Each lifecycle transition emits at most one cash ledger entry,
// and the vehicle mutation and the ledger append commit atomically through
// the transaction scope.
type LifecycleService struct {
	scope       TransactionScope
	vehicleRepo inventory.VehicleRepository
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(scope TransactionScope, vehicleRepo inventory.VehicleRepository) *LifecycleService {
	return &LifecycleService{
		scope:       scope,
		vehicleRepo: vehicleRepo,
	}
}

// ===================== Requests =====================

// CounterpartyRequest carries seller identity on acquisition
type CounterpartyRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	IDProof string `json:"id_proof"`
}

// AcquireVehicleRequest represents a request to bring a vehicle into stock
type AcquireVehicleRequest struct {
	Make               string              `json:"make" binding:"required"`
	Model              string              `json:"model" binding:"required"`
	Year               int                 `json:"year" binding:"required"`
	Color              string              `json:"color"`
	EngineNumber       string              `json:"engine_number"`
	ChassisNumber      string              `json:"chassis_number"`
	Odometer           int                 `json:"odometer" binding:"gte=0"`
	Description        string              `json:"description"`
	PhotoRefs          []string            `json:"photo_refs"`
	AcquisitionCost    decimal.Decimal     `json:"acquisition_cost"`
	AcquisitionChannel string              `json:"acquisition_channel" binding:"required,paymentchannel"`
	AcquiredFrom       CounterpartyRequest `json:"acquired_from" binding:"required"`
	AcquiredAt         *time.Time          `json:"acquired_at"`
	RegNumber          string              `json:"reg_number"`
	RegDate            *time.Time          `json:"reg_date"`
	InitialStatus      string              `json:"initial_status" binding:"omitempty,oneof=AVAILABLE RESERVED UNDER_SERVICE"`
}

// RecordCostRequest represents a repair or holding cost on a vehicle
type RecordCostRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Description  string          `json:"description" binding:"required"`
	Channel      string          `json:"channel" binding:"required,paymentchannel"`
	MechanicNote string          `json:"mechanic_note"`
}

// BuyerRequest carries buyer identity on disposal
type BuyerRequest struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	IDProofType   string `json:"id_proof_type"`
	IDProofNumber string `json:"id_proof_number"`
}

// DisposeVehicleRequest represents the sale that closes a vehicle's lifecycle
type DisposeVehicleRequest struct {
	Buyer   BuyerRequest    `json:"buyer" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Channel string          `json:"channel" binding:"required,paymentchannel"`
}

// UpdateVehicleRequest represents a request to update descriptive and
// registration fields
type UpdateVehicleRequest struct {
	Color       string     `json:"color"`
	Odometer    int        `json:"odometer" binding:"gte=0"`
	Description string     `json:"description"`
	PhotoRefs   []string   `json:"photo_refs"`
	RegNumber   string     `json:"reg_number"`
	RegDate     *time.Time `json:"reg_date"`
}

// UpdateAcquisitionRequest represents a request to correct the restricted
// acquisition record
type UpdateAcquisitionRequest struct {
	AcquisitionCost    decimal.Decimal     `json:"acquisition_cost"`
	AcquisitionChannel string              `json:"acquisition_channel" binding:"required,paymentchannel"`
	AcquiredFrom       CounterpartyRequest `json:"acquired_from" binding:"required"`
	AcquiredAt         *time.Time          `json:"acquired_at"`
}

// ChangeStatusRequest represents a request to move a vehicle between the
// non-terminal states
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=AVAILABLE RESERVED UNDER_SERVICE"`
}

// VehicleListFilter defines filtering options for vehicle list queries
type VehicleListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=AVAILABLE RESERVED UNDER_SERVICE DISPOSED"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ===================== Responses =====================

// CostEventResponse represents a cost event in API responses
type CostEventResponse struct {
	ID           uuid.UUID       `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Channel      string          `json:"channel"`
	MechanicNote string          `json:"mechanic_note,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// DisposalResponse represents a disposal record in API responses
type DisposalResponse struct {
	BuyerName     string          `json:"buyer_name"`
	BuyerPhone    string          `json:"buyer_phone,omitempty"`
	BuyerAddress  string          `json:"buyer_address,omitempty"`
	IDProofType   string          `json:"id_proof_type,omitempty"`
	IDProofNumber string          `json:"id_proof_number,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Channel       string          `json:"channel"`
	DisposedBy    uuid.UUID       `json:"disposed_by"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// VehicleResponse represents a vehicle in API responses. The acquisition
// record, total cost and profit are restricted fields: they are populated
// only when the requesting actor has full access.
type VehicleResponse struct {
	ID            uuid.UUID  `json:"id"`
	Make          string     `json:"make"`
	Model         string     `json:"model"`
	Year          int        `json:"year"`
	Color         string     `json:"color,omitempty"`
	EngineNumber  string     `json:"engine_number,omitempty"`
	ChassisNumber string     `json:"chassis_number,omitempty"`
	Odometer      int        `json:"odometer"`
	Description   string     `json:"description,omitempty"`
	PhotoRefs     []string   `json:"photo_refs,omitempty"`
	RegNumber     string     `json:"reg_number,omitempty"`
	RegDate       *time.Time `json:"reg_date,omitempty"`
	Status        string     `json:"status"`

	CostEvents []CostEventResponse `json:"cost_events"`
	Disposal   *DisposalResponse   `json:"disposal,omitempty"`

	// Restricted fields, full-access actors only
	AcquisitionCost    *decimal.Decimal `json:"acquisition_cost,omitempty"`
	AcquisitionChannel *string          `json:"acquisition_channel,omitempty"`
	AcquiredFrom       *Counterparty    `json:"acquired_from,omitempty"`
	AcquiredAt         *time.Time       `json:"acquired_at,omitempty"`
	TotalCost          *decimal.Decimal `json:"total_cost,omitempty"`
	Profit             *decimal.Decimal `json:"profit,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// Counterparty mirrors the seller identity for API responses
type Counterparty struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	IDProof string `json:"id_proof,omitempty"`
}

// VehicleListResponse represents a page of vehicles
type VehicleListResponse struct {
	Items    []VehicleResponse `json:"items"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// StatusSummaryResponse counts an organization's vehicles per status
type StatusSummaryResponse struct {
	Counts map[string]int64 `json:"counts"`
}

// ===================== Operations =====================

// Acquire brings a new vehicle into stock. If the acquisition cost is
// positive an OUT/ACQUISITION ledger entry is appended in the same
// transaction; a zero-cost acquisition touches the ledger not at all.
func (s *LifecycleService) Acquire(ctx context.Context, orgID, actorID uuid.UUID, role access.Role, req AcquireVehicleRequest) (*VehicleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "vehicle", "acquire",
		telemetry.WithAttribute(telemetry.SpanAttrOrgID, orgID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrActorID, actorID.String()))
	defer span.End()

	if !access.Can(role, access.CapabilityManageAcquisition) {
		telemetry.RecordError(span, shared.ErrForbidden)
		return nil, shared.ErrForbidden
	}

	spec := inventory.AcquireVehicleSpec{
		Make:               req.Make,
		Model:              req.Model,
		Year:               req.Year,
		Color:              req.Color,
		EngineNumber:       req.EngineNumber,
		ChassisNumber:      req.ChassisNumber,
		Odometer:           req.Odometer,
		Description:        req.Description,
		PhotoRefs:          req.PhotoRefs,
		AcquisitionCost:    valueobject.NewMoney(req.AcquisitionCost),
		AcquisitionChannel: valueobject.PaymentChannel(req.AcquisitionChannel),
		AcquiredFrom: inventory.Counterparty{
			Name:    req.AcquiredFrom.Name,
			Phone:   req.AcquiredFrom.Phone,
			Address: req.AcquiredFrom.Address,
			IDProof: req.AcquiredFrom.IDProof,
		},
		RegNumber:     req.RegNumber,
		RegDate:       req.RegDate,
		InitialStatus: inventory.VehicleStatus(req.InitialStatus),
	}
	if req.AcquiredAt != nil {
		spec.AcquiredAt = *req.AcquiredAt
	}

	vehicle, err := inventory.NewVehicle(orgID, spec)
	if err != nil {
		return nil, err
	}
	vehicle.CreatedBy = &actorID

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.VehicleRepo().Save(ctx, vehicle); err != nil {
			return err
		}

		if vehicle.AcquisitionCost.IsZero() {
			return nil
		}

		tx, err := ledger.NewTransaction(
			orgID,
			valueobject.NewMoney(vehicle.AcquisitionCost),
			ledger.DirectionOut,
			ledger.CategoryAcquisition,
			fmt.Sprintf("Purchased %s", vehicle.DisplayName()),
			vehicle.AcquisitionChannel,
		)
		if err != nil {
			return err
		}
		tx.SetVehicleRef(vehicle.ID)
		tx.SetOccurredAt(vehicle.AcquiredAt)
		tx.CreatedBy = &actorID

		return repos.LedgerRepo().Append(ctx, tx)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrVehicleID, vehicle.ID.String())
	return toVehicleResponse(vehicle, role), nil
}

// RecordCost appends a cost event to the vehicle and an OUT/EXPENSE ledger
// entry for the same amount, atomically.
func (s *LifecycleService) RecordCost(ctx context.Context, orgID, actorID, vehicleID uuid.UUID, role access.Role, req RecordCostRequest) (*VehicleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "vehicle", "record_cost",
		telemetry.WithAttribute(telemetry.SpanAttrOrgID, orgID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrVehicleID, vehicleID.String()))
	defer span.End()

	if !access.Can(role, access.CapabilityMutateLifecycle) {
		telemetry.RecordError(span, shared.ErrForbidden)
		return nil, shared.ErrForbidden
	}

	var vehicle *inventory.Vehicle
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		vehicle, err = repos.VehicleRepo().FindByID(ctx, orgID, vehicleID)
		if err != nil {
			return err
		}
		if vehicle == nil {
			return shared.NewDomainError("NOT_FOUND", "Vehicle not found")
		}

		event, err := vehicle.RecordCost(
			valueobject.NewMoney(req.Amount),
			req.Description,
			valueobject.PaymentChannel(req.Channel),
			req.MechanicNote,
		)
		if err != nil {
			return err
		}

		if err := repos.VehicleRepo().Save(ctx, vehicle); err != nil {
			return err
		}

		tx, err := ledger.NewTransaction(
			orgID,
			valueobject.NewMoney(event.Amount),
			ledger.DirectionOut,
			ledger.CategoryExpense,
			fmt.Sprintf("Repair: %s (%s)", event.Description, vehicle.DisplayName()),
			event.Channel,
		)
		if err != nil {
			return err
		}
		tx.SetVehicleRef(vehicle.ID)
		tx.SetOccurredAt(event.OccurredAt)
		tx.CreatedBy = &actorID

		return repos.LedgerRepo().Append(ctx, tx)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return toVehicleResponse(vehicle, role), nil
}

// Dispose sells the vehicle, closing its lifecycle. The disposal record,
// the terminal status change and the IN/SALE ledger entry land together.
func (s *LifecycleService) Dispose(ctx context.Context, orgID, actorID, vehicleID uuid.UUID, role access.Role, req DisposeVehicleRequest) (*VehicleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "vehicle", "dispose",
		telemetry.WithAttribute(telemetry.SpanAttrOrgID, orgID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrVehicleID, vehicleID.String()))
	defer span.End()

	if !access.Can(role, access.CapabilityMutateLifecycle) {
		telemetry.RecordError(span, shared.ErrForbidden)
		return nil, shared.ErrForbidden
	}

	var vehicle *inventory.Vehicle
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		vehicle, err = repos.VehicleRepo().FindByID(ctx, orgID, vehicleID)
		if err != nil {
			return err
		}
		if vehicle == nil {
			return shared.NewDomainError("NOT_FOUND", "Vehicle not found")
		}

		record, err := vehicle.Dispose(
			inventory.Buyer{
				Name:          req.Buyer.Name,
				Phone:         req.Buyer.Phone,
				Address:       req.Buyer.Address,
				IDProofType:   req.Buyer.IDProofType,
				IDProofNumber: req.Buyer.IDProofNumber,
			},
			valueobject.NewMoney(req.Amount),
			valueobject.PaymentChannel(req.Channel),
			actorID,
		)
		if err != nil {
			return err
		}

		if err := repos.VehicleRepo().Save(ctx, vehicle); err != nil {
			return err
		}

		tx, err := ledger.NewTransaction(
			orgID,
			valueobject.NewMoney(record.Amount),
			ledger.DirectionIn,
			ledger.CategorySale,
			fmt.Sprintf("Sold %s to %s", vehicle.DisplayName(), record.Buyer.Name),
			record.Channel,
		)
		if err != nil {
			return err
		}
		tx.SetVehicleRef(vehicle.ID)
		tx.SetOccurredAt(record.OccurredAt)
		tx.CreatedBy = &actorID

		return repos.LedgerRepo().Append(ctx, tx)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return toVehicleResponse(vehicle, role), nil
}

// Remove deletes a vehicle from the store. Ledger entries that reference
// it stay behind untouched; the ledger is immutable.
func (s *LifecycleService) Remove(ctx context.Context, orgID, vehicleID uuid.UUID, role access.Role) error {
	if !access.Can(role, access.CapabilityManageAcquisition) {
		return shared.ErrForbidden
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, orgID, vehicleID)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return shared.NewDomainError("NOT_FOUND", "Vehicle not found")
	}

	return s.vehicleRepo.Delete(ctx, orgID, vehicleID)
}

// UpdateDetails updates the descriptive and registration fields
func (s *LifecycleService) UpdateDetails(ctx context.Context, orgID, vehicleID uuid.UUID, role access.Role, req UpdateVehicleRequest) (*VehicleResponse, error) {
	if !access.Can(role, access.CapabilityMutateLifecycle) {
		return nil, shared.ErrForbidden
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, orgID, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Vehicle not found")
	}

	if err := vehicle.UpdateDetails(inventory.VehicleDetails{
		Color:       req.Color,
		Odometer:    req.Odometer,
		Description: req.Description,
		PhotoRefs:   req.PhotoRefs,
		RegNumber:   req.RegNumber,
		RegDate:     req.RegDate,
	}); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, err
	}

	return toVehicleResponse(vehicle, role), nil
}

// UpdateAcquisition corrects the restricted acquisition record. It rewrites
// the stored record only; ledger entries already appended are never revised,
// corrections go through manual adjustments.
func (s *LifecycleService) UpdateAcquisition(ctx context.Context, orgID, vehicleID uuid.UUID, role access.Role, req UpdateAcquisitionRequest) (*VehicleResponse, error) {
	if !access.Can(role, access.CapabilityViewRestrictedFields) {
		return nil, shared.ErrForbidden
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, orgID, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Vehicle not found")
	}

	var at time.Time
	if req.AcquiredAt != nil {
		at = *req.AcquiredAt
	}
	if err := vehicle.UpdateAcquisition(
		valueobject.NewMoney(req.AcquisitionCost),
		valueobject.PaymentChannel(req.AcquisitionChannel),
		inventory.Counterparty{
			Name:    req.AcquiredFrom.Name,
			Phone:   req.AcquiredFrom.Phone,
			Address: req.AcquiredFrom.Address,
			IDProof: req.AcquiredFrom.IDProof,
		},
		at,
	); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, err
	}

	return toVehicleResponse(vehicle, role), nil
}

// ChangeStatus moves the vehicle between the non-terminal states
func (s *LifecycleService) ChangeStatus(ctx context.Context, orgID, vehicleID uuid.UUID, role access.Role, req ChangeStatusRequest) (*VehicleResponse, error) {
	if !access.Can(role, access.CapabilityMutateLifecycle) {
		return nil, shared.ErrForbidden
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, orgID, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Vehicle not found")
	}

	if err := vehicle.ChangeStatus(inventory.VehicleStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, err
	}

	return toVehicleResponse(vehicle, role), nil
}

// GetByID returns one vehicle, restricted fields redacted per the actor's role
func (s *LifecycleService) GetByID(ctx context.Context, orgID, vehicleID uuid.UUID, role access.Role) (*VehicleResponse, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, orgID, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Vehicle not found")
	}
	return toVehicleResponse(vehicle, role), nil
}

// List returns a page of vehicles, restricted fields redacted per the
// actor's role
func (s *LifecycleService) List(ctx context.Context, orgID uuid.UUID, role access.Role, filter VehicleListFilter) (*VehicleListResponse, error) {
	repoFilter := inventory.DefaultVehicleFilter()
	repoFilter.Search = filter.Search
	if filter.Status != "" {
		status := inventory.VehicleStatus(filter.Status)
		repoFilter.Status = &status
	}
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		repoFilter.PageSize = filter.PageSize
	}

	vehicles, total, err := s.vehicleRepo.FindAllForOrg(ctx, orgID, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]VehicleResponse, len(vehicles))
	for i := range vehicles {
		items[i] = *toVehicleResponse(&vehicles[i], role)
	}

	return &VehicleListResponse{
		Items:    items,
		Total:    total,
		Page:     repoFilter.Page,
		PageSize: repoFilter.PageSize,
	}, nil
}

// StatusSummary counts the organization's vehicles per status
func (s *LifecycleService) StatusSummary(ctx context.Context, orgID uuid.UUID) (*StatusSummaryResponse, error) {
	counts, err := s.vehicleRepo.CountByStatus(ctx, orgID)
	if err != nil {
		return nil, err
	}

	resp := &StatusSummaryResponse{Counts: make(map[string]int64, len(counts))}
	for status, n := range counts {
		resp.Counts[status.String()] = n
	}
	return resp, nil
}

func toVehicleResponse(v *inventory.Vehicle, role access.Role) *VehicleResponse {
	resp := &VehicleResponse{
		ID:            v.ID,
		Make:          v.Make,
		Model:         v.Model,
		Year:          v.Year,
		Color:         v.Color,
		EngineNumber:  v.EngineNumber,
		ChassisNumber: v.ChassisNumber,
		Odometer:      v.Odometer,
		Description:   v.Description,
		PhotoRefs:     v.PhotoRefs,
		RegNumber:     v.RegNumber,
		RegDate:       v.RegDate,
		Status:        v.Status.String(),
		CostEvents:    make([]CostEventResponse, len(v.CostEvents)),
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
		Version:       v.Version,
	}

	for i := range v.CostEvents {
		e := &v.CostEvents[i]
		resp.CostEvents[i] = CostEventResponse{
			ID:           e.ID,
			Amount:       e.Amount,
			Description:  e.Description,
			Channel:      e.Channel.String(),
			MechanicNote: e.MechanicNote,
			OccurredAt:   e.OccurredAt,
		}
	}

	if v.Disposal != nil {
		resp.Disposal = &DisposalResponse{
			BuyerName:     v.Disposal.Buyer.Name,
			BuyerPhone:    v.Disposal.Buyer.Phone,
			BuyerAddress:  v.Disposal.Buyer.Address,
			IDProofType:   v.Disposal.Buyer.IDProofType,
			IDProofNumber: v.Disposal.Buyer.IDProofNumber,
			Amount:        v.Disposal.Amount,
			Channel:       v.Disposal.Channel.String(),
			DisposedBy:    v.Disposal.DisposedBy,
			OccurredAt:    v.Disposal.OccurredAt,
		}
	}

	if access.CanViewRestrictedFields(role) {
		cost := v.AcquisitionCost
		channel := v.AcquisitionChannel.String()
		from := Counterparty{
			Name:    v.AcquiredFrom.Name,
			Phone:   v.AcquiredFrom.Phone,
			Address: v.AcquiredFrom.Address,
			IDProof: v.AcquiredFrom.IDProof,
		}
		acquiredAt := v.AcquiredAt
		total := v.TotalAcquisitionCost()

		resp.AcquisitionCost = &cost
		resp.AcquisitionChannel = &channel
		resp.AcquiredFrom = &from
		resp.AcquiredAt = &acquiredAt
		resp.TotalCost = &total
		resp.Profit = v.Profit()
	}

	return resp
}
