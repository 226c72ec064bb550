package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/motodesk/backend/internal/domain/access"
	"github.com/motodesk/backend/internal/domain/inventory"
	"github.com/motodesk/backend/internal/domain/ledger"
	"github.com/motodesk/backend/internal/domain/shared"
	"github.com/motodesk/backend/internal/domain/shared/valueobject"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockVehicleRepository is a mock implementation of inventory.VehicleRepository
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*inventory.Vehicle, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter inventory.VehicleFilter) ([]inventory.Vehicle, int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]inventory.Vehicle), args.Get(1).(int64), args.Error(2)
}

func (m *MockVehicleRepository) Save(ctx context.Context, v *inventory.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) CountByStatus(ctx context.Context, orgID uuid.UUID) (map[inventory.VehicleStatus]int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(map[inventory.VehicleStatus]int64), args.Error(1)
}

// MockLedgerRepository is a mock implementation of ledger.TransactionRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(ctx context.Context, tx *ledger.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*ledger.Transaction, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID) ([]ledger.Transaction, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) FindByVehicle(ctx context.Context, orgID, vehicleID uuid.UUID) ([]ledger.Transaction, error) {
	args := m.Called(ctx, orgID, vehicleID)
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

// =============================================================================
// Helpers
// =============================================================================

func newLifecycleService(vehicleRepo *MockVehicleRepository, ledgerRepo *MockLedgerRepository) *LifecycleService {
	scope := NewNoOpTransactionScope(vehicleRepo, ledgerRepo)
	return NewLifecycleService(scope, vehicleRepo)
}

func acquireRequest(cost string) AcquireVehicleRequest {
	return AcquireVehicleRequest{
		Make:               "Hero",
		Model:              "Splendor Plus",
		Year:               2019,
		Color:              "Black",
		Odometer:           24500,
		AcquisitionCost:    decimal.RequireFromString(cost),
		AcquisitionChannel: "CASH",
		AcquiredFrom:       CounterpartyRequest{Name: "Ramesh Kumar", Phone: "9876543210"},
	}
}

func stockVehicle(t *testing.T, orgID uuid.UUID, cost string) *inventory.Vehicle {
	t.Helper()
	v, err := inventory.NewVehicle(orgID, inventory.AcquireVehicleSpec{
		Make:               "Hero",
		Model:              "Splendor Plus",
		Year:               2019,
		AcquisitionCost:    valueobject.NewMoney(decimal.RequireFromString(cost)),
		AcquisitionChannel: valueobject.ChannelCash,
	})
	require.NoError(t, err)
	return v
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

// =============================================================================
// Acquire
// =============================================================================

func TestLifecycleService_Acquire_AppendsAcquisitionEntry(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := newLifecycleService(vehicleRepo, ledgerRepo)
	orgID := uuid.New()
	actorID := uuid.New()

	vehicleRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.Vehicle")).Return(nil)
	ledgerRepo.On("Append", mock.Anything, mock.MatchedBy(func(tx *ledger.Transaction) bool {
		return tx.Category == ledger.CategoryAcquisition &&
			tx.Direction == ledger.DirectionOut &&
			tx.Amount.Equal(decimal.RequireFromString("45000")) &&
			tx.Channel == valueobject.ChannelCash &&
			tx.VehicleID != nil
	})).Return(nil)

	resp, err := service.Acquire(context.Background(), orgID, actorID, access.RoleFullAccess, acquireRequest("45000"))

	require.NoError(t, err)
	assert.Equal(t, "AVAILABLE", resp.Status)
	require.NotNil(t, resp.AcquisitionCost)
	assert.True(t, resp.AcquisitionCost.Equal(decimal.RequireFromString("45000")))
	vehicleRepo.AssertNumberOfCalls(t, "Save", 1)
	ledgerRepo.AssertNumberOfCalls(t, "Append", 1)
}

func TestLifecycleService_Acquire_ZeroCostSkipsLedger(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := newLifecycleService(vehicleRepo, ledgerRepo)

	vehicleRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.Vehicle")).Return(nil)

	resp, err := service.Acquire(context.Background(), uuid.New(), uuid.New(), access.RoleFullAccess, acquireRequest("0"))

	require.NoError(t, err)
	assert.NotNil(t, resp)
	ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestLifecycleService_Acquire_ForbiddenForRestricted(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := newLifecycleService(vehicleRepo, ledgerRepo)

	for _, role := range []access.Role{access.RoleRestricted, access.RoleReadOnly} {
		_, err := service.Acquire(context.Background(), uuid.New(), uuid.New(), role, acquireRequest("45000"))
		assertCode(t, err, "FORBIDDEN")
	}

	vehicleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestLifecycleService_Acquire_NegativeCostRejected(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := newLifecycleService(vehicleRepo, ledgerRepo)

	_, err := service.Acquire(context.Background(), uuid.New(), uuid.New(), access.RoleFullAccess, acquireRequest("-1"))

	assertCode(t, err, "INVALID_AMOUNT")
	vehicleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// =============================================================================
// RecordCost
// =============================================================================

func TestLifecycleService_RecordCost_AppendsExpenseEntry(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := newLifecycleService(vehicleRepo, ledgerRepo)
	orgID := uuid.New()
	vehicle := stockVehicle(t, orgID, "45000")

	vehicleRepo.On("FindByID", mock.Anything, orgID, vehicle.ID).Return(vehicle, nil)
	vehicleRepo.On("Save", mock.Anything, vehicle).Return(nil)
	ledgerRepo.On("Append", mock.Anything, mock.MatchedBy(func(tx *ledger.Transaction) bool {
		return tx.Category == ledger.CategoryExpense &&
			tx.Direction == ledger.DirectionOut &&
			tx.Amount.Equal(decimal.RequireFromString("1200")) &&
			tx.VehicleID != nil && *tx.VehicleID == vehicle.ID
	})).Return(nil)

	resp, err := service.RecordCost(context.Background(), orgID, uuid.New(), vehicle.ID, access.RoleRestricted, RecordCostRequest{
		Amount:      decimal.RequireFromString("1200"),
		Description: "Chain sprocket replacement",
		Channel:     "CASH",
	})

	require.NoError(t, err)
	require.Len(t, resp.CostEvents, 1)
	assert.Equal(t, "Chain sprocket replacement", resp.CostEvents[0].Description)
	ledgerRepo.AssertNumberOfCalls(t, "Append", 1)
}

func TestLifecycleService_RecordCost_VehicleNotFound(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := newLifecycleService(vehicleRepo, ledgerRepo)
	orgID := uuid.New()
	missing := uuid.New()

	vehicleRepo.On("FindByID", mock.Anything, orgID, missing).Return(nil, nil)

	_, err := service.RecordCost(context.Background(), orgID, uuid.New(), missing, access.RoleFullAccess, RecordCostRequest{
		Amount:      decimal.RequireFromString("500"),
		Description: "Oil change",
		Channel:     "CASH",
	})

	assertCode(t, err, "NOT_FOUND")
	ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestLifecycleService_RecordCost_DisposedVehicleRejected(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := newLifecycleService(vehicleRepo, ledgerRepo)
	orgID := uuid.New()
	vehicle := stockVehicle(t, orgID, "45000")
	_, err := vehicle.Dispose(inventory.Buyer{Name: "Suresh"}, valueobject.NewMoney(decimal.RequireFromString("60000")), valueobject.ChannelOnline, uuid.New())
	require.NoError(t, err)

	vehicleRepo.On("FindByID", mock.Anything, orgID, vehicle.ID).Return(vehicle, nil)

	_, err = service.RecordCost(context.Background(), orgID, uuid.New(), vehicle.ID, access.RoleFullAccess, RecordCostRequest{
		Amount:      decimal.RequireFromString("500"),
		Description: "Oil change",
		Channel:     "CASH",
	})

	assertCode(t, err, "INVALID_STATE")
	vehicleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

// =============================================================================
// Dispose
// =============================================================================

func TestLifecycleService_Dispose_AppendsSaleEntry(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := newLifecycleService(vehicleRepo, ledgerRepo)
	orgID := uuid.New()
	actorID := uuid.New()
	vehicle := stockVehicle(t, orgID, "45000")

	vehicleRepo.On("FindByID", mock.Anything, orgID, vehicle.ID).Return(vehicle, nil)
	vehicleRepo.On("Save", mock.Anything, vehicle).Return(nil)
	ledgerRepo.On("Append", mock.Anything, mock.MatchedBy(func(tx *ledger.Transaction) bool {
		return tx.Category == ledger.CategorySale &&
			tx.Direction == ledger.DirectionIn &&
			tx.Amount.Equal(decimal.RequireFromString("60000")) &&
			tx.Channel == valueobject.ChannelOnline
	})).Return(nil)

	resp, err := service.Dispose(context.Background(), orgID, actorID, vehicle.ID, access.RoleFullAccess, DisposeVehicleRequest{
		Buyer:   BuyerRequest{Name: "Suresh Patil", Phone: "9812345678"},
		Amount:  decimal.RequireFromString("60000"),
		Channel: "ONLINE",
	})

	require.NoError(t, err)
	assert.Equal(t, "DISPOSED", resp.Status)
	require.NotNil(t, resp.Disposal)
	assert.Equal(t, "Suresh Patil", resp.Disposal.BuyerName)
	assert.Equal(t, actorID, resp.Disposal.DisposedBy)
	ledgerRepo.AssertNumberOfCalls(t, "Append", 1)
}

func TestLifecycleService_Dispose_SecondDisposalRejected(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := newLifecycleService(vehicleRepo, ledgerRepo)
	orgID := uuid.New()
	vehicle := stockVehicle(t, orgID, "45000")
	_, err := vehicle.Dispose(inventory.Buyer{Name: "Suresh"}, valueobject.NewMoney(decimal.RequireFromString("60000")), valueobject.ChannelCash, uuid.New())
	require.NoError(t, err)

	vehicleRepo.On("FindByID", mock.Anything, orgID, vehicle.ID).Return(vehicle, nil)

	_, err = service.Dispose(context.Background(), orgID, uuid.New(), vehicle.ID, access.RoleFullAccess, DisposeVehicleRequest{
		Buyer:   BuyerRequest{Name: "Mahesh"},
		Amount:  decimal.RequireFromString("55000"),
		Channel: "CASH",
	})

	assertCode(t, err, "INVALID_STATE")
	ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestLifecycleService_Dispose_NonPositiveAmountRejected(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := newLifecycleService(vehicleRepo, ledgerRepo)
	orgID := uuid.New()
	vehicle := stockVehicle(t, orgID, "45000")

	vehicleRepo.On("FindByID", mock.Anything, orgID, vehicle.ID).Return(vehicle, nil)

	_, err := service.Dispose(context.Background(), orgID, uuid.New(), vehicle.ID, access.RoleFullAccess, DisposeVehicleRequest{
		Buyer:   BuyerRequest{Name: "Suresh"},
		Amount:  decimal.Zero,
		Channel: "CASH",
	})

	assertCode(t, err, "INVALID_AMOUNT")
	assert.False(t, vehicle.IsDisposed())
	vehicleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

// =============================================================================
// Remove
// =============================================================================

func TestLifecycleService_Remove_DeletesVehicleOnly(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := newLifecycleService(vehicleRepo, ledgerRepo)
	orgID := uuid.New()
	vehicle := stockVehicle(t, orgID, "45000")

	vehicleRepo.On("FindByID", mock.Anything, orgID, vehicle.ID).Return(vehicle, nil)
	vehicleRepo.On("Delete", mock.Anything, orgID, vehicle.ID).Return(nil)

	err := service.Remove(context.Background(), orgID, vehicle.ID, access.RoleFullAccess)

	require.NoError(t, err)
	vehicleRepo.AssertNumberOfCalls(t, "Delete", 1)
	ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestLifecycleService_Remove_ForbiddenForRestricted(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := newLifecycleService(vehicleRepo, ledgerRepo)

	err := service.Remove(context.Background(), uuid.New(), uuid.New(), access.RoleRestricted)

	assertCode(t, err, "FORBIDDEN")
	vehicleRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

// =============================================================================
// UpdateAcquisition
// =============================================================================

func TestLifecycleService_UpdateAcquisition_RewritesRecord(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := newLifecycleService(vehicleRepo, ledgerRepo)

	orgID := uuid.New()
	vehicle := stockVehicle(t, orgID, "45000")

	vehicleRepo.On("FindByID", mock.Anything, orgID, vehicle.ID).Return(vehicle, nil)
	vehicleRepo.On("Save", mock.Anything, vehicle).Return(nil)

	resp, err := service.UpdateAcquisition(context.Background(), orgID, vehicle.ID, access.RoleFullAccess, UpdateAcquisitionRequest{
		AcquisitionCost:    decimal.RequireFromString("42000"),
		AcquisitionChannel: "ONLINE",
		AcquiredFrom:       CounterpartyRequest{Name: "Suresh Patil", Phone: "9123456780"},
	})

	require.NoError(t, err)
	require.NotNil(t, resp.AcquisitionCost)
	assert.Equal(t, "42000", resp.AcquisitionCost.String())
	require.NotNil(t, resp.AcquisitionChannel)
	assert.Equal(t, "ONLINE", *resp.AcquisitionChannel)
	ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestLifecycleService_UpdateAcquisition_ForbiddenForRestricted(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := newLifecycleService(vehicleRepo, ledgerRepo)

	req := UpdateAcquisitionRequest{
		AcquisitionCost:    decimal.RequireFromString("42000"),
		AcquisitionChannel: "CASH",
		AcquiredFrom:       CounterpartyRequest{Name: "Suresh Patil", Phone: "9123456780"},
	}

	for _, role := range []access.Role{access.RoleRestricted, access.RoleReadOnly} {
		_, err := service.UpdateAcquisition(context.Background(), uuid.New(), uuid.New(), role, req)
		assertCode(t, err, "FORBIDDEN")
	}

	vehicleRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
	vehicleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// =============================================================================
// Reads and redaction
// =============================================================================

func TestLifecycleService_GetByID_RedactsForRestricted(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := newLifecycleService(vehicleRepo, ledgerRepo)
	orgID := uuid.New()
	vehicle := stockVehicle(t, orgID, "45000")

	vehicleRepo.On("FindByID", mock.Anything, orgID, vehicle.ID).Return(vehicle, nil)

	resp, err := service.GetByID(context.Background(), orgID, vehicle.ID, access.RoleRestricted)

	require.NoError(t, err)
	assert.Nil(t, resp.AcquisitionCost)
	assert.Nil(t, resp.AcquiredFrom)
	assert.Nil(t, resp.TotalCost)
	assert.Nil(t, resp.Profit)
	assert.Equal(t, "Hero", resp.Make)
}

func TestLifecycleService_GetByID_FullAccessSeesRestrictedFields(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := newLifecycleService(vehicleRepo, ledgerRepo)
	orgID := uuid.New()
	vehicle := stockVehicle(t, orgID, "45000")

	vehicleRepo.On("FindByID", mock.Anything, orgID, vehicle.ID).Return(vehicle, nil)

	resp, err := service.GetByID(context.Background(), orgID, vehicle.ID, access.RoleFullAccess)

	require.NoError(t, err)
	require.NotNil(t, resp.AcquisitionCost)
	assert.True(t, resp.AcquisitionCost.Equal(decimal.RequireFromString("45000")))
	require.NotNil(t, resp.TotalCost)
	assert.Nil(t, resp.Profit)
}

// =============================================================================
// Derived values across a full lifecycle
// =============================================================================

func TestLifecycleService_FullLifecycle_DerivedValues(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	ledgerRepo := new(MockLedgerRepository)
	service := newLifecycleService(vehicleRepo, ledgerRepo)
	orgID := uuid.New()
	actorID := uuid.New()
	vehicle := stockVehicle(t, orgID, "45000")

	vehicleRepo.On("FindByID", mock.Anything, orgID, vehicle.ID).Return(vehicle, nil)
	vehicleRepo.On("Save", mock.Anything, vehicle).Return(nil)
	ledgerRepo.On("Append", mock.Anything, mock.AnythingOfType("*ledger.Transaction")).Return(nil)

	_, err := service.RecordCost(context.Background(), orgID, actorID, vehicle.ID, access.RoleFullAccess, RecordCostRequest{
		Amount:      decimal.RequireFromString("1200"),
		Description: "Chain sprocket replacement",
		Channel:     "CASH",
	})
	require.NoError(t, err)

	resp, err := service.Dispose(context.Background(), orgID, actorID, vehicle.ID, access.RoleFullAccess, DisposeVehicleRequest{
		Buyer:   BuyerRequest{Name: "Suresh Patil"},
		Amount:  decimal.RequireFromString("60000"),
		Channel: "ONLINE",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.TotalCost)
	assert.True(t, resp.TotalCost.Equal(decimal.RequireFromString("46200")))
	require.NotNil(t, resp.Profit)
	assert.True(t, resp.Profit.Equal(decimal.RequireFromString("13800")))
	ledgerRepo.AssertNumberOfCalls(t, "Append", 2)
}
