package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/motodesk/backend/internal/application/catalog"
	inventoryapp "github.com/motodesk/backend/internal/application/inventory"
	ledgerapp "github.com/motodesk/backend/internal/application/ledger"
	"github.com/motodesk/backend/internal/interfaces/http/dto"
)

// VehicleHandler handles vehicle lifecycle API endpoints
type VehicleHandler struct {
	BaseHandler
	lifecycleService   *inventoryapp.LifecycleService
	ledgerService      *ledgerapp.Service
	descriptionService *catalogapp.DescriptionService
}

// NewVehicleHandler creates a new VehicleHandler
func NewVehicleHandler(
	lifecycleService *inventoryapp.LifecycleService,
	ledgerService *ledgerapp.Service,
	descriptionService *catalogapp.DescriptionService,
) *VehicleHandler {
	return &VehicleHandler{
		lifecycleService:   lifecycleService,
		ledgerService:      ledgerService,
		descriptionService: descriptionService,
	}
}

// bindVehicleID parses the vehicle ID from the URI
func (h *VehicleHandler) bindVehicleID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid vehicle ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID")
		return uuid.Nil, false
	}
	return id, true
}

// Acquire brings a new vehicle into stock
func (h *VehicleHandler) Acquire(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.AcquireVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.lifecycleService.Acquire(c.Request.Context(), orgID, actorID, getRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns a page of the organization's vehicles
func (h *VehicleHandler) List(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter inventoryapp.VehicleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.lifecycleService.List(c.Request.Context(), orgID, getRole(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.PageSize)
}

// Get returns a single vehicle
func (h *VehicleHandler) Get(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	vehicleID, ok := h.bindVehicleID(c)
	if !ok {
		return
	}

	resp, err := h.lifecycleService.GetByID(c.Request.Context(), orgID, vehicleID, getRole(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update modifies a vehicle's descriptive and registration fields
func (h *VehicleHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	vehicleID, ok := h.bindVehicleID(c)
	if !ok {
		return
	}

	var req inventoryapp.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.lifecycleService.UpdateDetails(c.Request.Context(), orgID, vehicleID, getRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateAcquisition corrects the restricted acquisition record
func (h *VehicleHandler) UpdateAcquisition(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	vehicleID, ok := h.bindVehicleID(c)
	if !ok {
		return
	}

	var req inventoryapp.UpdateAcquisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.lifecycleService.UpdateAcquisition(c.Request.Context(), orgID, vehicleID, getRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RecordCost records a repair or holding cost against a vehicle
func (h *VehicleHandler) RecordCost(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	vehicleID, ok := h.bindVehicleID(c)
	if !ok {
		return
	}

	var req inventoryapp.RecordCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.lifecycleService.RecordCost(c.Request.Context(), orgID, actorID, vehicleID, getRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Dispose sells a vehicle, closing its lifecycle
func (h *VehicleHandler) Dispose(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	vehicleID, ok := h.bindVehicleID(c)
	if !ok {
		return
	}

	var req inventoryapp.DisposeVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.lifecycleService.Dispose(c.Request.Context(), orgID, actorID, vehicleID, getRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ChangeStatus moves a vehicle between the non-terminal states
func (h *VehicleHandler) ChangeStatus(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	vehicleID, ok := h.bindVehicleID(c)
	if !ok {
		return
	}

	var req inventoryapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.lifecycleService.ChangeStatus(c.Request.Context(), orgID, vehicleID, getRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Remove deletes a never-disposed vehicle from stock
func (h *VehicleHandler) Remove(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	vehicleID, ok := h.bindVehicleID(c)
	if !ok {
		return
	}

	if err := h.lifecycleService.Remove(c.Request.Context(), orgID, vehicleID, getRole(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Transactions returns the ledger entries linked to one vehicle
func (h *VehicleHandler) Transactions(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	vehicleID, ok := h.bindVehicleID(c)
	if !ok {
		return
	}

	resp, err := h.ledgerService.VehicleTransactions(c.Request.Context(), orgID, getRole(c), vehicleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Summary counts the organization's vehicles per status
func (h *VehicleHandler) Summary(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.lifecycleService.StatusSummary(c.Request.Context(), orgID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Describe generates listing copy for a vehicle profile
func (h *VehicleHandler) Describe(c *gin.Context) {
	var req catalogapp.DescribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.descriptionService.Describe(c.Request.Context(), getRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers vehicle routes
func (h *VehicleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	vehicles := rg.Group("/vehicles")
	{
		vehicles.POST("", h.Acquire)
		vehicles.GET("", h.List)
		vehicles.GET("/summary", h.Summary)
		vehicles.POST("/describe", h.Describe)
		vehicles.GET("/:id", h.Get)
		vehicles.PUT("/:id", h.Update)
		vehicles.DELETE("/:id", h.Remove)
		vehicles.PUT("/:id/acquisition", h.UpdateAcquisition)
		vehicles.POST("/:id/costs", h.RecordCost)
		vehicles.POST("/:id/dispose", h.Dispose)
		vehicles.PUT("/:id/status", h.ChangeStatus)
		vehicles.GET("/:id/transactions", h.Transactions)
	}
}
