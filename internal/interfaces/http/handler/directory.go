package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	directoryapp "github.com/motodesk/backend/internal/application/directory"
	"github.com/motodesk/backend/internal/interfaces/http/dto"
)

// DirectoryHandler handles organization directory API endpoints
type DirectoryHandler struct {
	BaseHandler
	directoryService *directoryapp.Service
}

// NewDirectoryHandler creates a new DirectoryHandler
func NewDirectoryHandler(directoryService *directoryapp.Service) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

// bindActorID parses the actor ID from the URI
func (h *DirectoryHandler) bindActorID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid actor ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid actor ID")
		return uuid.Nil, false
	}
	return id, true
}

// List returns all actors in the organization
func (h *DirectoryHandler) List(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.directoryService.List(c.Request.Context(), orgID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Invite adds a new actor to the organization
func (h *DirectoryHandler) Invite(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req directoryapp.InviteActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.directoryService.Invite(c.Request.Context(), orgID, getRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ChangeRole changes an actor's role
func (h *DirectoryHandler) ChangeRole(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	actorID, ok := h.bindActorID(c)
	if !ok {
		return
	}

	var req directoryapp.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	resp, err := h.directoryService.ChangeRole(c.Request.Context(), orgID, actorID, getRole(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Remove deletes an actor from the organization
func (h *DirectoryHandler) Remove(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	actorID, ok := h.bindActorID(c)
	if !ok {
		return
	}

	if err := h.directoryService.Remove(c.Request.Context(), orgID, actorID, getRole(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers directory routes
func (h *DirectoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	actors := rg.Group("/actors")
	{
		actors.GET("", h.List)
		actors.POST("", h.Invite)
		actors.PUT("/:id/role", h.ChangeRole)
		actors.DELETE("/:id", h.Remove)
	}
}
