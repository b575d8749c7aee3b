package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

// RoleHandler handles HTTP requests for role and permission management
type RoleHandler struct {
	roleRepo repository.RoleRepository
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleRepo repository.RoleRepository) *RoleHandler {
	return &RoleHandler{roleRepo: roleRepo}
}

// List godoc
// @Summary List roles
// @Description Get all roles with their permission sets
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Role
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roleRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list roles"})
		return
	}
	c.JSON(http.StatusOK, roles)
}

// Get godoc
// @Summary Get a role
// @Description Get a single role by id with its permissions
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Role ID"
// @Success 200 {object} models.Role
// @Failure 400 {object} models.ErrorResponse "Invalid id"
// @Failure 404 {object} models.ErrorResponse "Role not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /roles/{id} [get]
func (h *RoleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid role id"})
		return
	}

	role, err := h.roleRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "role not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get role"})
		return
	}

	permissions, err := h.roleRepo.GetPermissions(c.Request.Context(), role.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load permissions"})
		return
	}
	role.Permissions = permissions

	c.JSON(http.StatusOK, role)
}

// Create godoc
// @Summary Create a role
// @Description Create a new role
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateRoleRequest true "Role details"
// @Success 201 {object} models.Role
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 409 {object} models.ErrorResponse "Role already exists"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /roles [post]
func (h *RoleHandler) Create(c *gin.Context) {
	var req models.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	role := &models.Role{
		Name:        req.Name,
		IsProtected: req.IsProtected,
	}

	if err := h.roleRepo.Create(c.Request.Context(), role); err != nil {
		if errors.Is(err, repository.ErrRoleExists) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "role already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create role"})
		return
	}

	c.JSON(http.StatusCreated, role)
}

// Update godoc
// @Summary Update a role
// @Description Rename a role. Protected roles cannot be renamed.
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Role ID"
// @Param request body models.UpdateRoleRequest true "New name"
// @Success 200 {object} models.Role
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 403 {object} models.ErrorResponse "Role is protected"
// @Failure 404 {object} models.ErrorResponse "Role not found"
// @Failure 409 {object} models.ErrorResponse "Name already taken"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /roles/{id} [put]
func (h *RoleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid role id"})
		return
	}

	var req models.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	role, err := h.roleRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "role not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get role"})
		return
	}

	role.Name = req.Name

	if err := h.roleRepo.Update(c.Request.Context(), role); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoleProtected):
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "role is protected"})
		case errors.Is(err, repository.ErrRoleExists):
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "role name already taken"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update role"})
		}
		return
	}

	c.JSON(http.StatusOK, role)
}

// Delete godoc
// @Summary Delete a role
// @Description Delete a role. Protected roles and roles still assigned to users cannot be deleted.
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Role ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse "Invalid id"
// @Failure 403 {object} models.ErrorResponse "Role is protected"
// @Failure 404 {object} models.ErrorResponse "Role not found"
// @Failure 409 {object} models.ErrorResponse "Role is in use"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /roles/{id} [delete]
func (h *RoleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid role id"})
		return
	}

	if err := h.roleRepo.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoleNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "role not found"})
		case errors.Is(err, repository.ErrRoleProtected):
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "role is protected"})
		case errors.Is(err, repository.ErrRoleInUse):
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "role is assigned to users"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete role"})
		}
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Message: "role deleted"})
}

// SetPermissions godoc
// @Summary Set role permissions
// @Description Replace the full permission set of a role
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Role ID"
// @Param request body models.SetRolePermissionsRequest true "Permission ids"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 404 {object} models.ErrorResponse "Role not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /roles/{id}/permissions [put]
func (h *RoleHandler) SetPermissions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid role id"})
		return
	}

	var req models.SetRolePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.roleRepo.SetPermissions(c.Request.Context(), id, req.PermissionIDs); err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "role not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to set permissions"})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Message: "permissions updated"})
}

// ListPermissions godoc
// @Summary List permissions
// @Description Get the catalogue of all known permissions
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Permission
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /permissions [get]
func (h *RoleHandler) ListPermissions(c *gin.Context) {
	permissions, err := h.roleRepo.ListPermissions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list permissions"})
		return
	}
	c.JSON(http.StatusOK, permissions)
}
