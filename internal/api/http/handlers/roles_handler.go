package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-assignment/internal/api/dto"
	"github.com/spec-kit/helpdesk-assignment/internal/service"
	apperrors "github.com/spec-kit/helpdesk-assignment/pkg/util"
)

// RolesHandler manages responsible-role endpoints.
type RolesHandler struct {
	service *service.RoleService
}

// NewRolesHandler constructs handler.
func NewRolesHandler(roleService *service.RoleService) *RolesHandler {
	return &RolesHandler{service: roleService}
}

// ListRoles GET /roles.
func (h *RolesHandler) ListRoles(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.service.ListRoles(c.UserContext())})
}

// CreateRole POST /roles.
func (h *RolesHandler) CreateRole(c *fiber.Ctx) error {
	var req dto.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	role, err := h.service.CreateRole(c.UserContext(), service.RoleCreateInput{
		Title:              req.Title,
		Description:        req.Description,
		AccessLevel:        req.AccessLevel,
		PermissionOptions:  req.PermissionOptions,
		InitialPermissions: req.InitialPermissions,
		Icon:               req.Icon,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": role})
}

// AssignTechnician PUT /roles/:id/technician.
func (h *RolesHandler) AssignTechnician(c *fiber.Ctx) error {
	var req dto.AssignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	view, err := h.service.AssignTechnician(c.UserContext(), c.Params("id"), req.TechnicianID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}

// SetPermissions PUT /roles/:id/permissions.
func (h *RolesHandler) SetPermissions(c *fiber.Ctx) error {
	var req dto.SetRolePermissionsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	view, err := h.service.SetPermissions(c.UserContext(), c.Params("id"), req.Permissions)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}

// Submit POST /roles/:id/submit.
func (h *RolesHandler) Submit(c *fiber.Ctx) error {
	view, err := h.service.Submit(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}

// Unlock POST /roles/:id/unlock.
func (h *RolesHandler) Unlock(c *fiber.Ctx) error {
	view, err := h.service.Unlock(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}
