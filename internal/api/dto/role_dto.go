package dto

import "github.com/spec-kit/helpdesk-assignment/internal/domain"

// CreateRoleRequest payload for adding a responsible role. Omitting
// initialPermissions grants every permission option.
type CreateRoleRequest struct {
	Title              string                    `json:"title"`
	Description        string                    `json:"description"`
	AccessLevel        domain.AccessLevel        `json:"accessLevel"`
	PermissionOptions  []domain.PermissionOption `json:"permissionOptions"`
	InitialPermissions []string                  `json:"initialPermissions"`
	Icon               string                    `json:"icon"`
}

// AssignRoleRequest seats a technician into a role; null clears the seat.
type AssignRoleRequest struct {
	TechnicianID *string `json:"technicianId"`
}

// SetRolePermissionsRequest replaces a role's permission grant.
type SetRolePermissionsRequest struct {
	Permissions []string `json:"permissions"`
}
