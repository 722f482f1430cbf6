package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-assignment/internal/domain"
	"github.com/spec-kit/helpdesk-assignment/internal/events"
	"github.com/spec-kit/helpdesk-assignment/internal/registry"
	apperrors "github.com/spec-kit/helpdesk-assignment/pkg/util"
)

// RoleService exposes responsible-role management on top of the registry,
// translating registry outcomes into API-facing errors and events.
type RoleService struct {
	roles       *registry.ResponsibleRegistry
	technicians *registry.TechnicianRegistry
	dispatcher  events.Dispatcher
}

// RoleDependencies bundles collaborators.
type RoleDependencies struct {
	Roles       *registry.ResponsibleRegistry
	Technicians *registry.TechnicianRegistry
	Dispatcher  events.Dispatcher
}

// RoleCreateInput describes a new responsible role. A nil InitialPermissions
// grants every permission option.
type RoleCreateInput struct {
	Title              string
	Description        string
	AccessLevel        domain.AccessLevel
	PermissionOptions  []domain.PermissionOption
	InitialPermissions []string
	Icon               string
}

// RoleView joins a role definition with its current assignment and lock
// state for listing.
type RoleView struct {
	Definition domain.ResponsibleRoleDefinition `json:"definition"`
	Assignment domain.ResponsibleAssignment     `json:"assignment"`
	LockState  domain.LockState                 `json:"lockState"`
}

// NewRoleService creates the service.
func NewRoleService(deps RoleDependencies) *RoleService {
	return &RoleService{
		roles:       deps.Roles,
		technicians: deps.Technicians,
		dispatcher:  deps.Dispatcher,
	}
}

// ListRoles returns every role with its assignment and lock state.
func (s *RoleService) ListRoles(ctx context.Context) []RoleView {
	definitions := s.roles.Definitions()
	views := make([]RoleView, 0, len(definitions))
	for _, def := range definitions {
		assignment, lock, _ := s.roles.Assignment(def.ID)
		views = append(views, RoleView{Definition: def, Assignment: assignment, LockState: lock})
	}
	return views
}

// CreateRole adds a new role definition. Validation failures surface as
// validation errors; duplicate titles as conflicts.
func (s *RoleService) CreateRole(ctx context.Context, input RoleCreateInput) (*domain.ResponsibleRoleDefinition, error) {
	def, err := s.roles.AddRole(ctx, input.Title, input.Description, input.AccessLevel, input.PermissionOptions, input.InitialPermissions, input.Icon)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	return &def, nil
}

// AssignTechnician seats a technician into a role, or clears the seat when
// technicianID is nil. Locked roles reject the change.
func (s *RoleService) AssignTechnician(ctx context.Context, roleID string, technicianID *string) (*RoleView, error) {
	if technicianID != nil {
		if _, ok := s.technicians.FindTechnician(*technicianID); !ok {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": *technicianID})
		}
	}
	if !s.roles.AssignTechnician(ctx, roleID, technicianID) {
		return nil, s.mutationError(roleID)
	}
	return s.view(roleID)
}

// SetPermissions replaces the permission grant of a role. Locked roles
// reject the change.
func (s *RoleService) SetPermissions(ctx context.Context, roleID string, permissions []string) (*RoleView, error) {
	if !s.roles.SetPermissions(ctx, roleID, permissions) {
		return nil, s.mutationError(roleID)
	}
	return s.view(roleID)
}

// Submit locks a role, freezing assignment and permissions.
func (s *RoleService) Submit(ctx context.Context, roleID string) (*RoleView, error) {
	if !s.roles.Submit(ctx, roleID) {
		return nil, apperrors.NewNotFound("role", map[string]any{"role_id": roleID})
	}
	view, err := s.view(roleID)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type: events.EventRoleLocked,
		Payload: events.RoleLockPayload{
			RoleID:      roleID,
			SubmittedAt: view.LockState.SubmittedAt,
		},
	})
	return view, nil
}

// Unlock reopens a locked role.
func (s *RoleService) Unlock(ctx context.Context, roleID string) (*RoleView, error) {
	if !s.roles.Unlock(ctx, roleID) {
		return nil, apperrors.NewNotFound("role", map[string]any{"role_id": roleID})
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventRoleUnlocked,
		Payload: events.RoleLockPayload{RoleID: roleID},
	})
	return s.view(roleID)
}

func (s *RoleService) view(roleID string) (*RoleView, error) {
	for _, def := range s.roles.Definitions() {
		if def.ID == roleID {
			assignment, lock, _ := s.roles.Assignment(def.ID)
			return &RoleView{Definition: def, Assignment: assignment, LockState: lock}, nil
		}
	}
	return nil, apperrors.NewNotFound("role", map[string]any{"role_id": roleID})
}

// mutationError distinguishes an unknown role from a locked one.
func (s *RoleService) mutationError(roleID string) error {
	if _, lock, ok := s.roles.Assignment(roleID); ok {
		if lock.Locked {
			return apperrors.NewConflict("role is locked", map[string]any{"role_id": roleID})
		}
	}
	return apperrors.NewNotFound("role", map[string]any{"role_id": roleID})
}

func (s *RoleService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
