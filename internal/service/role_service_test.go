package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-assignment/internal/domain"
	"github.com/spec-kit/helpdesk-assignment/internal/events"
	"github.com/spec-kit/helpdesk-assignment/internal/registry"
	"github.com/spec-kit/helpdesk-assignment/internal/storage"
	apperrors "github.com/spec-kit/helpdesk-assignment/pkg/util"
)

func newRoleFixture(t *testing.T) (*RoleService, events.Dispatcher) {
	t.Helper()

	ctx := context.Background()
	store := storage.NewMemoryStore()
	logger := zap.NewNop()

	holder := "tech-1"
	roleRegistry := registry.NewResponsibleRegistry(ctx, store, logger,
		[]domain.ResponsibleRoleDefinition{{
			ID:          "it-lead",
			Title:       "IT lead",
			AccessLevel: domain.AccessLevelFull,
			PermissionOptions: []domain.PermissionOption{
				{ID: "manage-tickets", Label: "Manage tickets"},
				{ID: "view-reports", Label: "View reports"},
			},
			CreatedAt: 1,
		}},
		map[string]domain.ResponsibleAssignment{
			"it-lead": {
				TechnicianID: &holder,
				AccessLevel:  domain.AccessLevelFull,
				Permissions:  []string{"manage-tickets"},
			},
		})
	techRegistry := registry.NewTechnicianRegistry(ctx, store, logger,
		[]domain.Technician{
			{ID: "tech-1", Name: "Alex Park", Status: domain.TechnicianAvailable},
			{ID: "tech-2", Name: "Robin Vale", Status: domain.TechnicianAvailable},
		},
		domain.CategoryAssignments{})

	dispatcher := events.NewInMemoryDispatcher()
	svc := NewRoleService(RoleDependencies{
		Roles:       roleRegistry,
		Technicians: techRegistry,
		Dispatcher:  dispatcher,
	})
	return svc, dispatcher
}

func TestCreateRoleValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newRoleFixture(t)

	_, err := svc.CreateRole(ctx, RoleCreateInput{Title: " ", AccessLevel: domain.AccessLevelFull,
		PermissionOptions: []domain.PermissionOption{{ID: "x", Label: "X"}}})
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	_, err = svc.CreateRole(ctx, RoleCreateInput{Title: "QA lead", AccessLevel: domain.AccessLevelFull})
	assert.Error(t, err, "permission options required")
}

func TestCreateRoleGeneratesSluggedID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newRoleFixture(t)

	role, err := svc.CreateRole(ctx, RoleCreateInput{
		Title:             "QA Lead",
		Description:       "Owns the quality gate",
		AccessLevel:       domain.AccessLevelPartial,
		PermissionOptions: []domain.PermissionOption{{ID: "view-reports", Label: "View reports"}},
		Icon:              "shield",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(role.ID, "custom-qa-lead-"), "id %q", role.ID)

	views := svc.ListRoles(ctx)
	require.Len(t, views, 2)
	assert.Equal(t, role.ID, views[1].Definition.ID)
	assert.False(t, views[1].LockState.Locked)
	// no initial list given, so the new role grants its whole option set
	assert.Equal(t, []string{"view-reports"}, views[1].Assignment.Permissions)
}

func TestAssignTechnicianAndClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newRoleFixture(t)

	other := "tech-2"
	view, err := svc.AssignTechnician(ctx, "it-lead", &other)
	require.NoError(t, err)
	require.NotNil(t, view.Assignment.TechnicianID)
	assert.Equal(t, "tech-2", *view.Assignment.TechnicianID)

	view, err = svc.AssignTechnician(ctx, "it-lead", nil)
	require.NoError(t, err)
	assert.Nil(t, view.Assignment.TechnicianID)

	ghost := "ghost"
	_, err = svc.AssignTechnician(ctx, "it-lead", &ghost)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestLockedRoleSurfacesConflict(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, dispatcher := newRoleFixture(t)

	var lockEvents []events.Event
	dispatcher.Subscribe(events.EventRoleLocked, func(_ context.Context, event events.Event) error {
		lockEvents = append(lockEvents, event)
		return nil
	})
	dispatcher.Subscribe(events.EventRoleUnlocked, func(_ context.Context, event events.Event) error {
		lockEvents = append(lockEvents, event)
		return nil
	})

	view, err := svc.Submit(ctx, "it-lead")
	require.NoError(t, err)
	assert.True(t, view.LockState.Locked)
	assert.NotZero(t, view.LockState.SubmittedAt)

	other := "tech-2"
	_, err = svc.AssignTechnician(ctx, "it-lead", &other)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CONFLICT", domainErr.Code)

	_, err = svc.SetPermissions(ctx, "it-lead", []string{"view-reports"})
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CONFLICT", domainErr.Code)

	view, err = svc.Unlock(ctx, "it-lead")
	require.NoError(t, err)
	assert.False(t, view.LockState.Locked)
	assert.Zero(t, view.LockState.SubmittedAt)

	view, err = svc.SetPermissions(ctx, "it-lead", []string{"view-reports"})
	require.NoError(t, err)
	assert.Equal(t, []string{"view-reports"}, view.Assignment.Permissions)

	require.Len(t, lockEvents, 2)
	assert.Equal(t, events.EventRoleLocked, lockEvents[0].Type)
	assert.Equal(t, events.EventRoleUnlocked, lockEvents[1].Type)
}

func TestRoleOperationsOnUnknownRole(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newRoleFixture(t)

	_, err := svc.Submit(ctx, "ghost")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)

	_, err = svc.Unlock(ctx, "ghost")
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
