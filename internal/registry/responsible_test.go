package registry

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-assignment/internal/domain"
	"github.com/spec-kit/helpdesk-assignment/internal/storage"
)

func seedRoleDefs() []domain.ResponsibleRoleDefinition {
	return []domain.ResponsibleRoleDefinition{
		{
			ID:          "it-lead",
			Title:       "IT lead",
			AccessLevel: domain.AccessLevelFull,
			PermissionOptions: []domain.PermissionOption{
				{ID: "manage-tickets", Label: "Manage tickets"},
				{ID: "view-reports", Label: "View reports"},
			},
			CreatedAt: 1,
		},
	}
}

func seedRoleAssignments() map[string]domain.ResponsibleAssignment {
	holder := "lead-001"
	return map[string]domain.ResponsibleAssignment{
		"it-lead": {
			TechnicianID: &holder,
			AccessLevel:  domain.AccessLevelFull,
			Permissions:  []string{"manage-tickets"},
		},
	}
}

func newRoleRegistry(t *testing.T, store storage.Store) *ResponsibleRegistry {
	t.Helper()
	return NewResponsibleRegistry(context.Background(), store, zap.NewNop(), seedRoleDefs(), seedRoleAssignments())
}

func TestResponsibleRegistrySeedsOnFirstLoad(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	r := newRoleRegistry(t, store)

	defs := r.Definitions()
	require.Len(t, defs, 1)
	assert.Equal(t, "it-lead", defs[0].ID)

	assignment, lock, ok := r.Assignment("it-lead")
	require.True(t, ok)
	require.NotNil(t, assignment.TechnicianID)
	assert.Equal(t, "lead-001", *assignment.TechnicianID)
	assert.False(t, lock.Locked)
}

func TestLockedRoleRejectsMutations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := newRoleRegistry(t, storage.NewMemoryStore())

	require.True(t, r.Submit(ctx, "it-lead"))

	other := "lead-002"
	assert.False(t, r.AssignTechnician(ctx, "it-lead", &other))
	assert.False(t, r.SetPermissions(ctx, "it-lead", []string{"view-reports"}))

	// state is untouched by the rejected writes
	assignment, lock, _ := r.Assignment("it-lead")
	assert.Equal(t, "lead-001", *assignment.TechnicianID)
	assert.Equal(t, []string{"manage-tickets"}, assignment.Permissions)
	assert.True(t, lock.Locked)
	assert.NotZero(t, lock.SubmittedAt)

	// after unlocking, the same mutation goes through
	require.True(t, r.Unlock(ctx, "it-lead"))
	_, lock, _ = r.Assignment("it-lead")
	assert.False(t, lock.Locked)
	assert.Zero(t, lock.SubmittedAt)

	assert.True(t, r.AssignTechnician(ctx, "it-lead", &other))
	assignment, _, _ = r.Assignment("it-lead")
	assert.Equal(t, "lead-002", *assignment.TechnicianID)
}

func TestSubmitStampsUnixMillis(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := newRoleRegistry(t, storage.NewMemoryStore())
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	require.True(t, r.Submit(ctx, "it-lead"))
	_, lock, _ := r.Assignment("it-lead")
	assert.Equal(t, fixed.UnixMilli(), lock.SubmittedAt)

	// submitting again keeps the original stamp
	r.now = func() time.Time { return fixed.Add(time.Hour) }
	require.True(t, r.Submit(ctx, "it-lead"))
	_, lock, _ = r.Assignment("it-lead")
	assert.Equal(t, fixed.UnixMilli(), lock.SubmittedAt)
}

func TestUnknownRoleMutationsReportFalse(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := newRoleRegistry(t, storage.NewMemoryStore())

	id := "lead-001"
	assert.False(t, r.AssignTechnician(ctx, "ghost", &id))
	assert.False(t, r.SetPermissions(ctx, "ghost", nil))
	assert.False(t, r.Submit(ctx, "ghost"))
	assert.False(t, r.Unlock(ctx, "ghost"))
}

func TestAddRoleValidatesBeforeCommitting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := newRoleRegistry(t, storage.NewMemoryStore())
	options := []domain.PermissionOption{{ID: "view-reports", Label: "View reports"}}

	_, err := r.AddRole(ctx, "   ", "", domain.AccessLevelFull, options, nil, "star")
	assert.Error(t, err)

	_, err = r.AddRole(ctx, "QA lead", "", domain.AccessLevelFull, nil, nil, "star")
	assert.Error(t, err)

	_, err = r.AddRole(ctx, "QA lead", "", domain.AccessLevel("root"), options, nil, "star")
	assert.Error(t, err)

	_, err = r.AddRole(ctx, "it lead", "", domain.AccessLevelPartial, options, nil, "star")
	assert.Error(t, err, "duplicate title, case-insensitive")

	// nothing was committed by the failed attempts
	assert.Len(t, r.Definitions(), 1)
}

func TestAddRoleCreatesAssignmentAndLockEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStore()
	r := newRoleRegistry(t, store)
	options := []domain.PermissionOption{{ID: "view-reports", Label: "View reports"}}

	def, err := r.AddRole(ctx, "QA Lead", "Quality gate owner", domain.AccessLevelPartial, options, nil, "shield")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(def.ID, "custom-qa-lead-"), "id %q", def.ID)
	assert.Equal(t, "QA Lead", def.Title)
	assert.NotZero(t, def.CreatedAt)

	assignment, lock, ok := r.Assignment(def.ID)
	require.True(t, ok)
	assert.Nil(t, assignment.TechnicianID)
	assert.Equal(t, []string{"view-reports"}, assignment.Permissions)
	assert.False(t, lock.Locked)

	// the new role survives a reload
	second := newRoleRegistry(t, store)
	assert.Len(t, second.Definitions(), 2)
}

func TestAddRoleDefaultsToAllPermissions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := newRoleRegistry(t, storage.NewMemoryStore())
	options := []domain.PermissionOption{
		{ID: "manage-tickets", Label: "Manage tickets"},
		{ID: "view-reports", Label: "View reports"},
	}

	def, err := r.AddRole(ctx, "QA lead", "", domain.AccessLevelPartial, options, nil, "")
	require.NoError(t, err)

	assignment, _, ok := r.Assignment(def.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"manage-tickets", "view-reports"}, assignment.Permissions)
}

func TestAddRoleHonorsInitialPermissionList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := newRoleRegistry(t, storage.NewMemoryStore())
	options := []domain.PermissionOption{
		{ID: "manage-tickets", Label: "Manage tickets"},
		{ID: "view-reports", Label: "View reports"},
	}

	def, err := r.AddRole(ctx, "QA lead", "", domain.AccessLevelPartial, options,
		[]string{"view-reports", "view-reports"}, "")
	require.NoError(t, err)

	assignment, _, ok := r.Assignment(def.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"view-reports"}, assignment.Permissions)
}

func TestAddRoleIDsAreUniquePerTick(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := newRoleRegistry(t, storage.NewMemoryStore())
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }
	options := []domain.PermissionOption{{ID: "view-reports", Label: "View reports"}}

	first, err := r.AddRole(ctx, "QA lead", "", domain.AccessLevelPartial, options, nil, "")
	require.NoError(t, err)
	second, err := r.AddRole(ctx, "Release lead", "", domain.AccessLevelPartial, options, nil, "")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestHealBackfillsMissingEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStore()

	// definitions snapshot knows two roles but the assignment and lock
	// snapshots only cover the first
	defs := append(seedRoleDefs(), domain.ResponsibleRoleDefinition{
		ID:          "head-programmer",
		Title:       "Head programmer",
		AccessLevel: domain.AccessLevelPartial,
		PermissionOptions: []domain.PermissionOption{
			{ID: "view-reports", Label: "View reports"},
		},
		CreatedAt: 2,
	})
	rawDefs, err := json.Marshal(defs)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, roleDefinitionsKey, rawDefs))

	rawAssignments, err := json.Marshal(seedRoleAssignments())
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, responsibleAssignmentsKey, rawAssignments))

	r := newRoleRegistry(t, store)

	assignment, lock, ok := r.Assignment("head-programmer")
	require.True(t, ok)
	assert.Nil(t, assignment.TechnicianID)
	assert.Equal(t, domain.AccessLevelPartial, assignment.AccessLevel)
	assert.Equal(t, []string{"view-reports"}, assignment.Permissions, "backfilled role grants every option")
	assert.False(t, lock.Locked)
}
