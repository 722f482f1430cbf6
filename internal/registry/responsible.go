package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-assignment/internal/domain"
	"github.com/spec-kit/helpdesk-assignment/internal/storage"
)

const (
	responsibleAssignmentsKey = "ticketing.responsible-technicians.v1"
	roleDefinitionsKey        = "ticketing.responsible-role-definitions.v1"
	lockStateKey              = "ticketing.responsible-technicians.lock-state.v1"
)

// ResponsibleRegistry manages responsible-role definitions, the technician
// assigned to each role with their permission set, and the per-role lock
// state. Mutations against a locked role are silently ignored and the
// applied flag reports whether the change took effect.
type ResponsibleRegistry struct {
	mu     sync.Mutex
	store  storage.Store
	logger *zap.Logger
	now    func() time.Time

	definitions []domain.ResponsibleRoleDefinition
	assignments map[string]domain.ResponsibleAssignment
	lockStates  map[string]domain.LockState
}

// NewResponsibleRegistry loads role definitions, assignments and lock states,
// seeding from the defaults on first use and repairing any role that is
// missing an assignment or lock entry.
func NewResponsibleRegistry(
	ctx context.Context,
	store storage.Store,
	logger *zap.Logger,
	seedDefinitions []domain.ResponsibleRoleDefinition,
	seedAssignments map[string]domain.ResponsibleAssignment,
) *ResponsibleRegistry {
	r := &ResponsibleRegistry{
		store:  store,
		logger: logger,
		now:    time.Now,
	}

	seedLocks := make(map[string]domain.LockState, len(seedDefinitions))
	for _, def := range seedDefinitions {
		seedLocks[def.ID] = domain.LockState{}
	}

	r.definitions = storage.LoadSnapshot(ctx, store, roleDefinitionsKey, seedDefinitions, logger)
	r.assignments = storage.LoadSnapshot(ctx, store, responsibleAssignmentsKey, seedAssignments, logger)
	r.lockStates = storage.LoadSnapshot(ctx, store, lockStateKey, seedLocks, logger)
	r.heal(ctx)
	return r
}

// heal backfills assignment and lock entries for roles that lack them, so a
// role added in an older snapshot cannot leave the registry inconsistent.
// Caller must hold the mutex (or be the constructor).
func (r *ResponsibleRegistry) heal(ctx context.Context) {
	assignmentsChanged := false
	locksChanged := false
	if r.assignments == nil {
		r.assignments = make(map[string]domain.ResponsibleAssignment)
	}
	if r.lockStates == nil {
		r.lockStates = make(map[string]domain.LockState)
	}
	for _, def := range r.definitions {
		if _, ok := r.assignments[def.ID]; !ok {
			r.assignments[def.ID] = domain.ResponsibleAssignment{
				AccessLevel: def.AccessLevel,
				Permissions: def.DefaultPermissions(),
			}
			assignmentsChanged = true
		}
		if _, ok := r.lockStates[def.ID]; !ok {
			r.lockStates[def.ID] = domain.LockState{}
			locksChanged = true
		}
	}
	if assignmentsChanged {
		storage.SaveSnapshot(ctx, r.store, responsibleAssignmentsKey, r.assignments, r.logger)
	}
	if locksChanged {
		storage.SaveSnapshot(ctx, r.store, lockStateKey, r.lockStates, r.logger)
	}
}

// Definitions returns a copy of the role definitions in stored order.
func (r *ResponsibleRegistry) Definitions() []domain.ResponsibleRoleDefinition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ResponsibleRoleDefinition(nil), r.definitions...)
}

// Assignment returns the current assignment and lock state for a role.
func (r *ResponsibleRegistry) Assignment(roleID string) (domain.ResponsibleAssignment, domain.LockState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	assignment, ok := r.assignments[roleID]
	if !ok {
		return domain.ResponsibleAssignment{}, domain.LockState{}, false
	}
	return assignment, r.lockStates[roleID], true
}

// Assignments returns a copy of the full assignment map.
func (r *ResponsibleRegistry) Assignments() map[string]domain.ResponsibleAssignment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]domain.ResponsibleAssignment, len(r.assignments))
	for id, a := range r.assignments {
		a.Permissions = append([]string(nil), a.Permissions...)
		out[id] = a
	}
	return out
}

// LockStates returns a copy of the lock-state map.
func (r *ResponsibleRegistry) LockStates() map[string]domain.LockState {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]domain.LockState, len(r.lockStates))
	for id, st := range r.lockStates {
		out[id] = st
	}
	return out
}

// AssignTechnician sets the technician holding a role. Passing nil clears
// the seat. The returned flag is false when the role is locked or unknown.
func (r *ResponsibleRegistry) AssignTechnician(ctx context.Context, roleID string, technicianID *string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	assignment, ok := r.assignments[roleID]
	if !ok || r.lockStates[roleID].Locked {
		return false
	}
	if technicianID != nil {
		id := *technicianID
		assignment.TechnicianID = &id
	} else {
		assignment.TechnicianID = nil
	}
	r.assignments[roleID] = assignment
	storage.SaveSnapshot(ctx, r.store, responsibleAssignmentsKey, r.assignments, r.logger)
	return true
}

// SetPermissions replaces the permission set of a role. Unknown or locked
// roles are left untouched and reported via the returned flag.
func (r *ResponsibleRegistry) SetPermissions(ctx context.Context, roleID string, permissions []string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	assignment, ok := r.assignments[roleID]
	if !ok || r.lockStates[roleID].Locked {
		return false
	}
	assignment.Permissions = dedupe(permissions)
	r.assignments[roleID] = assignment
	storage.SaveSnapshot(ctx, r.store, responsibleAssignmentsKey, r.assignments, r.logger)
	return true
}

// AddRole appends a new role definition, creating its vacant assignment and
// unlocked lock entry in the same commit. A nil initialPermissions grants
// every permission option; an explicit list is taken as-is (deduplicated).
// Validation happens before any state is touched.
func (r *ResponsibleRegistry) AddRole(ctx context.Context, title, description string, accessLevel domain.AccessLevel, permissionOptions []domain.PermissionOption, initialPermissions []string, icon string) (domain.ResponsibleRoleDefinition, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.ResponsibleRoleDefinition{}, fmt.Errorf("role title must not be empty")
	}
	if len(permissionOptions) == 0 {
		return domain.ResponsibleRoleDefinition{}, fmt.Errorf("role must define at least one permission option")
	}
	if accessLevel != domain.AccessLevelFull && accessLevel != domain.AccessLevelPartial {
		return domain.ResponsibleRoleDefinition{}, fmt.Errorf("unknown access level %q", accessLevel)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, def := range r.definitions {
		if strings.EqualFold(def.Title, title) {
			return domain.ResponsibleRoleDefinition{}, fmt.Errorf("role titled %q already exists", title)
		}
	}

	def := domain.ResponsibleRoleDefinition{
		ID:                r.newRoleID(title),
		Title:             title,
		Description:       strings.TrimSpace(description),
		AccessLevel:       accessLevel,
		PermissionOptions: append([]domain.PermissionOption(nil), permissionOptions...),
		CreatedAt:         r.now().UnixMilli(),
		Icon:              icon,
	}

	permissions := def.DefaultPermissions()
	if initialPermissions != nil {
		permissions = dedupe(initialPermissions)
	}

	r.definitions = append(r.definitions, def)
	r.assignments[def.ID] = domain.ResponsibleAssignment{
		AccessLevel: def.AccessLevel,
		Permissions: permissions,
	}
	r.lockStates[def.ID] = domain.LockState{}

	storage.SaveSnapshot(ctx, r.store, roleDefinitionsKey, r.definitions, r.logger)
	storage.SaveSnapshot(ctx, r.store, responsibleAssignmentsKey, r.assignments, r.logger)
	storage.SaveSnapshot(ctx, r.store, lockStateKey, r.lockStates, r.logger)
	return def, nil
}

// Submit locks a role, freezing its assignment and permissions. Returns
// false for unknown roles; re-submitting a locked role refreshes nothing.
func (r *ResponsibleRegistry) Submit(ctx context.Context, roleID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.lockStates[roleID]
	if !ok {
		return false
	}
	if state.Locked {
		return true
	}
	r.lockStates[roleID] = domain.LockState{Locked: true, SubmittedAt: r.now().UnixMilli()}
	storage.SaveSnapshot(ctx, r.store, lockStateKey, r.lockStates, r.logger)
	return true
}

// Unlock reopens a locked role and clears its submission timestamp.
func (r *ResponsibleRegistry) Unlock(ctx context.Context, roleID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lockStates[roleID]; !ok {
		return false
	}
	r.lockStates[roleID] = domain.LockState{}
	storage.SaveSnapshot(ctx, r.store, lockStateKey, r.lockStates, r.logger)
	return true
}

// newRoleID derives a readable, collision-resistant id from the role title.
func (r *ResponsibleRegistry) newRoleID(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("custom-%s-%d-%s", slug, r.now().UnixMilli(), suffix)
}
