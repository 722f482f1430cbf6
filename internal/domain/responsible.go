package domain

// AccessLevel gates how much of the dashboard a responsible role can reach.
type AccessLevel string

const (
	AccessLevelFull    AccessLevel = "full"
	AccessLevelPartial AccessLevel = "partial"
)

// PermissionOption is one selectable permission of a responsible role.
type PermissionOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ResponsibleRoleDefinition describes a named elevated role. Definitions are
// immutable once created; new roles never overwrite existing ids.
type ResponsibleRoleDefinition struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Description       string             `json:"description,omitempty"`
	AccessLevel       AccessLevel        `json:"accessLevel"`
	PermissionOptions []PermissionOption `json:"permissionOptions"`
	CreatedAt         int64              `json:"createdAt"`
	Icon              string             `json:"icon,omitempty"`
}

// DefaultPermissions returns the ids of every permission option, the default
// grant for a freshly seeded assignment.
func (d ResponsibleRoleDefinition) DefaultPermissions() []string {
	ids := make([]string, 0, len(d.PermissionOptions))
	for _, option := range d.PermissionOptions {
		ids = append(ids, option.ID)
	}
	return ids
}

// ResponsibleAssignment is the mutable state of one role: who holds it and
// which permissions are granted. Mutable only while the role is unlocked.
type ResponsibleAssignment struct {
	TechnicianID *string     `json:"technicianId"`
	AccessLevel  AccessLevel `json:"accessLevel"`
	Permissions  []string    `json:"permissions"`
}

// LockState freezes a role's assignment after submission. SubmittedAt is a
// unix-millisecond timestamp, present only while locked.
type LockState struct {
	Locked      bool  `json:"locked"`
	SubmittedAt int64 `json:"submittedAt,omitempty"`
}
