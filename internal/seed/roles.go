package seed

import "github.com/spec-kit/helpdesk-assignment/internal/domain"

// DefaultPermissionOptions lists the permissions a responsible role may grant.
func DefaultPermissionOptions() []domain.PermissionOption {
	return []domain.PermissionOption{
		{ID: "manage-tickets", Label: "Full ticket management"},
		{ID: "assign-technicians", Label: "Assign technicians"},
		{ID: "manage-categories", Label: "Manage categories and sub-responsibilities"},
		{ID: "view-reports", Label: "View reports and dashboards"},
		{ID: "configure-automation", Label: "Configure automation and rules"},
		{ID: "view-development-queue", Label: "View the development queue"},
		{ID: "assign-developers", Label: "Assign work to developers"},
		{ID: "update-knowledge-base", Label: "Update the knowledge base"},
	}
}

// RoleDefinitions returns the built-in responsible roles in creation order.
func RoleDefinitions() []domain.ResponsibleRoleDefinition {
	options := DefaultPermissionOptions()
	return []domain.ResponsibleRoleDefinition{
		{
			ID:                "it-lead",
			Title:             "Responsible technician - IT operations",
			Description:       "Full access for coordinating support operations and technical teams",
			AccessLevel:       domain.AccessLevelFull,
			PermissionOptions: options,
			CreatedAt:         1,
			Icon:              "crown",
		},
		{
			ID:                "head-programmer",
			Title:             "Responsible technician - head of programming",
			Description:       "Controlled access for aligning software development with support needs",
			AccessLevel:       domain.AccessLevelPartial,
			PermissionOptions: options,
			CreatedAt:         2,
			Icon:              "shield",
		},
	}
}

// ResponsibleAssignments returns the initial holders of the built-in roles.
func ResponsibleAssignments() map[string]domain.ResponsibleAssignment {
	itLead := "lead-001"
	headProgrammer := "lead-002"
	return map[string]domain.ResponsibleAssignment{
		"it-lead": {
			TechnicianID: &itLead,
			AccessLevel:  domain.AccessLevelFull,
			Permissions: []string{
				"manage-tickets",
				"assign-technicians",
				"manage-categories",
				"view-reports",
				"configure-automation",
			},
		},
		"head-programmer": {
			TechnicianID: &headProgrammer,
			AccessLevel:  domain.AccessLevelPartial,
			Permissions: []string{
				"view-development-queue",
				"assign-developers",
				"update-knowledge-base",
				"view-reports",
			},
		},
	}
}
