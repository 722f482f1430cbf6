package seed

import "github.com/spec-kit/helpdesk-assignment/internal/domain"

// CategoryAssignments returns the initial preferred-technician sets per
// category and subcategory.
func CategoryAssignments() domain.CategoryAssignments {
	return domain.CategoryAssignments{
		"hardware": {
			Technicians: []string{"tech-001", "tech-003"},
			Subcategories: map[domain.SubcategoryID][]string{
				"computer-not-working": {"tech-001", "tech-003"},
				"printer-issues":       {"tech-003"},
				"monitor-problems":     {"tech-001"},
			},
		},
		"software": {
			Technicians: []string{"tech-002", "tech-004"},
			Subcategories: map[domain.SubcategoryID][]string{
				"os-issues":             {"tech-002"},
				"application-problems":  {"tech-002", "tech-004"},
				"software-installation": {"tech-002", "tech-004"},
			},
		},
		"network": {
			Technicians: []string{"tech-001", "tech-003"},
			Subcategories: map[domain.SubcategoryID][]string{
				"internet-connection": {"tech-001"},
				"wifi-problems":       {"tech-001"},
				"network-drive":       {"tech-001", "tech-003"},
			},
		},
		"email": {
			Technicians: []string{"tech-003", "tech-004"},
			Subcategories: map[domain.SubcategoryID][]string{
				"email-not-working": {"tech-003"},
				"email-setup":       {"tech-004"},
				"email-sync":        {"tech-004"},
			},
		},
		"security": {
			Technicians: []string{"tech-001", "tech-002"},
			Subcategories: map[domain.SubcategoryID][]string{
				"virus-malware":     {"tech-001", "tech-002"},
				"password-reset":    {"tech-002"},
				"security-incident": {"tech-001", "tech-002"},
			},
		},
		"access": {
			Technicians: []string{"tech-002", "tech-004"},
			Subcategories: map[domain.SubcategoryID][]string{
				"system-access":     {"tech-002", "tech-004"},
				"permission-change": {"tech-004"},
				"new-account":       {"tech-002", "tech-004"},
			},
		},
	}
}
