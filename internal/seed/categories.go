package seed

import "github.com/spec-kit/helpdesk-assignment/internal/domain"

// Categories returns the built-in two-level issue taxonomy.
func Categories() domain.CategoryData {
	return domain.CategoryData{
		"hardware": {
			Label:       "Hardware issues",
			Description: "Problems with physical equipment",
			SubIssues: map[domain.SubcategoryID]domain.Subcategory{
				"computer-not-working": {Label: "Computer not working", Description: "The computer does not power on or malfunctions"},
				"printer-issues":       {Label: "Printer issues", Description: "The printer does not work or print quality is poor"},
				"monitor-problems":     {Label: "Monitor problems", Description: "The monitor shows no image or displays incorrectly"},
			},
		},
		"software": {
			Label:       "Software issues",
			Description: "Problems with applications and operating systems",
			SubIssues: map[domain.SubcategoryID]domain.Subcategory{
				"os-issues":             {Label: "Operating system issues", Description: "Windows, macOS or Linux problems"},
				"application-problems":  {Label: "Application problems", Description: "An application fails or reports errors"},
				"software-installation": {Label: "Software installation", Description: "An application needs installing or updating"},
			},
		},
		"network": {
			Label:       "Network issues",
			Description: "Internet and network connectivity problems",
			SubIssues: map[domain.SubcategoryID]domain.Subcategory{
				"internet-connection": {Label: "Internet connection", Description: "No internet access or a slow connection"},
				"wifi-problems":       {Label: "Wi-Fi problems", Description: "Cannot connect to the wireless network"},
				"network-drive":       {Label: "Network drive access", Description: "Shared folders are unreachable"},
			},
		},
		"email": {
			Label:       "Email issues",
			Description: "Email and messaging problems",
			SubIssues: map[domain.SubcategoryID]domain.Subcategory{
				"email-not-working": {Label: "Email not working", Description: "Mail is not sent or received"},
				"email-setup":       {Label: "Email setup", Description: "A new email account needs configuring"},
				"email-sync":        {Label: "Email synchronization", Description: "Mailboxes fail to synchronize"},
			},
		},
		"security": {
			Label:       "Security issues",
			Description: "Security incidents and data protection",
			SubIssues: map[domain.SubcategoryID]domain.Subcategory{
				"virus-malware":     {Label: "Virus or malware", Description: "The system may be infected"},
				"password-reset":    {Label: "Password reset", Description: "A forgotten account password"},
				"security-incident": {Label: "Security incident", Description: "Suspicious or unusual activity"},
			},
		},
		"access": {
			Label:       "Access requests",
			Description: "Requests for access to systems and resources",
			SubIssues: map[domain.SubcategoryID]domain.Subcategory{
				"system-access":     {Label: "System access", Description: "Access to a specific system or application"},
				"permission-change": {Label: "Permission change", Description: "User permissions need adjusting"},
				"new-account":       {Label: "New account", Description: "A new user account is required"},
			},
		},
	}
}
