package seed

import "github.com/spec-kit/helpdesk-assignment/internal/domain"

// Technicians returns the demo roster used to seed an empty snapshot store.
func Technicians() []domain.Technician {
	return []domain.Technician{
		{
			ID:               "tech-001",
			Name:             "Amir Hosseini",
			Email:            "amir.hosseini@example.com",
			Status:           domain.TechnicianAvailable,
			Rating:           4.8,
			ActiveTickets:    3,
			CompletedTickets: 156,
			Specialties:      []domain.CategoryID{"hardware", "network"},
			SubSpecialties:   []domain.SubcategoryID{"computer-not-working", "monitor-problems", "internet-connection", "wifi-problems"},
			AvgResponseTime:  domain.NewResponseHours(1.5),
		},
		{
			ID:               "tech-002",
			Name:             "Sara Mohammadi",
			Email:            "sara.mohammadi@example.com",
			Status:           domain.TechnicianAvailable,
			Rating:           4.9,
			ActiveTickets:    1,
			CompletedTickets: 203,
			Specialties:      []domain.CategoryID{"software", "security", "access"},
			SubSpecialties:   []domain.SubcategoryID{"os-issues", "application-problems", "password-reset", "virus-malware"},
			AvgResponseTime:  domain.NewResponseHours(1.2),
		},
		{
			ID:               "tech-003",
			Name:             "Reza Karimi",
			Email:            "reza.karimi@example.com",
			Status:           domain.TechnicianBusy,
			Rating:           4.4,
			ActiveTickets:    6,
			CompletedTickets: 98,
			Specialties:      []domain.CategoryID{"hardware", "email"},
			SubSpecialties:   []domain.SubcategoryID{"printer-issues", "email-not-working"},
			AvgResponseTime:  domain.NewResponseHours(2.8),
		},
		{
			ID:               "tech-004",
			Name:             "Maryam Ahmadi",
			Email:            "maryam.ahmadi@example.com",
			Status:           domain.TechnicianAvailable,
			Rating:           4.6,
			ActiveTickets:    2,
			CompletedTickets: 67,
			Specialties:      []domain.CategoryID{"software", "email", "access"},
			SubSpecialties:   []domain.SubcategoryID{"software-installation", "email-setup", "email-sync", "new-account"},
			AvgResponseTime:  domain.NewResponseHours(1.9),
		},
		{
			ID:               "lead-001",
			Name:             "Hossein Rahimi",
			Email:            "hossein.rahimi@example.com",
			Status:           domain.TechnicianAvailable,
			Rating:           4.9,
			ActiveTickets:    4,
			CompletedTickets: 312,
			Specialties:      []domain.CategoryID{"network", "security", "hardware"},
			SubSpecialties:   []domain.SubcategoryID{"security-incident", "network-drive"},
			AvgResponseTime:  domain.NewResponseHours(1.1),
		},
		{
			ID:               "lead-002",
			Name:             "Neda Sadeghi",
			Email:            "neda.sadeghi@example.com",
			Status:           domain.TechnicianBusy,
			Rating:           4.7,
			ActiveTickets:    5,
			CompletedTickets: 245,
			Specialties:      []domain.CategoryID{"software", "access"},
			SubSpecialties:   []domain.SubcategoryID{"application-problems", "system-access", "permission-change"},
			AvgResponseTime:  domain.NewResponseHours(1.6),
		},
	}
}
