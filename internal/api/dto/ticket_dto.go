package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-assignment/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	Category    domain.CategoryID     `json:"category"`
	Subcategory domain.SubcategoryID  `json:"subcategory"`
	ClientName  string                `json:"clientName"`
	ClientEmail string                `json:"clientEmail"`
}

// RespondRequest payload for technician replies.
type RespondRequest struct {
	Author  string              `json:"author"`
	Message string              `json:"message"`
	Status  domain.TicketStatus `json:"status"`
}

// TicketSummary response.
type TicketSummary struct {
	ID                     string                `json:"id"`
	Title                  string                `json:"title"`
	Status                 domain.TicketStatus   `json:"status"`
	Priority               domain.TicketPriority `json:"priority"`
	Category               domain.CategoryID     `json:"category"`
	Subcategory            domain.SubcategoryID  `json:"subcategory,omitempty"`
	ClientName             string                `json:"clientName"`
	AssignedTo             *string               `json:"assignedTo"`
	AssignedTechnicianName *string               `json:"assignedTechnicianName"`
	CreatedAt              time.Time             `json:"createdAt"`
	UpdatedAt              time.Time             `json:"updatedAt"`
}

// TicketDetailResponse provides full ticket info with its responses.
type TicketDetailResponse struct {
	ID                     string                `json:"id"`
	Title                  string                `json:"title"`
	Description            string                `json:"description"`
	Status                 domain.TicketStatus   `json:"status"`
	Priority               domain.TicketPriority `json:"priority"`
	Category               domain.CategoryID     `json:"category"`
	Subcategory            domain.SubcategoryID  `json:"subcategory,omitempty"`
	ClientName             string                `json:"clientName"`
	ClientEmail            string                `json:"clientEmail"`
	AssignedTo             *string               `json:"assignedTo"`
	AssignedTechnicianName *string               `json:"assignedTechnicianName"`
	LastResponseBy         *string               `json:"lastResponseBy"`
	LastResponseAt         *time.Time            `json:"lastResponseAt"`
	CreatedAt              time.Time             `json:"createdAt"`
	UpdatedAt              time.Time             `json:"updatedAt"`
	Responses              []TicketResponseView  `json:"responses"`
}

// TicketResponseView represents one reply in a ticket thread.
type TicketResponseView struct {
	ID        string              `json:"id"`
	Author    string              `json:"author"`
	Message   string              `json:"message"`
	Status    domain.TicketStatus `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
}
