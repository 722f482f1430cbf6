package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-assignment/internal/domain"
)

// AssignRequest payload for manual assignment.
type AssignRequest struct {
	TechnicianID string `json:"technicianId"`
}

// BulkAssignRequest payload for assigning several tickets to one technician.
type BulkAssignRequest struct {
	TicketIDs    []string `json:"ticketIds"`
	TechnicianID string   `json:"technicianId"`
}

// AutoAssignBulkRequest payload for previewing or confirming an automatic
// assignment run.
type AutoAssignBulkRequest struct {
	TicketIDs []string `json:"ticketIds"`
}

// RecommendationResponse is one ranked technician for a ticket.
type RecommendationResponse struct {
	Technician   domain.Technician `json:"technician"`
	Score        float64           `json:"score"`
	MatchReasons []string          `json:"matchReasons"`
}

// AssignmentHistoryResponse is one audit entry for a ticket.
type AssignmentHistoryResponse struct {
	ID             string    `json:"id"`
	TechnicianID   string    `json:"technicianId"`
	TechnicianName string    `json:"technicianName"`
	Source         string    `json:"source"`
	Score          *float64  `json:"score,omitempty"`
	MatchReasons   []string  `json:"matchReasons,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
