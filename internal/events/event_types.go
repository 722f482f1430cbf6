package events

import (
	"time"

	"github.com/spec-kit/helpdesk-assignment/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated    EventType = "ticket_created"
	EventTicketResponded  EventType = "ticket_responded"
	EventTicketAssigned   EventType = "ticket_assigned"
	EventAutoAssignFailed EventType = "auto_assign_failed"
	EventRoleLocked       EventType = "role_locked"
	EventRoleUnlocked     EventType = "role_unlocked"
)

// AssignmentSource records which workflow produced an assignment.
type AssignmentSource string

const (
	SourceManual    AssignmentSource = "manual"
	SourceBulk      AssignmentSource = "bulk"
	SourceAutomatic AssignmentSource = "automatic"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Category    domain.CategoryID     `json:"category"`
	Subcategory domain.SubcategoryID  `json:"subcategory,omitempty"`
	Priority    domain.TicketPriority `json:"priority"`
	Title       string                `json:"title"`
}

// TicketRespondedPayload payload.
type TicketRespondedPayload struct {
	Author    string              `json:"author"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	TechnicianID   string           `json:"technician_id"`
	TechnicianName string           `json:"technician_name"`
	Source         AssignmentSource `json:"source"`
	Score          float64          `json:"score,omitempty"`
	MatchReasons   []string         `json:"match_reasons,omitempty"`
}

// AutoAssignFailedPayload payload.
type AutoAssignFailedPayload struct {
	Reason string `json:"reason"`
}

// RoleLockPayload payload for role lock/unlock events.
type RoleLockPayload struct {
	RoleID      string `json:"role_id"`
	SubmittedAt int64  `json:"submitted_at,omitempty"`
}
