package domain

import (
	"fmt"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// ParseTicketStatus validates a raw status value at the boundary.
func ParseTicketStatus(raw string) (TicketStatus, error) {
	switch TicketStatus(raw) {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return TicketStatus(raw), nil
	}
	return "", fmt.Errorf("unknown ticket status %q", raw)
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// ParseTicketPriority validates a raw priority value at the boundary.
func ParseTicketPriority(raw string) (TicketPriority, error) {
	switch TicketPriority(raw) {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return TicketPriority(raw), nil
	}
	return "", fmt.Errorf("unknown ticket priority %q", raw)
}

// Ticket is the aggregate for reported issues. Subcategory is empty when the
// requester filed the ticket against the category alone.
type Ticket struct {
	ID                     string
	Title                  string
	Description            string
	Status                 TicketStatus
	Priority               TicketPriority
	Category               CategoryID
	Subcategory            SubcategoryID
	ClientName             string
	ClientEmail            string
	AssignedTo             *string
	AssignedTechnicianName *string
	LastResponseBy         *string
	LastResponseAt         *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Assigned reports whether a technician currently holds the ticket.
func (t *Ticket) Assigned() bool {
	return t.AssignedTo != nil && *t.AssignedTo != ""
}

// TicketResponse is a technician reply recorded against a ticket.
type TicketResponse struct {
	ID        string
	TicketID  string
	Author    string
	Message   string
	Status    TicketStatus
	CreatedAt time.Time
}
