package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-assignment/internal/domain"
	"github.com/spec-kit/helpdesk-assignment/internal/events"
	"github.com/spec-kit/helpdesk-assignment/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-assignment/pkg/util"
)

// TicketService coordinates ticket intake and the response workflow.
type TicketService struct {
	tickets    repository.TicketRepository
	categories domain.CategoryData
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Categories domain.CategoryData
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	Category    domain.CategoryID
	Subcategory domain.SubcategoryID
	ClientName  string
	ClientEmail string
}

// ResponseInput describes a technician reply and the status it moves the
// ticket to.
type ResponseInput struct {
	Author  string
	Message string
	Status  domain.TicketStatus
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		categories: deps.Categories,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket validates the payload against the taxonomy and stores the
// ticket in open state.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title must not be empty", nil)
	}
	if !s.categories.Has(input.Category) {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": input.Category})
	}
	if input.Subcategory != "" && !s.categories.HasSub(input.Category, input.Subcategory) {
		return nil, apperrors.NewValidationError("subcategory does not belong to category", map[string]any{
			"category":    input.Category,
			"subcategory": input.Subcategory,
		})
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		Priority:    input.Priority,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		ClientName:  strings.TrimSpace(input.ClientName),
		ClientEmail: strings.TrimSpace(input.ClientEmail),
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Category:    ticket.Category,
			Subcategory: ticket.Subcategory,
			Priority:    ticket.Priority,
			Title:       ticket.Title,
		},
	})
	return ticket, nil
}

// ListTickets returns tickets matching the dashboard filters.
func (s *TicketService) ListTickets(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// GetTicket fetches one ticket with its responses.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, []domain.TicketResponse, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, nil, apperrors.MapError(err)
	}
	responses, err := s.tickets.ListResponses(ctx, ticket.ID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return ticket, responses, nil
}

// AddResponse appends a reply to the ticket and moves it to the status the
// responder chose, stamping the last-response fields in the same update.
func (s *TicketService) AddResponse(ctx context.Context, ticketID string, input ResponseInput) (*domain.Ticket, error) {
	author := strings.TrimSpace(input.Author)
	message := strings.TrimSpace(input.Message)
	if author == "" || message == "" {
		return nil, apperrors.NewValidationError("author and message must not be empty", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	response := &domain.TicketResponse{
		TicketID: ticket.ID,
		Author:   author,
		Message:  message,
		Status:   input.Status,
	}
	if err := s.tickets.AddResponse(ctx, response); err != nil {
		return nil, apperrors.MapError(err)
	}

	now := time.Now()
	ticket.Status = input.Status
	ticket.LastResponseBy = &response.Author
	ticket.LastResponseAt = &now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketResponded,
		TicketID: ticket.ID,
		Payload: events.TicketRespondedPayload{
			Author:    response.Author,
			NewStatus: ticket.Status,
		},
	})
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
