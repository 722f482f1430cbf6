package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-assignment/internal/domain"
	"github.com/spec-kit/helpdesk-assignment/internal/repository"
)

// fakeTicketRepo is an in-memory TicketRepository for service tests.
type fakeTicketRepo struct {
	mu        sync.Mutex
	seq       int
	tickets   map[string]domain.Ticket
	responses map[string][]domain.TicketResponse
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets:   make(map[string]domain.Ticket),
		responses: make(map[string][]domain.TicketResponse),
	}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	ticket.ID = fmt.Sprintf("tkt-%03d", r.seq)
	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := ticket
	return &copied, nil
}

func (r *fakeTicketRepo) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, ticket.Status) {
			continue
		}
		if len(filter.Priorities) > 0 && !containsPriority(filter.Priorities, ticket.Priority) {
			continue
		}
		if filter.Assigned != nil && ticket.Assigned() != *filter.Assigned {
			continue
		}
		if filter.SearchTerm != nil {
			needle := strings.ToLower(*filter.SearchTerm)
			if !strings.Contains(strings.ToLower(ticket.Title), needle) &&
				!strings.Contains(strings.ToLower(ticket.Description), needle) &&
				!strings.Contains(strings.ToLower(ticket.ClientName), needle) {
				continue
			}
		}
		result = append(result, ticket)
	}
	return result, nil
}

func (r *fakeTicketRepo) AddResponse(_ context.Context, response *domain.TicketResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	response.ID = fmt.Sprintf("rsp-%03d", r.seq)
	response.CreatedAt = time.Now()
	r.responses[response.TicketID] = append(r.responses[response.TicketID], *response)
	return nil
}

func (r *fakeTicketRepo) ListResponses(_ context.Context, ticketID string) ([]domain.TicketResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.TicketResponse(nil), r.responses[ticketID]...), nil
}

func containsStatus(statuses []domain.TicketStatus, status domain.TicketStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func containsPriority(priorities []domain.TicketPriority, priority domain.TicketPriority) bool {
	for _, p := range priorities {
		if p == priority {
			return true
		}
	}
	return false
}

// fakeHistoryRepo records assignment audit rows in memory.
type fakeHistoryRepo struct {
	mu      sync.Mutex
	seq     int
	records []repository.AssignmentRecord
}

func (r *fakeHistoryRepo) Create(_ context.Context, record *repository.AssignmentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	record.ID = fmt.Sprintf("hist-%03d", r.seq)
	record.CreatedAt = time.Now()
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeHistoryRepo) ListByTicket(_ context.Context, ticketID string) ([]repository.AssignmentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []repository.AssignmentRecord
	for _, record := range r.records {
		if record.TicketID == ticketID {
			result = append(result, record)
		}
	}
	return result, nil
}

func testTaxonomy() domain.CategoryData {
	return domain.CategoryData{
		"hardware": {
			Label: "Hardware",
			SubIssues: map[domain.SubcategoryID]domain.Subcategory{
				"printer": {Label: "Printer"},
			},
		},
		"software": {
			Label: "Software",
			SubIssues: map[domain.SubcategoryID]domain.Subcategory{
				"crm": {Label: "CRM"},
			},
		},
	}
}
