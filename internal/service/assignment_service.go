package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-assignment/internal/domain"
	"github.com/spec-kit/helpdesk-assignment/internal/events"
	"github.com/spec-kit/helpdesk-assignment/internal/observability"
	"github.com/spec-kit/helpdesk-assignment/internal/registry"
	"github.com/spec-kit/helpdesk-assignment/internal/repository"
	"github.com/spec-kit/helpdesk-assignment/internal/scoring"
	apperrors "github.com/spec-kit/helpdesk-assignment/pkg/util"
)

// AssignmentService orchestrates manual, bulk and automatic assignment of
// tickets to technicians.
type AssignmentService struct {
	tickets     repository.TicketRepository
	technicians *registry.TechnicianRegistry
	engine      *scoring.Engine
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// AssignmentDependencies bundles collaborators.
type AssignmentDependencies struct {
	TicketRepo  repository.TicketRepository
	Technicians *registry.TechnicianRegistry
	Engine      *scoring.Engine
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// PlanEntry is one ticket's outcome within an auto-assignment plan.
type PlanEntry struct {
	TicketID       string   `json:"ticketId"`
	TicketTitle    string   `json:"ticketTitle"`
	TechnicianID   string   `json:"technicianId,omitempty"`
	TechnicianName string   `json:"technicianName,omitempty"`
	Score          float64  `json:"score,omitempty"`
	MatchReasons   []string `json:"matchReasons,omitempty"`
	Assignable     bool     `json:"assignable"`
	Reason         string   `json:"reason,omitempty"`
}

// AutoAssignPlan is the preview of a bulk auto-assignment run. Nothing is
// mutated until the plan is confirmed.
type AutoAssignPlan struct {
	Entries    []PlanEntry `json:"entries"`
	Assignable int         `json:"assignable"`
	Skipped    int         `json:"skipped"`
}

// BulkResult summarizes an applied bulk operation.
type BulkResult struct {
	Assigned int      `json:"assigned"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		tickets:     deps.TicketRepo,
		technicians: deps.Technicians,
		engine:      deps.Engine,
		dispatcher:  deps.Dispatcher,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
	}
}

// Assign hands a ticket to a specific technician. Open tickets move to
// in-progress; other statuses keep their state and only change holder.
func (s *AssignmentService) Assign(ctx context.Context, ticketID, technicianID string) (*domain.Ticket, error) {
	tech, ok := s.technicians.FindTechnician(technicianID)
	if !ok {
		return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": technicianID})
	}
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := s.applyAssignment(ctx, ticket, tech, events.SourceManual, 0, nil); err != nil {
		return nil, err
	}
	return ticket, nil
}

// AssignBulk hands several tickets to one technician, continuing past
// per-ticket failures.
func (s *AssignmentService) AssignBulk(ctx context.Context, ticketIDs []string, technicianID string) (*BulkResult, error) {
	tech, ok := s.technicians.FindTechnician(technicianID)
	if !ok {
		return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": technicianID})
	}

	result := &BulkResult{}
	for _, ticketID := range ticketIDs {
		ticket, err := s.getTicket(ctx, ticketID)
		if err == nil {
			err = s.applyAssignment(ctx, ticket, tech, events.SourceBulk, 0, nil)
		}
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ticketID+": "+err.Error())
			continue
		}
		result.Assigned++
	}
	return result, nil
}

// AutoAssign picks the best technician for one ticket and applies the
// assignment. When no technician qualifies the ticket is left untouched and
// a conflict is reported.
func (s *AssignmentService) AutoAssign(ctx context.Context, ticketID string) (*domain.Ticket, *scoring.Candidate, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}

	roster := s.technicians.Technicians()
	prefs := s.technicians.Assignments()
	candidate, ok := s.engine.Recommend(*ticket, roster, prefs)
	if !ok {
		s.recordAutoAssign(false)
		s.publishEvent(ctx, events.Event{
			Type:     events.EventAutoAssignFailed,
			TicketID: ticket.ID,
			Payload:  events.AutoAssignFailedPayload{Reason: "no eligible technician"},
		})
		return nil, nil, apperrors.NewConflict("no eligible technician for ticket", map[string]any{"ticket_id": ticket.ID})
	}

	if err := s.applyAssignment(ctx, ticket, candidate.Technician, events.SourceAutomatic, candidate.Score, candidate.MatchReasons); err != nil {
		s.recordAutoAssign(false)
		return nil, nil, err
	}
	s.recordAutoAssign(true)
	return ticket, &candidate, nil
}

// Recommendations returns the top-ranked technicians for a ticket, for the
// manual-assignment dialog. Limit caps the list; zero means all.
func (s *AssignmentService) Recommendations(ctx context.Context, ticketID string, limit int) ([]scoring.Candidate, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	candidates := s.engine.RankForBrowsing(*ticket, s.technicians.Technicians(), s.technicians.Assignments())
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// PlanAutoAssign previews a bulk auto-assignment over the given tickets.
// Already-assigned tickets are skipped; nothing is persisted.
func (s *AssignmentService) PlanAutoAssign(ctx context.Context, ticketIDs []string) (*AutoAssignPlan, error) {
	roster := s.technicians.Technicians()
	prefs := s.technicians.Assignments()

	plan := &AutoAssignPlan{Entries: make([]PlanEntry, 0, len(ticketIDs))}
	for _, ticketID := range ticketIDs {
		ticket, err := s.getTicket(ctx, ticketID)
		if err != nil {
			plan.Skipped++
			plan.Entries = append(plan.Entries, PlanEntry{TicketID: ticketID, Reason: err.Error()})
			continue
		}
		if ticket.Assigned() {
			plan.Skipped++
			plan.Entries = append(plan.Entries, PlanEntry{
				TicketID:    ticket.ID,
				TicketTitle: ticket.Title,
				Reason:      "already assigned",
			})
			continue
		}
		candidate, ok := s.engine.Recommend(*ticket, roster, prefs)
		if !ok {
			plan.Skipped++
			plan.Entries = append(plan.Entries, PlanEntry{
				TicketID:    ticket.ID,
				TicketTitle: ticket.Title,
				Reason:      "no eligible technician",
			})
			continue
		}
		plan.Assignable++
		plan.Entries = append(plan.Entries, PlanEntry{
			TicketID:       ticket.ID,
			TicketTitle:    ticket.Title,
			TechnicianID:   candidate.Technician.ID,
			TechnicianName: candidate.Technician.Name,
			Score:          candidate.Score,
			MatchReasons:   candidate.MatchReasons,
			Assignable:     true,
		})
	}
	return plan, nil
}

// ConfirmAutoAssign applies a bulk auto-assignment over the given tickets.
// Technicians are re-selected at confirmation time, so a roster change
// between preview and confirm is honored rather than replayed stale.
func (s *AssignmentService) ConfirmAutoAssign(ctx context.Context, ticketIDs []string) (*BulkResult, error) {
	roster := s.technicians.Technicians()
	prefs := s.technicians.Assignments()

	result := &BulkResult{}
	for _, ticketID := range ticketIDs {
		ticket, err := s.getTicket(ctx, ticketID)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ticketID+": "+err.Error())
			continue
		}
		if ticket.Assigned() {
			result.Failed++
			result.Errors = append(result.Errors, ticketID+": already assigned")
			continue
		}
		candidate, ok := s.engine.Recommend(*ticket, roster, prefs)
		if !ok {
			s.recordAutoAssign(false)
			s.publishEvent(ctx, events.Event{
				Type:     events.EventAutoAssignFailed,
				TicketID: ticket.ID,
				Payload:  events.AutoAssignFailedPayload{Reason: "no eligible technician"},
			})
			result.Failed++
			result.Errors = append(result.Errors, ticketID+": no eligible technician")
			continue
		}
		if err := s.applyAssignment(ctx, ticket, candidate.Technician, events.SourceAutomatic, candidate.Score, candidate.MatchReasons); err != nil {
			s.recordAutoAssign(false)
			result.Failed++
			result.Errors = append(result.Errors, ticketID+": "+err.Error())
			continue
		}
		s.recordAutoAssign(true)
		result.Assigned++
	}
	return result, nil
}

// applyAssignment mutates the ticket, persists it and emits the assignment
// event. Holder and display name always change together.
func (s *AssignmentService) applyAssignment(ctx context.Context, ticket *domain.Ticket, tech domain.Technician, source events.AssignmentSource, score float64, matchReasons []string) error {
	techID := tech.ID
	techName := tech.Name
	ticket.AssignedTo = &techID
	ticket.AssignedTechnicianName = &techName
	if ticket.Status == domain.TicketStatusOpen {
		ticket.Status = domain.TicketStatusInProgress
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return apperrors.MapError(err)
	}

	s.logger.Info("ticket assigned",
		zap.String("ticket_id", ticket.ID),
		zap.String("technician_id", tech.ID),
		zap.String("source", string(source)),
	)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Payload: events.TicketAssignedPayload{
			TechnicianID:   tech.ID,
			TechnicianName: tech.Name,
			Source:         source,
			Score:          score,
			MatchReasons:   matchReasons,
		},
	})
	return nil
}

func (s *AssignmentService) getTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *AssignmentService) recordAutoAssign(success bool) {
	if s.metrics != nil {
		s.metrics.RecordAutoAssign(success)
	}
}

func (s *AssignmentService) publishEvent(ctx context.Context, event events.Event) {
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
