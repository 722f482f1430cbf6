package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-assignment/internal/events"
	"github.com/spec-kit/helpdesk-assignment/internal/repository"
)

// AuditService records assignment decisions into the history table and logs
// failed automatic runs. It reacts to events rather than being called
// inline, so assignment flows stay oblivious to auditing.
type AuditService struct {
	history repository.AssignmentHistoryRepository
	logger  *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(history repository.AssignmentHistoryRepository, logger *zap.Logger) *AuditService {
	return &AuditService{history: history, logger: logger}
}

// RegisterHandlers subscribes the audit handlers to the dispatcher.
func (s *AuditService) RegisterHandlers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventTicketAssigned, s.handleTicketAssigned)
	dispatcher.Subscribe(events.EventAutoAssignFailed, s.handleAutoAssignFailed)
}

func (s *AuditService) handleTicketAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAssignedPayload)
	if !ok {
		s.logger.Warn("unexpected payload for assignment event", zap.String("event_id", event.ID))
		return nil
	}
	if s.history == nil {
		return nil
	}

	record := &repository.AssignmentRecord{
		TicketID:       event.TicketID,
		TechnicianID:   payload.TechnicianID,
		TechnicianName: payload.TechnicianName,
		Source:         string(payload.Source),
		MatchReasons:   payload.MatchReasons,
	}
	if payload.Source == events.SourceAutomatic {
		score := payload.Score
		record.Score = &score
	}
	if err := s.history.Create(ctx, record); err != nil {
		s.logger.Error("failed to record assignment",
			zap.String("ticket_id", event.TicketID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *AuditService) handleAutoAssignFailed(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.AutoAssignFailedPayload)
	s.logger.Warn("automatic assignment failed",
		zap.String("ticket_id", event.TicketID),
		zap.String("reason", payload.Reason),
	)
	return nil
}

// History returns the audit trail for one ticket.
func (s *AuditService) History(ctx context.Context, ticketID string) ([]repository.AssignmentRecord, error) {
	if s.history == nil {
		return []repository.AssignmentRecord{}, nil
	}
	return s.history.ListByTicket(ctx, ticketID)
}
