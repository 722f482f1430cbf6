package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-assignment/internal/api/dto"
	"github.com/spec-kit/helpdesk-assignment/internal/scoring"
	"github.com/spec-kit/helpdesk-assignment/internal/service"
	apperrors "github.com/spec-kit/helpdesk-assignment/pkg/util"
)

const defaultRecommendationLimit = 3

// AssignmentsHandler manages manual, bulk and automatic assignment endpoints.
type AssignmentsHandler struct {
	assignments *service.AssignmentService
	audit       *service.AuditService
}

// NewAssignmentsHandler constructs handler.
func NewAssignmentsHandler(assignmentService *service.AssignmentService, auditService *service.AuditService) *AssignmentsHandler {
	return &AssignmentsHandler{assignments: assignmentService, audit: auditService}
}

// Assign POST /tickets/:id/assign.
func (h *AssignmentsHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TechnicianID == "" {
		return apperrors.NewValidationError("technicianId required", nil)
	}
	ticket, err := h.assignments.Assign(c.UserContext(), c.Params("id"), req.TechnicianID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// AutoAssign POST /tickets/:id/auto-assign.
func (h *AssignmentsHandler) AutoAssign(c *fiber.Ctx) error {
	ticket, candidate, err := h.assignments.AutoAssign(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"ticket":         ticketSummary(ticket),
		"recommendation": recommendationResponse(*candidate),
	}})
}

// Recommendations GET /tickets/:id/recommendations.
func (h *AssignmentsHandler) Recommendations(c *fiber.Ctx) error {
	limit := parseInt(c.Query("limit"), defaultRecommendationLimit)
	candidates, err := h.assignments.Recommendations(c.UserContext(), c.Params("id"), limit)
	if err != nil {
		return err
	}
	items := make([]dto.RecommendationResponse, 0, len(candidates))
	for _, candidate := range candidates {
		items = append(items, recommendationResponse(candidate))
	}
	return c.JSON(fiber.Map{"data": items})
}

// History GET /tickets/:id/assignments.
func (h *AssignmentsHandler) History(c *fiber.Ctx) error {
	records, err := h.audit.History(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.AssignmentHistoryResponse, 0, len(records))
	for _, record := range records {
		items = append(items, dto.AssignmentHistoryResponse{
			ID:             record.ID,
			TechnicianID:   record.TechnicianID,
			TechnicianName: record.TechnicianName,
			Source:         record.Source,
			Score:          record.Score,
			MatchReasons:   record.MatchReasons,
			CreatedAt:      record.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// AssignBulk POST /assignments/bulk.
func (h *AssignmentsHandler) AssignBulk(c *fiber.Ctx) error {
	var req dto.BulkAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.TicketIDs) == 0 || req.TechnicianID == "" {
		return apperrors.NewValidationError("ticketIds and technicianId required", nil)
	}
	result, err := h.assignments.AssignBulk(c.UserContext(), req.TicketIDs, req.TechnicianID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

// PreviewAutoAssign POST /assignments/auto/preview.
func (h *AssignmentsHandler) PreviewAutoAssign(c *fiber.Ctx) error {
	var req dto.AutoAssignBulkRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.TicketIDs) == 0 {
		return apperrors.NewValidationError("ticketIds required", nil)
	}
	plan, err := h.assignments.PlanAutoAssign(c.UserContext(), req.TicketIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": plan})
}

// ConfirmAutoAssign POST /assignments/auto/confirm.
func (h *AssignmentsHandler) ConfirmAutoAssign(c *fiber.Ctx) error {
	var req dto.AutoAssignBulkRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.TicketIDs) == 0 {
		return apperrors.NewValidationError("ticketIds required", nil)
	}
	result, err := h.assignments.ConfirmAutoAssign(c.UserContext(), req.TicketIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

func recommendationResponse(candidate scoring.Candidate) dto.RecommendationResponse {
	return dto.RecommendationResponse{
		Technician:   candidate.Technician,
		Score:        candidate.Score,
		MatchReasons: candidate.MatchReasons,
	}
}
