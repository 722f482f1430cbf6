package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-assignment/internal/api/dto"
	"github.com/spec-kit/helpdesk-assignment/internal/domain"
	"github.com/spec-kit/helpdesk-assignment/internal/repository"
	"github.com/spec-kit/helpdesk-assignment/internal/service"
	apperrors "github.com/spec-kit/helpdesk-assignment/pkg/util"
)

// TicketsHandler manages ticket intake and the response workflow.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Description == "" || req.Category == "" {
		return apperrors.NewValidationError("title, description, category required", nil)
	}

	input := service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter, err := parseTicketQuery(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.ListTickets(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, responses, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, responses)})
}

// AddResponse POST /tickets/:id/responses.
func (h *TicketsHandler) AddResponse(c *fiber.Ctx) error {
	var req dto.RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := domain.ParseTicketStatus(string(req.Status))
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	ticket, err := h.service.AddResponse(c.UserContext(), c.Params("id"), service.ResponseInput{
		Author:  req.Author,
		Message: req.Message,
		Status:  status,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketSummary(ticket)})
}

func parseTicketQuery(c *fiber.Ctx) (repository.TicketFilter, error) {
	filter := repository.TicketFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			status, err := domain.ParseTicketStatus(strings.TrimSpace(part))
			if err != nil {
				return filter, apperrors.NewValidationError(err.Error(), nil)
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			priority, err := domain.ParseTicketPriority(strings.TrimSpace(part))
			if err != nil {
				return filter, apperrors.NewValidationError(err.Error(), nil)
			}
			filter.Priorities = append(filter.Priorities, priority)
		}
	}
	if assignedStr := c.Query("assigned"); assignedStr != "" {
		assigned, err := strconv.ParseBool(assignedStr)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid assigned flag", nil)
		}
		filter.Assigned = &assigned
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter, nil
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:                     ticket.ID,
		Title:                  ticket.Title,
		Status:                 ticket.Status,
		Priority:               ticket.Priority,
		Category:               ticket.Category,
		Subcategory:            ticket.Subcategory,
		ClientName:             ticket.ClientName,
		AssignedTo:             ticket.AssignedTo,
		AssignedTechnicianName: ticket.AssignedTechnicianName,
		CreatedAt:              ticket.CreatedAt,
		UpdatedAt:              ticket.UpdatedAt,
	}
}

func ticketDetail(ticket *domain.Ticket, responses []domain.TicketResponse) dto.TicketDetailResponse {
	views := make([]dto.TicketResponseView, 0, len(responses))
	for _, response := range responses {
		views = append(views, dto.TicketResponseView{
			ID:        response.ID,
			Author:    response.Author,
			Message:   response.Message,
			Status:    response.Status,
			CreatedAt: response.CreatedAt,
		})
	}
	return dto.TicketDetailResponse{
		ID:                     ticket.ID,
		Title:                  ticket.Title,
		Description:            ticket.Description,
		Status:                 ticket.Status,
		Priority:               ticket.Priority,
		Category:               ticket.Category,
		Subcategory:            ticket.Subcategory,
		ClientName:             ticket.ClientName,
		ClientEmail:            ticket.ClientEmail,
		AssignedTo:             ticket.AssignedTo,
		AssignedTechnicianName: ticket.AssignedTechnicianName,
		LastResponseBy:         ticket.LastResponseBy,
		LastResponseAt:         ticket.LastResponseAt,
		CreatedAt:              ticket.CreatedAt,
		UpdatedAt:              ticket.UpdatedAt,
		Responses:              views,
	}
}
