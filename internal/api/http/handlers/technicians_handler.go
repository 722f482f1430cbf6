package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-assignment/internal/api/dto"
	"github.com/spec-kit/helpdesk-assignment/internal/domain"
	"github.com/spec-kit/helpdesk-assignment/internal/registry"
	apperrors "github.com/spec-kit/helpdesk-assignment/pkg/util"
)

// TechniciansHandler exposes the roster, the taxonomy and the
// preferred-technician configuration.
type TechniciansHandler struct {
	technicians *registry.TechnicianRegistry
	categories  domain.CategoryData
}

// NewTechniciansHandler constructs handler.
func NewTechniciansHandler(technicianRegistry *registry.TechnicianRegistry, categories domain.CategoryData) *TechniciansHandler {
	return &TechniciansHandler{technicians: technicianRegistry, categories: categories}
}

// ListTechnicians GET /technicians.
func (h *TechniciansHandler) ListTechnicians(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.technicians.Technicians()})
}

// ListCategories GET /categories.
func (h *TechniciansHandler) ListCategories(c *fiber.Ctx) error {
	items := make([]dto.CategoryResponse, 0, len(h.categories))
	for id, category := range h.categories {
		subIssues := make([]dto.SubcategoryResponse, 0, len(category.SubIssues))
		for subID, sub := range category.SubIssues {
			subIssues = append(subIssues, dto.SubcategoryResponse{
				ID:          subID,
				Label:       sub.Label,
				Description: sub.Description,
			})
		}
		sort.Slice(subIssues, func(i, j int) bool { return subIssues[i].ID < subIssues[j].ID })
		items = append(items, dto.CategoryResponse{
			ID:          id,
			Label:       category.Label,
			Description: category.Description,
			SubIssues:   subIssues,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return c.JSON(fiber.Map{"data": items})
}

// GetPreferences GET /preferences.
func (h *TechniciansHandler) GetPreferences(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.technicians.Assignments()})
}

// SetCategoryPreferred PUT /preferences/:category.
func (h *TechniciansHandler) SetCategoryPreferred(c *fiber.Ctx) error {
	categoryID := domain.CategoryID(c.Params("category"))
	if !h.categories.Has(categoryID) {
		return apperrors.NewNotFound("category", map[string]any{"category": categoryID})
	}
	var req dto.SetPreferredRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validateTechnicianIDs(req.TechnicianIDs); err != nil {
		return err
	}
	h.technicians.SetCategoryTechnicians(c.UserContext(), categoryID, req.TechnicianIDs)
	return c.JSON(fiber.Map{"data": h.technicians.Assignments()})
}

// SetSubcategoryPreferred PUT /preferences/:category/:subcategory.
func (h *TechniciansHandler) SetSubcategoryPreferred(c *fiber.Ctx) error {
	categoryID := domain.CategoryID(c.Params("category"))
	subcategoryID := domain.SubcategoryID(c.Params("subcategory"))
	if !h.categories.HasSub(categoryID, subcategoryID) {
		return apperrors.NewNotFound("subcategory", map[string]any{
			"category":    categoryID,
			"subcategory": subcategoryID,
		})
	}
	var req dto.SetPreferredRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validateTechnicianIDs(req.TechnicianIDs); err != nil {
		return err
	}
	h.technicians.SetSubcategoryTechnicians(c.UserContext(), categoryID, subcategoryID, req.TechnicianIDs)
	return c.JSON(fiber.Map{"data": h.technicians.Assignments()})
}

// ResetPreferences POST /preferences/reset.
func (h *TechniciansHandler) ResetPreferences(c *fiber.Ctx) error {
	h.technicians.ResetAssignments(c.UserContext())
	return c.JSON(fiber.Map{"data": h.technicians.Assignments()})
}

func (h *TechniciansHandler) validateTechnicianIDs(ids []string) error {
	for _, id := range ids {
		if _, ok := h.technicians.FindTechnician(id); !ok {
			return apperrors.NewNotFound("technician", map[string]any{"technician_id": id})
		}
	}
	return nil
}
