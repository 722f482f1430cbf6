package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-assignment/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Tickets     *handlers.TicketsHandler
	Assignments *handlers.AssignmentsHandler
	Technicians *handlers.TechniciansHandler
	Roles       *handlers.RolesHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	tickets := app.Group("/tickets")
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Post("/:id/responses", cfg.Tickets.AddResponse)
	tickets.Post("/:id/assign", cfg.Assignments.Assign)
	tickets.Post("/:id/auto-assign", cfg.Assignments.AutoAssign)
	tickets.Get("/:id/recommendations", cfg.Assignments.Recommendations)
	tickets.Get("/:id/assignments", cfg.Assignments.History)

	assignments := app.Group("/assignments")
	assignments.Post("/bulk", cfg.Assignments.AssignBulk)
	assignments.Post("/auto/preview", cfg.Assignments.PreviewAutoAssign)
	assignments.Post("/auto/confirm", cfg.Assignments.ConfirmAutoAssign)

	app.Get("/technicians", cfg.Technicians.ListTechnicians)
	app.Get("/categories", cfg.Technicians.ListCategories)

	preferences := app.Group("/preferences")
	preferences.Get("/", cfg.Technicians.GetPreferences)
	preferences.Post("/reset", cfg.Technicians.ResetPreferences)
	preferences.Put("/:category", cfg.Technicians.SetCategoryPreferred)
	preferences.Put("/:category/:subcategory", cfg.Technicians.SetSubcategoryPreferred)

	roles := app.Group("/roles")
	roles.Get("/", cfg.Roles.ListRoles)
	roles.Post("/", cfg.Roles.CreateRole)
	roles.Put("/:id/technician", cfg.Roles.AssignTechnician)
	roles.Put("/:id/permissions", cfg.Roles.SetPermissions)
	roles.Post("/:id/submit", cfg.Roles.Submit)
	roles.Post("/:id/unlock", cfg.Roles.Unlock)
}
