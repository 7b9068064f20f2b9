package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-scheduler/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Config      *handlers.ConfigHandler
	Engineers   *handlers.EngineersHandler
	Schedule    *handlers.ScheduleHandler
	Assignments *handlers.AssignmentsHandler
	Patterns    *handlers.PatternsHandler
	Exports     *handlers.ExportsHandler
	StaticDir   string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Config.Metrics)

	api := app.Group("/api")
	api.Get("/config", cfg.Config.Config)

	api.Get("/engineers", cfg.Engineers.List)
	api.Get("/engineers/:name", cfg.Engineers.Get)
	api.Post("/engineers", cfg.Engineers.Save)
	api.Delete("/engineers/:name", cfg.Engineers.Delete)

	api.Get("/schedule", cfg.Schedule.Get)
	api.Post("/schedule", cfg.Schedule.Save)
	api.Post("/schedule/auto-assign", cfg.Schedule.AutoAssign)

	api.Post("/assignments", cfg.Assignments.Start)
	api.Get("/assignments/:id", cfg.Assignments.Get)
	api.Delete("/assignments/:id", cfg.Assignments.Cancel)

	api.Post("/patterns/apply", cfg.Patterns.Apply)

	api.Post("/generate_excel", cfg.Exports.Generate)
	api.Get("/download/:filename", cfg.Exports.Download)

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}
}
