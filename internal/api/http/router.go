package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/proftafla/exam-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Exams   *handlers.ExamsHandler
	Metrics *handlers.MetricsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Snapshot)
	}

	departments := app.Group("/departments")
	departments.Get("", cfg.Exams.ListDepartments)
	departments.Get("/:slug/tests", cfg.Exams.GetTests)
	departments.Get("/:slug/stats", cfg.Exams.GetDepartmentStats)

	app.Get("/stats", cfg.Exams.GetStats)
	app.Delete("/cache", cfg.Exams.ClearCache)
}
