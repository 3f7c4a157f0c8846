package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hfoxfagundes/social-media-dashboard/internal/config"
	"github.com/hfoxfagundes/social-media-dashboard/internal/handler"
	"github.com/hfoxfagundes/social-media-dashboard/internal/observability"
)

// PanelsPath is where the dashboard panel routes are mounted.
const PanelsPath = "/api/v1/panels"

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	DashboardHandler *handler.DashboardHandler
	Rows             handler.RowCounter
	Page             fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	if deps.Page != nil {
		app.Get("/", deps.Page)
	}
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.Rows))

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(app.Group(PanelsPath))
	}
}
