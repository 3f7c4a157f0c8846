package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hfoxfagundes/social-media-dashboard/internal/config"
	"github.com/hfoxfagundes/social-media-dashboard/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Rows        int       `json:"rows"`
}

// RowCounter reports how many records the dashboard serves.
type RowCounter interface {
	Rows() int
}

// HealthCheck returns a handler that reports application health and dataset size.
func HealthCheck(cfg config.Config, counter RowCounter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
		}
		if counter != nil {
			payload.Rows = counter.Rows()
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
