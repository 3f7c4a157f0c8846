package handler

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/hfoxfagundes/social-media-dashboard/internal/chart"
	"github.com/hfoxfagundes/social-media-dashboard/internal/dto"
	"github.com/hfoxfagundes/social-media-dashboard/internal/middleware"
	"github.com/hfoxfagundes/social-media-dashboard/internal/observability"
	"github.com/hfoxfagundes/social-media-dashboard/internal/service"
	"github.com/hfoxfagundes/social-media-dashboard/internal/utils"
)

const websocketReadLimit = 16 << 10

// PanelMeta accompanies the panel catalogue.
type PanelMeta struct {
	Rows int `json:"rows"`
}

// DashboardHandler exposes the dashboard panels over HTTP and a websocket.
type DashboardHandler struct {
	service service.DashboardService
	raster  chart.RasterOptions
	logger  zerolog.Logger
}

// NewDashboardHandler creates a dashboard handler instance.
func NewDashboardHandler(service service.DashboardService, raster chart.RasterOptions, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		raster:  raster,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register binds dashboard routes under the provided router group.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/", h.list)

	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			ctx := middleware.ContextWithCorrelation(c.UserContext(), middleware.GetCorrelationID(c))
			c.Locals("request_ctx", ctx)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(h.stream))

	router.Get("/:slug", h.render)
}

func (h *DashboardHandler) list(c *fiber.Ctx) error {
	return utils.OK(c, h.service.Panels(), "panels", PanelMeta{Rows: h.service.Rows()})
}

func (h *DashboardHandler) render(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	var controls dto.PanelControls
	if err := c.QueryParser(&controls); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid controls")
	}

	request := dto.PanelRequest{Panel: c.Params("slug"), Controls: controls}
	response, err := h.service.Render(c.UserContext(), request)
	if err != nil {
		return h.writeError(c, logger, request.Panel, err)
	}

	if !strings.EqualFold(c.Query("format"), "png") {
		return utils.SendSuccess(c, "panel rendered", response)
	}

	if response.Chart == nil {
		return utils.SendError(c, fiber.StatusUnprocessableEntity, response.Warning)
	}

	image, err := chart.RenderPNG(response.Chart, h.raster)
	if err != nil {
		logger.Error().Err(err).Str("panel", request.Panel).Msg("failed to rasterise panel")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to render chart")
	}

	c.Type("png")
	return c.Send(image)
}

func (h *DashboardHandler) writeError(c *fiber.Ctx, logger *zerolog.Logger, panel string, err error) error {
	switch {
	case errors.Is(err, service.ErrUnknownPanel):
		return utils.SendError(c, fiber.StatusNotFound, "panel not found")
	case isValidationError(err):
		return utils.Fail(c, fiber.StatusBadRequest, "invalid controls", validationDetails(err))
	default:
		logger.Error().Err(err).Str("panel", panel).Msg("failed to render panel")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to render panel")
	}
}

// stream answers every PanelRequest frame with a rendered panel, or a PanelError frame.
func (h *DashboardHandler) stream(conn *websocket.Conn) {
	baseCtx, _ := conn.Locals("request_ctx").(context.Context)
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	logger := h.logger.With().Str("correlation_id", middleware.CorrelationIDFromContext(baseCtx)).Logger()

	observability.WebsocketSessions().Inc()
	defer observability.WebsocketSessions().Dec()

	conn.SetReadLimit(websocketReadLimit)
	logger.Info().Msg("dashboard websocket connected")
	defer logger.Info().Msg("dashboard websocket disconnected")

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn().Err(err).Msg("dashboard websocket closed unexpectedly")
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var request dto.PanelRequest
		if err := json.Unmarshal(payload, &request); err != nil {
			if writeErr := conn.WriteJSON(dto.PanelError{Error: "invalid request"}); writeErr != nil {
				return
			}
			continue
		}

		response, err := h.service.Render(baseCtx, request)
		if err != nil {
			frame := dto.PanelError{Panel: request.Panel, Error: streamErrorMessage(err)}
			if !errors.Is(err, service.ErrUnknownPanel) && !isValidationError(err) {
				logger.Error().Err(err).Str("panel", request.Panel).Msg("failed to render panel")
			}
			if writeErr := conn.WriteJSON(frame); writeErr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(response); err != nil {
			logger.Warn().Err(err).Msg("failed to write panel frame")
			return
		}
	}
}

func streamErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrUnknownPanel):
		return "panel not found"
	case isValidationError(err):
		details := validationDetails(err)
		parts := make([]string, 0, len(details))
		for field, message := range details {
			parts = append(parts, field+" "+message)
		}
		sort.Strings(parts)
		return "invalid controls: " + strings.Join(parts, "; ")
	default:
		return "failed to render panel"
	}
}
