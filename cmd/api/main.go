package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hfoxfagundes/social-media-dashboard/internal/analysis"
	"github.com/hfoxfagundes/social-media-dashboard/internal/chart"
	"github.com/hfoxfagundes/social-media-dashboard/internal/config"
	"github.com/hfoxfagundes/social-media-dashboard/internal/dataset"
	"github.com/hfoxfagundes/social-media-dashboard/internal/handler"
	"github.com/hfoxfagundes/social-media-dashboard/internal/middleware"
	"github.com/hfoxfagundes/social-media-dashboard/internal/router"
	"github.com/hfoxfagundes/social-media-dashboard/internal/service"
	"github.com/hfoxfagundes/social-media-dashboard/internal/web"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	table, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DatasetPath).Msg("failed to load dataset")
	}
	logger.Info().Int("rows", table.Len()).Str("path", cfg.DatasetPath).Msg("dataset loaded")

	validate := validator.New(validator.WithRequiredStructEnabled())
	dashboardService := service.NewDashboardService(table, analysis.NewKMeans(cfg.ClusterSeed), validate, cfg.ClusterDefaultK, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, chart.RasterOptions{Width: cfg.ChartWidth, Height: cfg.ChartHeight}, logger)

	page, err := web.Page(cfg.AppName, dashboardService.Panels(), router.PanelsPath+"/ws")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build dashboard page")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AccessLog: cfg.AppEnv == "development"})
	router.Register(app, cfg, router.Dependencies{
		DashboardHandler: dashboardHandler,
		Rows:             dashboardService,
		Page:             page,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
