package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/hfoxfagundes/social-media-dashboard/internal/dto"
)

func TestPageRendersTabs(t *testing.T) {
	handler, err := Page("Student Dashboard", []dto.PanelInfo{
		{Slug: dto.PanelUsageSleep, Tab: "1. Usage & Sleep"},
		{Slug: dto.PanelConflicts, Tab: "2. Conflicts"},
	}, "/api/v1/panels/ws")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "<title>Student Dashboard</title>")
	require.Contains(t, string(body), `data-panel="conflicts"`)
	require.Contains(t, string(body), "1. Usage &amp; Sleep")
	require.Contains(t, string(body), "/api/v1/panels/ws")
}

func TestPageRequiresPanels(t *testing.T) {
	_, err := Page("empty", nil, "/ws")
	require.Error(t, err)
}
