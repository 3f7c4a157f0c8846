package performance_test

import (
	"errors"
	"math"
	"net"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/hfoxfagundes/social-media-dashboard/internal/analysis"
	"github.com/hfoxfagundes/social-media-dashboard/internal/chart"
	"github.com/hfoxfagundes/social-media-dashboard/internal/dataset"
	"github.com/hfoxfagundes/social-media-dashboard/internal/dto"
	"github.com/hfoxfagundes/social-media-dashboard/internal/handler"
	"github.com/hfoxfagundes/social-media-dashboard/internal/middleware"
	"github.com/hfoxfagundes/social-media-dashboard/internal/service"
)

func newPanelApp(t *testing.T) *fiber.App {
	t.Helper()

	table, err := dataset.Load(filepath.Join("..", "..", "internal", "dataset", "testdata", "students.csv"))
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}

	svc := service.NewDashboardService(table, analysis.NewKMeans(analysis.DefaultSeed), validator.New(), analysis.DefaultClusters, zerolog.Nop())

	app := fiber.New()
	app.Use(middleware.CorrelationID())
	handler.NewDashboardHandler(svc, chart.DefaultRasterOptions(), zerolog.Nop()).Register(app.Group("/api/v1/panels"))
	return app
}

func TestPanelWebsocketRoundTripP95Under250ms(t *testing.T) {
	app := newPanelApp(t)
	baseURL, shutdown := startFiberServer(t, app)
	defer shutdown()

	url := "ws" + strings.TrimPrefix(baseURL, "http") + "/api/v1/panels/ws"
	dialer := websocket.Dialer{HandshakeTimeout: 3 * time.Second}
	conn, resp, err := dialer.Dial(url, http.Header{"X-Correlation-ID": {"perf-ws"}})
	if err != nil {
		t.Fatalf("websocket dial failed: %v", err)
	}
	if resp != nil {
		_ = resp.Body.Close()
	}
	defer conn.Close()

	panels := []string{dto.PanelUsageSleep, dto.PanelConflicts, dto.PanelPlatforms, dto.PanelClustering, dto.PanelAcademic, dto.PanelCountryUsage, dto.PanelRelationships}
	requests := 350
	durations := make([]time.Duration, 0, requests)

	for i := 0; i < requests; i++ {
		request := dto.PanelRequest{Panel: panels[i%len(panels)]}
		if request.Panel == dto.PanelClustering {
			request.Controls.K = dto.ClusterCount(2 + i%4)
		}

		start := time.Now()
		if err := conn.WriteJSON(request); err != nil {
			t.Fatalf("write request %d: %v", i, err)
		}
		var response dto.PanelResponse
		if err := conn.ReadJSON(&response); err != nil {
			t.Fatalf("read response %d: %v", i, err)
		}
		durations = append(durations, time.Since(start))

		if response.Slug != request.Panel {
			t.Fatalf("expected panel %s, got %s", request.Panel, response.Slug)
		}
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	p95 := percentile(durations, 0.95)

	if p95 > 250*time.Millisecond {
		t.Fatalf("expected websocket P95 <= 250ms, got %s", p95)
	}
}

func TestPanelHTTPP95Under300ms(t *testing.T) {
	app := newPanelApp(t)
	baseURL, shutdown := startFiberServer(t, app)
	defer shutdown()

	client := &http.Client{Timeout: 5 * time.Second}
	clients := 200
	durations := make([]time.Duration, 0, clients)

	for i := 0; i < clients; i++ {
		req, err := http.NewRequest(http.MethodGet, baseURL+"/api/v1/panels/clustering?k="+strconv.Itoa(2+i%4), nil)
		if err != nil {
			t.Fatalf("build request failed: %v", err)
		}

		start := time.Now()
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("panel request failed: %v", err)
		}
		_ = resp.Body.Close()
		durations = append(durations, time.Since(start))

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	p95 := percentile(durations, 0.95)

	if p95 > 300*time.Millisecond {
		t.Fatalf("expected panel P95 <= 300ms, got %s", p95)
	}
}

func percentile(values []time.Duration, pct float64) time.Duration {
	if len(values) == 0 {
		return 0
	}
	index := int(math.Ceil(pct*float64(len(values)))) - 1
	if index < 0 {
		index = 0
	}
	if index >= len(values) {
		index = len(values) - 1
	}
	return values[index]
}

func startFiberServer(t *testing.T, app *fiber.App) (string, func()) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}

	done := make(chan struct{})
	go func() {
		if err := app.Listener(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Logf("fiber listener stopped: %v", err)
		}
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)

	shutdown := func() {
		_ = app.Shutdown()
		_ = listener.Close()
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
	}

	return "http://" + listener.Addr().String(), shutdown
}
