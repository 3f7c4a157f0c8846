// Package web serves the single-page dashboard shell.
package web

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/hfoxfagundes/social-media-dashboard/internal/dto"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type pageData struct {
	Title      string
	Panels     []dto.PanelInfo
	SocketPath string
}

// Page renders the dashboard shell once and serves it for every request.
func Page(title string, panels []dto.PanelInfo, socketPath string) (fiber.Handler, error) {
	if len(panels) == 0 {
		return nil, fmt.Errorf("dashboard page needs at least one panel")
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, pageData{Title: title, Panels: panels, SocketPath: socketPath}); err != nil {
		return nil, fmt.Errorf("render dashboard page: %w", err)
	}
	body := buf.Bytes()

	return func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.Send(body)
	}, nil
}
