package dto

import "github.com/hfoxfagundes/social-media-dashboard/internal/chart"

// Panel slugs.
const (
	PanelUsageSleep    = "usage-sleep"
	PanelConflicts     = "conflicts"
	PanelPlatforms     = "platforms"
	PanelClustering    = "clustering"
	PanelAcademic      = "academic"
	PanelCountryUsage  = "country-usage"
	PanelRelationships = "relationships"
)

// Control kinds rendered by the dashboard page.
const (
	ControlRadio  = "radio"
	ControlSelect = "select"
	ControlText   = "text"
	ControlSlider = "slider"
)

// PanelControls carries every control value a panel may read. Each panel only
// looks at its own fields; empty values select the panel defaults.
type PanelControls struct {
	ColorByMentalHealth string `json:"color_by_mental_health" query:"color_by_mental_health" validate:"omitempty,oneof=Yes No"`
	RelationshipStatus  string `json:"relationship_status" query:"relationship_status" validate:"max=128"`
	AcademicLevel       string `json:"academic_level" query:"academic_level" validate:"max=128"`
	Countries           string `json:"countries" query:"countries" validate:"max=1024"`
	K                   *int   `json:"k,omitempty" query:"k" validate:"omitempty,min=2,max=10"`
}

// ClusterCount returns a K control value. A nil K selects the configured default.
func ClusterCount(k int) *int {
	return &k
}

// PanelRequest asks for one panel to be rendered, as sent over the websocket.
type PanelRequest struct {
	Panel    string        `json:"panel" validate:"required"`
	Controls PanelControls `json:"controls"`
}

// PanelInfo describes a panel in the catalogue.
type PanelInfo struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Tab   string `json:"tab"`
}

// Control is one input widget together with its current value.
type Control struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Kind    string   `json:"kind"`
	Value   string   `json:"value"`
	Options []string `json:"options,omitempty"`
	Min     int      `json:"min,omitempty"`
	Max     int      `json:"max,omitempty"`
}

// PanelResponse is a fully rendered panel. Chart is nil when the panel could not
// draw, in which case Warning says why.
type PanelResponse struct {
	Slug     string        `json:"slug"`
	Title    string        `json:"title"`
	Controls []Control     `json:"controls"`
	Rows     int           `json:"rows"`
	Chart    *chart.Figure `json:"chart,omitempty"`
	Warning  string        `json:"warning,omitempty"`
}

// PanelError is the websocket frame sent when a request cannot be served.
type PanelError struct {
	Panel string `json:"panel,omitempty"`
	Error string `json:"error"`
}
