package chart

import (
	"errors"
	"fmt"
)

// Kind is the chart shape.
type Kind string

const (
	KindScatter   Kind = "scatter"
	KindBox       Kind = "box"
	KindHistogram Kind = "histogram"
	KindBar       Kind = "bar"
)

// BarMode controls how traces sharing a category are laid out.
type BarMode string

const (
	BarModeGroup   BarMode = "group"
	BarModeOverlay BarMode = "overlay"
)

// AxisType distinguishes continuous from categorical axes.
type AxisType string

const (
	AxisLinear   AxisType = "linear"
	AxisCategory AxisType = "category"
)

var (
	// ErrUnknownKind is returned for a chart kind the builder does not draw.
	ErrUnknownKind = errors.New("unknown chart kind")
	// ErrMissingField is returned when a kind's required encoding is absent.
	ErrMissingField = errors.New("chart field missing")
	// ErrNilFigure is returned when rendering without a figure.
	ErrNilFigure = errors.New("figure is nil")
)

// Frame is a read-only, row-indexed table the builder reads cells from.
// Implementations report false for missing cells and unknown columns.
type Frame interface {
	Len() int
	Number(row int, column string) (float64, bool)
	Label(row int, column string) (string, bool)
}

// Spec maps frame columns to visual encodings.
type Spec struct {
	Kind    Kind    `json:"kind"`
	Title   string  `json:"title"`
	X       string  `json:"x"`
	Y       string  `json:"y,omitempty"`
	Color   string  `json:"color,omitempty"`
	BarMode BarMode `json:"barMode,omitempty"`
}

// Validate checks that s names the fields its kind needs.
func (s Spec) Validate() error {
	switch s.Kind {
	case KindScatter, KindBox, KindBar:
		if s.X == "" || s.Y == "" {
			return fmt.Errorf("%w: %s needs x and y", ErrMissingField, s.Kind)
		}
	case KindHistogram:
		if s.X == "" {
			return fmt.Errorf("%w: histogram needs x", ErrMissingField)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}

	switch s.BarMode {
	case "", BarModeGroup, BarModeOverlay:
		return nil
	default:
		return fmt.Errorf("unknown bar mode %q", s.BarMode)
	}
}

// Figure is the render-ready chart. Scatter traces carry X/Y pairs; the other
// kinds carry category Labels aligned with Y.
type Figure struct {
	Kind       Kind     `json:"kind"`
	Title      string   `json:"title"`
	XAxis      Axis     `json:"xAxis"`
	YAxis      Axis     `json:"yAxis"`
	Legend     string   `json:"legend,omitempty"`
	ShowLegend bool     `json:"showLegend"`
	BarMode    BarMode  `json:"barMode,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Traces     []Trace  `json:"traces"`
}

// Axis describes one axis.
type Axis struct {
	Title string   `json:"title"`
	Type  AxisType `json:"type"`
}

// Trace is one colour group.
type Trace struct {
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	X      []float64 `json:"x,omitempty"`
	Labels []string  `json:"labels,omitempty"`
	Y      []float64 `json:"y"`
}

// Points returns the number of marks in the figure.
func (f *Figure) Points() int {
	if f == nil {
		return 0
	}
	total := 0
	for _, trace := range f.Traces {
		total += len(trace.Y)
	}
	return total
}
