package chart

// Qualitative palette assigned to traces in order.
var defaultColors = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// Build maps frame rows onto a figure. Rows missing a cell the chart Spec encodes are
// left out of the figure; an empty frame produces a figure with no traces.
func Build(frame Frame, spec Spec) (*Figure, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	figure := &Figure{
		Kind:       spec.Kind,
		Title:      spec.Title,
		XAxis:      Axis{Title: spec.X, Type: AxisCategory},
		YAxis:      Axis{Title: spec.Y, Type: AxisLinear},
		Legend:     spec.Color,
		ShowLegend: spec.Color != "",
		Traces:     []Trace{},
	}

	traces := newTraceSet(spec.Y)
	categories := newCategorySet()

	switch spec.Kind {
	case KindScatter:
		figure.XAxis.Type = AxisLinear
		buildScatter(frame, spec, traces)
	case KindBox, KindBar:
		buildCategorical(frame, spec, traces, categories)
	case KindHistogram:
		figure.YAxis.Title = "count"
		figure.BarMode = spec.BarMode
		if figure.BarMode == "" {
			figure.BarMode = BarModeGroup
		}
		buildHistogram(frame, spec, traces, categories)
	}

	if spec.Kind == KindBar && spec.Color != "" {
		figure.BarMode = spec.BarMode
		if figure.BarMode == "" {
			figure.BarMode = BarModeGroup
		}
	}

	figure.Categories = categories.values
	for idx, name := range traces.order {
		trace := traces.byName[name]
		trace.Color = defaultColors[idx%len(defaultColors)]
		figure.Traces = append(figure.Traces, *trace)
	}

	return figure, nil
}

func buildScatter(frame Frame, spec Spec, traces *traceSet) {
	for row := 0; row < frame.Len(); row++ {
		x, ok := frame.Number(row, spec.X)
		if !ok {
			continue
		}
		y, ok := frame.Number(row, spec.Y)
		if !ok {
			continue
		}
		name, ok := traceName(frame, row, spec.Color)
		if !ok {
			continue
		}

		trace := traces.get(name)
		trace.X = append(trace.X, x)
		trace.Y = append(trace.Y, y)
	}
}

func buildCategorical(frame Frame, spec Spec, traces *traceSet, categories *categorySet) {
	for row := 0; row < frame.Len(); row++ {
		x, ok := frame.Label(row, spec.X)
		if !ok {
			continue
		}
		y, ok := frame.Number(row, spec.Y)
		if !ok {
			continue
		}
		name, ok := traceName(frame, row, spec.Color)
		if !ok {
			continue
		}

		categories.add(x)
		trace := traces.get(name)
		trace.Labels = append(trace.Labels, x)
		trace.Y = append(trace.Y, y)
	}
}

// buildHistogram counts rows per (colour, category); every trace is aligned to
// the full category list so grouped bars line up.
func buildHistogram(frame Frame, spec Spec, traces *traceSet, categories *categorySet) {
	counts := make(map[string]map[string]float64)
	for row := 0; row < frame.Len(); row++ {
		x, ok := frame.Label(row, spec.X)
		if !ok {
			continue
		}
		name, ok := traceName(frame, row, spec.Color)
		if !ok {
			continue
		}

		categories.add(x)
		traces.get(name)
		if counts[name] == nil {
			counts[name] = make(map[string]float64)
		}
		counts[name][x]++
	}

	for _, name := range traces.order {
		trace := traces.byName[name]
		trace.Labels = append([]string(nil), categories.values...)
		trace.Y = make([]float64, len(categories.values))
		for idx, category := range categories.values {
			trace.Y[idx] = counts[name][category]
		}
	}
}

func traceName(frame Frame, row int, colorField string) (string, bool) {
	if colorField == "" {
		return "", true
	}
	return frame.Label(row, colorField)
}

type traceSet struct {
	fallback string
	order    []string
	byName   map[string]*Trace
}

func newTraceSet(fallback string) *traceSet {
	return &traceSet{fallback: fallback, byName: make(map[string]*Trace)}
}

func (s *traceSet) get(name string) *Trace {
	if trace, ok := s.byName[name]; ok {
		return trace
	}
	display := name
	if display == "" {
		display = s.fallback
	}
	trace := &Trace{Name: display, Y: []float64{}}
	s.byName[name] = trace
	s.order = append(s.order, name)
	return trace
}

type categorySet struct {
	seen   map[string]struct{}
	values []string
}

func newCategorySet() *categorySet {
	return &categorySet{seen: make(map[string]struct{})}
}

func (s *categorySet) add(value string) {
	if _, ok := s.seen[value]; ok {
		return
	}
	s.seen[value] = struct{}{}
	s.values = append(s.values, value)
}
