package chart

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// RasterOptions sizes the PNG rendition of a figure.
type RasterOptions struct {
	Width  int
	Height int
}

// DefaultRasterOptions matches a wide dashboard panel.
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{Width: 960, Height: 540}
}

const (
	minRasterWidth  = 320
	minRasterHeight = 240
	legendWidth     = 170
)

var (
	fontOnce   sync.Once
	parsedFont *truetype.Font
	fontErr    error
)

func face(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		parsedFont, fontErr = truetype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("parse font: %w", fontErr)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{Size: size}), nil
}

type plotArea struct {
	left, top, right, bottom float64
}

func (a plotArea) width() float64  { return a.right - a.left }
func (a plotArea) height() float64 { return a.bottom - a.top }

type valueRange struct {
	min, max float64
}

func (r valueRange) scale(value, from, to float64) float64 {
	if r.max == r.min {
		return (from + to) / 2
	}
	return from + (value-r.min)/(r.max-r.min)*(to-from)
}

// RenderPNG rasterises a figure. Figures without traces still render their
// frame, title and axes.
func RenderPNG(figure *Figure, opts RasterOptions) ([]byte, error) {
	if figure == nil {
		return nil, ErrNilFigure
	}
	if opts.Width < minRasterWidth {
		opts.Width = minRasterWidth
	}
	if opts.Height < minRasterHeight {
		opts.Height = minRasterHeight
	}

	titleFace, err := face(16)
	if err != nil {
		return nil, err
	}
	labelFace, err := face(11)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	right := float64(opts.Width) - 30
	if figure.ShowLegend && len(figure.Traces) > 0 {
		right = float64(opts.Width) - legendWidth
	}
	area := plotArea{left: 80, top: 50, right: right, bottom: float64(opts.Height) - 70}

	dc.SetFontFace(titleFace)
	dc.SetHexColor("#2A3F5F")
	dc.DrawStringAnchored(figure.Title, float64(opts.Width)/2, 25, 0.5, 0.5)

	dc.SetFontFace(labelFace)
	yRange := figureYRange(figure)
	drawYAxis(dc, area, yRange, figure.YAxis.Title)

	switch figure.Kind {
	case KindScatter:
		xRange := figureXRange(figure)
		drawXAxisLinear(dc, area, xRange, figure.XAxis.Title)
		drawScatter(dc, area, figure, xRange, yRange)
	case KindBox:
		drawXAxisCategories(dc, area, figure.Categories, figure.XAxis.Title)
		drawBoxes(dc, area, figure, yRange)
	case KindBar, KindHistogram:
		drawXAxisCategories(dc, area, figure.Categories, figure.XAxis.Title)
		drawBars(dc, area, figure, yRange)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, figure.Kind)
	}

	if figure.ShowLegend && len(figure.Traces) > 0 {
		drawLegend(dc, area, figure)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func figureYRange(figure *Figure) valueRange {
	r := valueRange{min: math.Inf(1), max: math.Inf(-1)}
	for _, trace := range figure.Traces {
		for _, y := range trace.Y {
			r.min = math.Min(r.min, y)
			r.max = math.Max(r.max, y)
		}
	}
	if figure.Kind == KindBar || figure.Kind == KindHistogram {
		r.min = math.Min(r.min, 0)
		r.max = math.Max(r.max, 0)
	}
	return padded(r)
}

func figureXRange(figure *Figure) valueRange {
	r := valueRange{min: math.Inf(1), max: math.Inf(-1)}
	for _, trace := range figure.Traces {
		for _, x := range trace.X {
			r.min = math.Min(r.min, x)
			r.max = math.Max(r.max, x)
		}
	}
	return padded(r)
}

func padded(r valueRange) valueRange {
	if math.IsInf(r.min, 1) {
		return valueRange{min: 0, max: 1}
	}
	if r.min == r.max {
		return valueRange{min: r.min - 1, max: r.max + 1}
	}
	pad := (r.max - r.min) * 0.05
	return valueRange{min: r.min - pad, max: r.max + pad}
}

func drawYAxis(dc *gg.Context, area plotArea, r valueRange, title string) {
	dc.SetHexColor("#E5ECF6")
	dc.DrawRectangle(area.left, area.top, area.width(), area.height())
	dc.Fill()

	const ticks = 5
	for i := 0; i <= ticks; i++ {
		value := r.min + (r.max-r.min)*float64(i)/ticks
		y := r.scale(value, area.bottom, area.top)

		dc.SetHexColor("#FFFFFF")
		dc.SetLineWidth(1)
		dc.DrawLine(area.left, y, area.right, y)
		dc.Stroke()

		dc.SetHexColor("#2A3F5F")
		dc.DrawStringAnchored(formatTick(value), area.left-8, y, 1, 0.5)
	}

	dc.Push()
	dc.RotateAbout(-math.Pi/2, 20, (area.top+area.bottom)/2)
	dc.DrawStringAnchored(title, 20, (area.top+area.bottom)/2, 0.5, 0.5)
	dc.Pop()
}

func drawXAxisLinear(dc *gg.Context, area plotArea, r valueRange, title string) {
	const ticks = 6
	for i := 0; i <= ticks; i++ {
		value := r.min + (r.max-r.min)*float64(i)/ticks
		x := r.scale(value, area.left, area.right)

		dc.SetHexColor("#FFFFFF")
		dc.DrawLine(x, area.top, x, area.bottom)
		dc.Stroke()

		dc.SetHexColor("#2A3F5F")
		dc.DrawStringAnchored(formatTick(value), x, area.bottom+14, 0.5, 0.5)
	}
	dc.DrawStringAnchored(title, (area.left+area.right)/2, area.bottom+45, 0.5, 0.5)
}

func drawXAxisCategories(dc *gg.Context, area plotArea, categories []string, title string) {
	dc.SetHexColor("#2A3F5F")
	if len(categories) > 0 {
		slot := area.width() / float64(len(categories))
		for idx, category := range categories {
			x := area.left + slot*(float64(idx)+0.5)
			dc.DrawStringAnchored(category, x, area.bottom+14, 0.5, 0.5)
		}
	}
	dc.DrawStringAnchored(title, (area.left+area.right)/2, area.bottom+45, 0.5, 0.5)
}

func drawScatter(dc *gg.Context, area plotArea, figure *Figure, xRange, yRange valueRange) {
	for _, trace := range figure.Traces {
		dc.SetHexColor(trace.Color)
		for i := range trace.Y {
			if i >= len(trace.X) {
				break
			}
			x := xRange.scale(trace.X[i], area.left, area.right)
			y := yRange.scale(trace.Y[i], area.bottom, area.top)
			dc.DrawCircle(x, y, 3)
			dc.Fill()
		}
	}
}

// groupSlot returns the horizontal extent of trace t inside category c.
func groupSlot(area plotArea, categories, traces, c, t int, grouped bool) (float64, float64) {
	slot := area.width() / float64(categories)
	inner := slot * 0.8
	start := area.left + slot*float64(c) + slot*0.1
	if !grouped || traces <= 1 {
		return start, inner
	}
	width := inner / float64(traces)
	return start + width*float64(t), width
}

func categoryIndex(categories []string) map[string]int {
	index := make(map[string]int, len(categories))
	for idx, category := range categories {
		index[category] = idx
	}
	return index
}

func drawBars(dc *gg.Context, area plotArea, figure *Figure, yRange valueRange) {
	if len(figure.Categories) == 0 {
		return
	}
	index := categoryIndex(figure.Categories)
	grouped := figure.BarMode != BarModeOverlay
	zero := yRange.scale(0, area.bottom, area.top)

	for t, trace := range figure.Traces {
		dc.SetHexColor(trace.Color)
		for i, label := range trace.Labels {
			c, ok := index[label]
			if !ok || i >= len(trace.Y) {
				continue
			}
			x, width := groupSlot(area, len(figure.Categories), len(figure.Traces), c, t, grouped)
			y := yRange.scale(trace.Y[i], area.bottom, area.top)
			dc.DrawRectangle(x, math.Min(y, zero), width, math.Abs(zero-y))
			dc.Fill()
		}
	}
}

type boxStats struct {
	lowerWhisker, q1, median, q3, upperWhisker float64
	outliers                                   []float64
}

func drawBoxes(dc *gg.Context, area plotArea, figure *Figure, yRange valueRange) {
	if len(figure.Categories) == 0 {
		return
	}
	index := categoryIndex(figure.Categories)

	for t, trace := range figure.Traces {
		perCategory := make(map[int][]float64)
		for i, label := range trace.Labels {
			if c, ok := index[label]; ok && i < len(trace.Y) {
				perCategory[c] = append(perCategory[c], trace.Y[i])
			}
		}

		for c, values := range perCategory {
			stats := summarize(values)
			x, width := groupSlot(area, len(figure.Categories), len(figure.Traces), c, t, true)
			mid := x + width/2
			scale := func(v float64) float64 { return yRange.scale(v, area.bottom, area.top) }

			dc.SetHexColor(trace.Color)
			dc.SetLineWidth(1.5)
			dc.DrawLine(mid, scale(stats.lowerWhisker), mid, scale(stats.q1))
			dc.DrawLine(mid, scale(stats.q3), mid, scale(stats.upperWhisker))
			dc.DrawLine(x+width*0.25, scale(stats.lowerWhisker), x+width*0.75, scale(stats.lowerWhisker))
			dc.DrawLine(x+width*0.25, scale(stats.upperWhisker), x+width*0.75, scale(stats.upperWhisker))
			dc.Stroke()

			dc.DrawRectangle(x, scale(stats.q3), width, scale(stats.q1)-scale(stats.q3))
			dc.Stroke()
			dc.DrawLine(x, scale(stats.median), x+width, scale(stats.median))
			dc.Stroke()

			for _, outlier := range stats.outliers {
				dc.DrawCircle(mid, scale(outlier), 2.5)
				dc.Fill()
			}
		}
	}
}

// summarize computes Tukey box statistics with linearly interpolated quartiles.
func summarize(values []float64) boxStats {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	low, high := q1-1.5*iqr, q3+1.5*iqr

	stats := boxStats{q1: q1, median: quantile(sorted, 0.5), q3: q3, lowerWhisker: q1, upperWhisker: q3}
	first := true
	for _, v := range sorted {
		if v < low || v > high {
			stats.outliers = append(stats.outliers, v)
			continue
		}
		if first {
			stats.lowerWhisker = v
			first = false
		}
		stats.upperWhisker = v
	}
	return stats
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	position := q * float64(len(sorted)-1)
	lower := int(math.Floor(position))
	upper := int(math.Ceil(position))
	if lower == upper {
		return sorted[lower]
	}
	fraction := position - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*fraction
}

func drawLegend(dc *gg.Context, area plotArea, figure *Figure) {
	x := area.right + 20
	y := area.top

	dc.SetHexColor("#2A3F5F")
	dc.DrawStringAnchored(figure.Legend, x, y, 0, 0.5)
	for idx, trace := range figure.Traces {
		rowY := y + 20*float64(idx+1)
		dc.SetHexColor(trace.Color)
		dc.DrawRectangle(x, rowY-5, 10, 10)
		dc.Fill()
		dc.SetHexColor("#2A3F5F")
		dc.DrawStringAnchored(trace.Name, x+16, rowY, 0, 0.5)
	}
}

func formatTick(value float64) string {
	if math.Abs(value) < 1e-9 {
		return "0"
	}
	return strconv.FormatFloat(value, 'g', 3, 64)
}
