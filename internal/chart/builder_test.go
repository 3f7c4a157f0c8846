package chart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type cell struct {
	number float64
	label  string
	isNum  bool
}

// rowsFrame is a minimal Frame over literal rows.
type rowsFrame []map[string]cell

func num(v float64) cell { return cell{number: v, isNum: true} }
func text(v string) cell { return cell{label: v} }

func (f rowsFrame) Len() int { return len(f) }

func (f rowsFrame) Number(row int, column string) (float64, bool) {
	c, ok := f[row][column]
	if !ok || !c.isNum {
		return 0, false
	}
	return c.number, true
}

func (f rowsFrame) Label(row int, column string) (string, bool) {
	c, ok := f[row][column]
	if !ok || c.isNum {
		return "", false
	}
	return c.label, true
}

func TestBuildScatterGroupsByColor(t *testing.T) {
	frame := rowsFrame{
		{"x": num(1), "y": num(2), "band": text("Good")},
		{"x": num(3), "y": num(4), "band": text("Poor")},
		{"x": num(5), "y": num(6), "band": text("Good")},
		{"x": num(7), "band": text("Good")},
		{"x": num(8), "y": num(9)},
	}

	figure, err := Build(frame, Spec{Kind: KindScatter, Title: "t", X: "x", Y: "y", Color: "band"})
	require.NoError(t, err)

	require.Equal(t, AxisLinear, figure.XAxis.Type)
	require.True(t, figure.ShowLegend)
	require.Len(t, figure.Traces, 2)
	require.Equal(t, "Good", figure.Traces[0].Name)
	require.Equal(t, []float64{1, 5}, figure.Traces[0].X)
	require.Equal(t, []float64{2, 6}, figure.Traces[0].Y)
	require.Equal(t, "Poor", figure.Traces[1].Name)
	require.NotEqual(t, figure.Traces[0].Color, figure.Traces[1].Color)
	require.Equal(t, 3, figure.Points())
}

func TestBuildScatterWithoutColorIsSingleTrace(t *testing.T) {
	frame := rowsFrame{
		{"x": num(1), "y": num(2)},
		{"x": num(3), "y": num(4)},
	}

	figure, err := Build(frame, Spec{Kind: KindScatter, X: "x", Y: "y"})
	require.NoError(t, err)
	require.False(t, figure.ShowLegend)
	require.Len(t, figure.Traces, 1)
	require.Equal(t, "y", figure.Traces[0].Name)
}

func TestBuildBoxKeepsRawValues(t *testing.T) {
	frame := rowsFrame{
		{"status": text("Single"), "conflicts": num(1)},
		{"status": text("Complicated"), "conflicts": num(4)},
		{"status": text("Single"), "conflicts": num(2)},
	}

	figure, err := Build(frame, Spec{Kind: KindBox, X: "status", Y: "conflicts"})
	require.NoError(t, err)

	require.Equal(t, AxisCategory, figure.XAxis.Type)
	require.Equal(t, []string{"Single", "Complicated"}, figure.Categories)
	require.Len(t, figure.Traces, 1)
	require.Equal(t, []string{"Single", "Complicated", "Single"}, figure.Traces[0].Labels)
	require.Equal(t, []float64{1, 4, 2}, figure.Traces[0].Y)
}

func TestBuildHistogramCountsAlignedCategories(t *testing.T) {
	frame := rowsFrame{
		{"platform": text("Instagram"), "country": text("India")},
		{"platform": text("TikTok"), "country": text("India")},
		{"platform": text("Instagram"), "country": text("Canada")},
		{"platform": text("Instagram"), "country": text("India")},
	}

	figure, err := Build(frame, Spec{Kind: KindHistogram, X: "platform", Color: "country", BarMode: BarModeGroup})
	require.NoError(t, err)

	require.Equal(t, BarModeGroup, figure.BarMode)
	require.Equal(t, "count", figure.YAxis.Title)
	require.Equal(t, []string{"Instagram", "TikTok"}, figure.Categories)
	require.Len(t, figure.Traces, 2)
	require.Equal(t, "India", figure.Traces[0].Name)
	require.Equal(t, []float64{2, 1}, figure.Traces[0].Y)
	require.Equal(t, "Canada", figure.Traces[1].Name)
	require.Equal(t, []float64{1, 0}, figure.Traces[1].Y)
}

func TestBuildBar(t *testing.T) {
	frame := rowsFrame{
		{"country": text("UK"), "usage": num(6)},
		{"country": text("US"), "usage": num(3)},
	}

	figure, err := Build(frame, Spec{Kind: KindBar, X: "country", Y: "usage"})
	require.NoError(t, err)
	require.Equal(t, []string{"UK", "US"}, figure.Traces[0].Labels)
	require.Equal(t, []float64{6, 3}, figure.Traces[0].Y)
}

func TestBuildEmptyFrame(t *testing.T) {
	for _, spec := range []Spec{
		{Kind: KindScatter, X: "x", Y: "y"},
		{Kind: KindBox, X: "x", Y: "y", Color: "c"},
		{Kind: KindHistogram, X: "x", Color: "c"},
		{Kind: KindBar, X: "x", Y: "y"},
	} {
		figure, err := Build(rowsFrame{}, spec)
		require.NoError(t, err)
		require.NotNil(t, figure.Traces)
		require.Empty(t, figure.Traces)
		require.Equal(t, 0, figure.Points())
	}
}

func TestSpecValidation(t *testing.T) {
	_, err := Build(rowsFrame{}, Spec{Kind: "pie", X: "x"})
	require.ErrorIs(t, err, ErrUnknownKind)

	_, err = Build(rowsFrame{}, Spec{Kind: KindScatter, X: "x"})
	require.ErrorIs(t, err, ErrMissingField)

	_, err = Build(rowsFrame{}, Spec{Kind: KindHistogram})
	require.ErrorIs(t, err, ErrMissingField)

	_, err = Build(rowsFrame{}, Spec{Kind: KindHistogram, X: "x", BarMode: "stacked"})
	require.Error(t, err)
}
