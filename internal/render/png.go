// Package render exports figures as static images.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/agenthands/discourse/internal/core/model"
)

var ErrUnsupportedFigure = errors.New("figure cannot be exported as an image")

const (
	Width  = 1024
	Height = 512
)

var palette = []drawing.Color{
	chart.ColorBlue, chart.ColorRed, chart.ColorGreen, chart.ColorOrange, chart.ColorAlternateGray,
}

// PNG draws fig with go-chart. Bar figures become one bar chart, line figures
// one line chart of their visible traces. Anything else is rejected with
// ErrUnsupportedFigure.
func PNG(fig *model.Figure, w io.Writer) error {
	if fig == nil || len(fig.Data) == 0 {
		return fmt.Errorf("%w: no traces", ErrUnsupportedFigure)
	}

	switch kindOf(fig) {
	case "bar":
		return barPNG(fig, w)
	case "lines":
		return linePNG(fig, w)
	default:
		return fmt.Errorf("%w: mixed or marker traces", ErrUnsupportedFigure)
	}
}

func kindOf(fig *model.Figure) string {
	kind := ""
	for _, tr := range fig.Data {
		k := tr.Type
		if tr.Type == "scatter" {
			if tr.Mode != "lines" {
				return ""
			}
			k = "lines"
		}
		if kind != "" && k != kind {
			return ""
		}
		kind = k
	}
	return kind
}

func title(fig *model.Figure) string {
	if fig.Layout.Title != nil {
		return fig.Layout.Title.Text
	}
	return ""
}

func barPNG(fig *model.Figure, w io.Writer) error {
	var bars []chart.Value
	for i, tr := range fig.Data {
		style := chart.Style{FillColor: palette[i%len(palette)], StrokeColor: palette[i%len(palette)]}
		for j := range tr.X {
			v, ok := number(tr.Y, j)
			if !ok {
				continue
			}
			bars = append(bars, chart.Value{Label: fmt.Sprint(tr.X[j]), Value: v, Style: style})
		}
	}
	if len(bars) == 0 {
		return fmt.Errorf("%w: no numeric bars", ErrUnsupportedFigure)
	}

	bc := chart.BarChart{
		Title:    title(fig),
		Width:    Width,
		Height:   Height,
		BarWidth: max(8, Width/(2*len(bars))),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16},
		},
		Bars: bars,
	}
	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render bar chart: %w", err)
	}
	return nil
}

func linePNG(fig *model.Figure, w io.Writer) error {
	logY := fig.Layout.YAxis != nil && fig.Layout.YAxis.Type == "log"

	var series []chart.Series
	for i, tr := range fig.Data {
		if tr.Visible != nil && tr.Visible != true {
			continue
		}
		var xs, ys []float64
		for j := range tr.X {
			x, okX := number(tr.X, j)
			y, okY := number(tr.Y, j)
			if !okX || !okY {
				continue
			}
			if logY {
				if y <= 0 {
					continue
				}
				y = math.Log10(y)
			}
			xs = append(xs, x)
			ys = append(ys, y)
		}
		if len(xs) == 0 {
			continue
		}
		// go-chart needs two points to build a range.
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		color := palette[i%len(palette)]
		series = append(series, chart.ContinuousSeries{
			Name:    tr.Name,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: color, StrokeWidth: 2},
		})
	}
	if len(series) == 0 {
		return fmt.Errorf("%w: no visible numeric traces", ErrUnsupportedFigure)
	}

	yName := axisTitle(fig.Layout.YAxis)
	if logY {
		yName = "log10 " + yName
	}
	ch := chart.Chart{
		Title:      title(fig),
		Width:      Width,
		Height:     Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: axisTitle(fig.Layout.XAxis)},
		YAxis:      chart.YAxis{Name: yName},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render line chart: %w", err)
	}
	return nil
}

func axisTitle(a *model.Axis) string {
	if a == nil || a.Title == nil {
		return ""
	}
	return a.Title.Text
}

func number(vals []any, i int) (float64, bool) {
	if i >= len(vals) {
		return 0, false
	}
	switch v := vals[i].(type) {
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
