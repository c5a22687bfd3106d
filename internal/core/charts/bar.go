package charts

import (
	"fmt"

	"github.com/agenthands/discourse/internal/core/model"
	"github.com/agenthands/discourse/internal/data"
)

// MaxPanels is the number of side-by-side subplots a layout can address.
const MaxPanels = 2

// BarPanel is one subplot of a side-by-side bar figure.
type BarPanel struct {
	Title string
	Table *data.Table
	XCol  string
	YCol  string
}

func barTrace(t *data.Table, xCol, yCol string) (model.Trace, error) {
	xs, err := t.Strings(xCol)
	if err != nil {
		return model.Trace{}, err
	}
	ys, err := t.Floats(yCol)
	if err != nil {
		return model.Trace{}, err
	}
	return model.Trace{Type: "bar", X: labels(xs), Y: numbers(ys)}, nil
}

// Bar plots one column against another as a single bar trace.
func Bar(t *data.Table, xCol, yCol, xTitle, yTitle string) (*model.Figure, error) {
	trace, err := barTrace(t, xCol, yCol)
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	return &model.Figure{
		Data: []model.Trace{trace},
		Layout: model.Layout{
			XAxis: &model.Axis{Title: model.NewTitle(xTitle)},
			YAxis: &model.Axis{Title: model.NewTitle(yTitle)},
		},
	}, nil
}

// SideBySideBars lays panels out on one row of subplots, each with its own
// axes and a title above it. The legend is hidden.
func SideBySideBars(panels ...BarPanel) (*model.Figure, error) {
	if len(panels) == 0 || len(panels) > MaxPanels {
		return nil, fmt.Errorf("%w: got %d, want 1..%d", ErrTooManyPanels, len(panels), MaxPanels)
	}

	fig := &model.Figure{Layout: model.Layout{ShowLegend: model.Bool(false)}}
	domains := subplotDomains(len(panels))

	for i, p := range panels {
		trace, err := barTrace(p.Table, p.XCol, p.YCol)
		if err != nil {
			return nil, fmt.Errorf("panel %q: %w", p.Title, err)
		}
		xName, yName := "x", "y"
		if i > 0 {
			xName, yName = fmt.Sprintf("x%d", i+1), fmt.Sprintf("y%d", i+1)
		}
		trace.XAxis, trace.YAxis = xName, yName
		fig.Data = append(fig.Data, trace)

		xAxis := &model.Axis{Domain: domains[i], Anchor: yName}
		yAxis := &model.Axis{Anchor: xName}
		if i == 0 {
			fig.Layout.XAxis, fig.Layout.YAxis = xAxis, yAxis
		} else {
			fig.Layout.XAxis2, fig.Layout.YAxis2 = xAxis, yAxis
		}

		fig.Layout.Annotations = append(fig.Layout.Annotations, model.Annotation{
			Text:      p.Title,
			X:         (domains[i][0] + domains[i][1]) / 2,
			Y:         1,
			XRef:      "paper",
			YRef:      "paper",
			XAnchor:   "center",
			YAnchor:   "bottom",
			ShowArrow: false,
		})
	}

	return fig, nil
}

// subplotDomains splits [0, 1] into n columns separated by 0.2/n spacing.
func subplotDomains(n int) [][]float64 {
	spacing := 0.2 / float64(n)
	width := (1 - spacing*float64(n-1)) / float64(n)
	out := make([][]float64, n)
	for i := range out {
		start := float64(i) * (width + spacing)
		end := start + width
		if i == n-1 {
			end = 1
		}
		out[i] = []float64{start, end}
	}
	return out
}
