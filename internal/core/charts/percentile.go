package charts

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/agenthands/discourse/internal/core/model"
	"github.com/agenthands/discourse/internal/data"
)

// TracesPerKeyword is the number of traces PercentileOverlay emits for each
// keyword: agreement at 2k, disagreement at 2k+1.
const TracesPerKeyword = 2

type PercentileOptions struct {
	Low, High      float64
	Samples, Skip  int
	ValueColumn    string
	PolarityColumn string
}

func DefaultPercentileOptions() PercentileOptions {
	return PercentileOptions{
		Low:            80,
		High:           100,
		Samples:        500,
		Skip:           450,
		ValueColumn:    "edge_bet",
		PolarityColumn: "agreement",
	}
}

// Points returns the plotted percentile ranks: Samples evenly spaced values in
// [Low, High] with the first Skip dropped.
func (o PercentileOptions) Points() []float64 {
	all := floats.Span(make([]float64, o.Samples), o.Low, o.High)
	return all[o.Skip:]
}

// Percentile computes the p-th percentile (0..100) of sorted values using
// linear interpolation between closest ranks.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p / 100
	lo := math.Floor(h)
	i := int(lo)
	if i >= n-1 {
		return sorted[n-1]
	}
	if i < 0 {
		return sorted[0]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Percentiles evaluates Percentile at each rank. NaN values are ignored.
func Percentiles(values, ranks []float64) ([]float64, error) {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return nil, ErrEmptySubset
	}
	sort.Float64s(sorted)

	out := make([]float64, len(ranks))
	for i, p := range ranks {
		out[i] = Percentile(sorted, p)
	}
	return out, nil
}

// VisibilityMask turns on the trace pair of keyword k out of n keywords.
func VisibilityMask(n, k int) []bool {
	mask := make([]bool, n*TracesPerKeyword)
	mask[k*TracesPerKeyword] = true
	mask[k*TracesPerKeyword+1] = true
	return mask
}

func splitByPolarity(t *data.Table, opts PercentileOptions) (agree, disagree []float64, err error) {
	values, err := t.Floats(opts.ValueColumn)
	if err != nil {
		return nil, nil, err
	}
	polarity, err := t.Ints(opts.PolarityColumn)
	if err != nil {
		return nil, nil, err
	}
	for i, v := range values {
		switch polarity[i] {
		case model.Agree:
			agree = append(agree, v)
		case model.Disagree:
			disagree = append(disagree, v)
		}
	}
	return agree, disagree, nil
}

// PercentileOverlay plots the upper percentiles of edge betweenness for agreeing
// and disagreeing interactions of every keyword, with a dropdown to switch
// keywords.
func PercentileOverlay(km *data.KeywordMap, opts PercentileOptions) (*model.Figure, error) {
	ranks := opts.Points()
	keywords := km.Keywords()

	fig := &model.Figure{}
	menu := model.UpdateMenu{ShowActive: true}

	for k, kw := range keywords {
		t, err := km.Lookup(kw)
		if err != nil {
			return nil, err
		}
		agree, disagree, err := splitByPolarity(t, opts)
		if err != nil {
			return nil, fmt.Errorf("keyword %q: %w", kw, err)
		}

		var visible any = "legendonly"
		if k == 0 {
			visible = true
		}

		for _, subset := range []struct {
			label  string
			values []float64
		}{{"Agreement", agree}, {"Disagreement", disagree}} {
			q, err := Percentiles(subset.values, ranks)
			if err != nil {
				return nil, fmt.Errorf("keyword %q %s: %w", kw, subset.label, err)
			}
			fig.Data = append(fig.Data, model.Trace{
				Type:    "scatter",
				Mode:    "lines",
				Name:    kw + " " + subset.label,
				X:       numbers(ranks),
				Y:       numbers(q),
				Visible: visible,
			})
		}

		menu.Buttons = append(menu.Buttons, model.MenuButton{
			Label:  kw,
			Method: "update",
			Args:   []any{map[string]any{"visible": VisibilityMask(len(keywords), k)}},
		})
	}

	fig.Layout = model.Layout{
		UpdateMenus: []model.UpdateMenu{menu},
		XAxis:       &model.Axis{Title: model.NewTitle("Percentiles")},
		YAxis:       &model.Axis{Title: model.NewTitle("Edge Betweenness"), Type: "log"},
		Legend:      &model.Legend{Title: model.NewTitle("Keywords")},
		HoverMode:   "x",
	}
	return fig, nil
}
