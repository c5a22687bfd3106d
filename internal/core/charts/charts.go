// Package charts turns loaded tables into Plotly figures. Every builder is a
// pure function of its inputs.
package charts

import (
	"errors"
	"math"
)

var (
	ErrEmptySubset     = errors.New("no values to compute percentiles over")
	ErrNoCrossEdges    = errors.New("no edges between distinct communities")
	ErrUnknownPolarity = errors.New("unknown agreement polarity")
	ErrTooManyPanels   = errors.New("too many subplot panels")
)

// numbers converts floats to JSON-safe values; NaN and Inf become null.
func numbers(vals []float64) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out[i] = nil
			continue
		}
		out[i] = v
	}
	return out
}

func labels(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
