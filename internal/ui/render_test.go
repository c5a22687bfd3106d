package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/discourse/internal/core/model"
)

func TestRenderer_Render(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	fig := &model.Figure{Data: []model.Trace{{Type: "bar", X: []any{"a"}, Y: []any{1.0}}}}
	body := Container(
		Row(Col(12, 0, H1("Polarization <live>"))),
		Graph("inline-plot", fig),
		sampleLayout(),
	)
	nav := []NavLink{{Name: "Home", Path: "/"}, {Name: "Relationships", Path: "/relationships", Active: true}}
	bindings := []BindingView{{
		Output:   "network-graph.figure",
		ID:       "network-graph",
		Property: PropFigure,
		Inputs:   []Dependency{{ID: "keyword-dropdown", Property: PropValue}},
	}}
	view := NewView("Discourse", "Relationships", nav, body, "/api/pages/relationships/callbacks", bindings)
	require.Contains(t, view.Figures, "inline-plot")

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, view))
	html := buf.String()

	assert.Contains(t, html, "<title>Relationships | Discourse</title>")
	assert.Contains(t, html, "Polarization &lt;live&gt;")
	assert.Contains(t, html, `<a class="nav-link active" href="/relationships">Relationships</a>`)
	assert.Contains(t, html, `<div class="col-md-6 offset-md-3">`)
	assert.Contains(t, html, `<option value="vote" selected>vote</option>`)
	assert.Contains(t, html, `<option value="fraud">fraud</option>`)
	assert.Contains(t, html, `<div id="faq_collapse" class="collapse">`)
	assert.Contains(t, html, `<input id="dummy-input" type="hidden" value="dummy">`)
	assert.Contains(t, html, `network-graph.figure`)
	assert.Contains(t, html, `"inline-plot"`)
	assert.Contains(t, html, PlotlyJS)
	assert.Contains(t, html, "Plotly.react")
}

func TestRenderer_OpenCollapse(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	view := NewView("Discourse", "FAQ", nil, Collapse("faq", true, Card("", "only body")), "/cb", nil)
	require.NoError(t, r.Render(&buf, view))

	assert.Contains(t, buf.String(), `<div id="faq" class="collapse show">`)
	assert.NotContains(t, buf.String(), "card-header")
}
