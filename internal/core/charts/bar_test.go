package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/discourse/internal/data"
)

func TestBar(t *testing.T) {
	tbl := mustTable(t, []string{"top_keywords", "top_occurrences"},
		[]string{"vote", "120"},
		[]string{"fraud", "87"},
		[]string{"capitol", ""},
	)

	fig, err := Bar(tbl, "top_keywords", "top_occurrences", "Keywords", "Occurrences")
	require.NoError(t, err)
	require.Len(t, fig.Data, 1)

	tr := fig.Data[0]
	assert.Equal(t, "bar", tr.Type)
	assert.Equal(t, []any{"vote", "fraud", "capitol"}, tr.X)
	assert.Equal(t, []any{120.0, 87.0, nil}, tr.Y)
	assert.Equal(t, "Keywords", fig.Layout.XAxis.Title.Text)
	assert.Equal(t, "Occurrences", fig.Layout.YAxis.Title.Text)
}

func TestBar_MissingColumn(t *testing.T) {
	tbl := mustTable(t, []string{"top_keywords"}, []string{"vote"})

	_, err := Bar(tbl, "top_keywords", "top_occurrences", "", "")
	assert.ErrorIs(t, err, data.ErrMissingColumn)
}

func TestSideBySideBars(t *testing.T) {
	active := mustTable(t, []string{"user", "posts"},
		[]string{"alice", "10"}, []string{"bob", "7"}, []string{"carol", "3"})
	mentioned := mustTable(t, []string{"user", "mentions"},
		[]string{"dave", "40"}, []string{"erin", "31"}, []string{"frank", "22"},
		[]string{"gina", "9"}, []string{"hal", "2"})

	fig, err := SideBySideBars(
		BarPanel{Title: "Most Active Users", Table: active, XCol: "user", YCol: "posts"},
		BarPanel{Title: "Most Mentioned Users", Table: mentioned, XCol: "user", YCol: "mentions"},
	)
	require.NoError(t, err)

	require.Len(t, fig.Data, 2)
	assert.Len(t, fig.Data[0].X, 3)
	assert.Len(t, fig.Data[1].X, 5)
	assert.Equal(t, "x", fig.Data[0].XAxis)
	assert.Equal(t, "y2", fig.Data[1].YAxis)

	require.NotNil(t, fig.Layout.ShowLegend)
	assert.False(t, *fig.Layout.ShowLegend)

	assert.InDeltaSlice(t, []float64{0, 0.45}, fig.Layout.XAxis.Domain, 1e-9)
	assert.InDeltaSlice(t, []float64{0.55, 1}, fig.Layout.XAxis2.Domain, 1e-9)
	assert.Equal(t, "x2", fig.Layout.YAxis2.Anchor)

	require.Len(t, fig.Layout.Annotations, 2)
	assert.Equal(t, "Most Mentioned Users", fig.Layout.Annotations[1].Text)
	assert.InDelta(t, 0.775, fig.Layout.Annotations[1].X, 1e-9)
	assert.Equal(t, "bottom", fig.Layout.Annotations[1].YAnchor)
}

func TestSideBySideBars_PanelCount(t *testing.T) {
	_, err := SideBySideBars()
	assert.ErrorIs(t, err, ErrTooManyPanels)

	tbl := mustTable(t, []string{"x", "y"}, []string{"a", "1"})
	p := BarPanel{Table: tbl, XCol: "x", YCol: "y"}
	_, err = SideBySideBars(p, p, p)
	assert.ErrorIs(t, err, ErrTooManyPanels)
}
