package pages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/discourse/internal/core/charts"
	"github.com/agenthands/discourse/internal/core/model"
	"github.com/agenthands/discourse/internal/data"
	"github.com/agenthands/discourse/internal/ui"
)

func table(t *testing.T, columns []string, rows ...[]string) *data.Table {
	t.Helper()
	tbl, err := data.NewTable(columns, rows)
	require.NoError(t, err)
	return tbl
}

func communities(t *testing.T) *data.KeywordMap {
	t.Helper()
	cols := []string{"SourceModularity", "TargetModularity", "agreement", "edge_bet", "originalUsernamePost"}
	fraud := table(t, cols,
		[]string{"1", "2", "1", "0.4", "alice"},
		[]string{"2", "3", "-1", "0.2", "bob"},
	)
	vote := table(t, cols,
		[]string{"7", "8", "-1", "0.9", "carol"},
		[]string{"8", "8", "1", "0.1", "dave"},
	)
	km, err := data.NewKeywordMap([]string{"fraud", "vote"}, map[string]*data.Table{"fraud": fraud, "vote": vote})
	require.NoError(t, err)
	return km
}

func polarizationPage(t *testing.T) *Page {
	t.Helper()
	counts := table(t, []string{"top_keywords", "top_occurrences"}, []string{"vote", "10"}, []string{"fraud", "4"})
	edges := table(t, []string{"agreement", "edge_bet"},
		[]string{"1", "0.1"}, []string{"-1", "0.3"}, []string{"1", "0.2"})
	km, err := data.NewKeywordMap([]string{"vote"}, map[string]*data.Table{"vote": edges})
	require.NoError(t, err)
	return Polarization(counts, km, charts.DefaultPercentileOptions())
}

func TestToggleFAQ(t *testing.T) {
	assert.False(t, ToggleFAQ(0, false), "no clicks keeps the panel as is")
	assert.True(t, ToggleFAQ(0, true))

	for _, start := range []bool{false, true} {
		once := ToggleFAQ(1, start)
		assert.Equal(t, !start, once)
		assert.Equal(t, start, ToggleFAQ(2, once))
	}
}

func TestPolarization_Defaults(t *testing.T) {
	assert.Equal(t, Values{
		faqToggleID:   0,
		faqCollapseID: false,
		dummyInputID:  "dummy",
	}, polarizationPage(t).Defaults())
}

func TestPolarization_FAQCallback(t *testing.T) {
	p := polarizationPage(t)
	ctx := context.Background()

	// the browser sends JSON numbers
	res, err := p.Call(ctx, CallbackRequest{
		Output: "faq_collapse.is_open",
		Inputs: Values{faqToggleID: float64(1)},
		State:  Values{faqCollapseID: false},
	})
	require.NoError(t, err)
	assert.Equal(t, "faq_collapse.is_open", res.Output)
	assert.Equal(t, ui.PropIsOpen, res.Property)
	assert.Equal(t, true, res.Value)

	res, err = p.Call(ctx, CallbackRequest{
		Output: faqCollapseID,
		Inputs: Values{faqToggleID: float64(2)},
		State:  Values{faqCollapseID: true},
	})
	require.NoError(t, err)
	assert.Equal(t, false, res.Value)

	// initial call carries nothing and leaves the panel closed
	res, err = p.Call(ctx, CallbackRequest{Output: faqCollapseID})
	require.NoError(t, err)
	assert.Equal(t, false, res.Value)
}

func TestPolarization_Figures(t *testing.T) {
	p := polarizationPage(t)

	res, err := p.Call(context.Background(), CallbackRequest{Output: keywordsBarplotID})
	require.NoError(t, err)
	fig := res.Value.(*model.Figure)
	assert.Equal(t, []any{"vote", "fraud"}, fig.Data[0].X)

	res, err = p.Call(context.Background(), CallbackRequest{Output: percentilesPlotID + ".figure"})
	require.NoError(t, err)
	fig = res.Value.(*model.Figure)
	assert.Len(t, fig.Data, charts.TracesPerKeyword)
}

func TestInsights_Callback(t *testing.T) {
	active := table(t, []string{"most_active_users", "value"}, []string{"alice", "10"}, []string{"bob", "5"})
	mentioned := table(t, []string{"most_mentioned_users", "value"}, []string{"carol", "3"})
	p := Insights(active, mentioned)

	res, err := p.Call(context.Background(), CallbackRequest{Output: usersBarplotID, Inputs: Values{dummyInputID: "dummy"}})
	require.NoError(t, err)

	fig := res.Value.(*model.Figure)
	require.Len(t, fig.Data, 2)
	assert.Len(t, fig.Data[0].X, 2)
	assert.Len(t, fig.Data[1].X, 1)
}

func TestRelationships_DefaultKeyword(t *testing.T) {
	p := Relationships(communities(t), charts.DefaultNetworkOptions())

	assert.Equal(t, Values{keywordDropdownID: "fraud"}, p.Defaults())

	res, err := p.Call(context.Background(), CallbackRequest{Output: networkGraphID})
	require.NoError(t, err)
	fig := res.Value.(*model.Figure)
	assert.Contains(t, fig.Layout.Title.Text, `"fraud"`)
}

func TestRelationships_SelectKeyword(t *testing.T) {
	p := Relationships(communities(t), charts.DefaultNetworkOptions())

	res, err := p.Call(context.Background(), CallbackRequest{
		Output: networkGraphID,
		Inputs: Values{keywordDropdownID: "vote"},
	})
	require.NoError(t, err)

	fig := res.Value.(*model.Figure)
	// the 8 -> 8 row stays inside one community
	assert.Len(t, fig.Data, 2)
}

func TestRelationships_UnknownKeyword(t *testing.T) {
	p := Relationships(communities(t), charts.DefaultNetworkOptions())

	_, err := p.Call(context.Background(), CallbackRequest{
		Output: networkGraphID,
		Inputs: Values{keywordDropdownID: "elections"},
	})
	require.ErrorIs(t, err, data.ErrUnknownKeyword)
	assert.Contains(t, err.Error(), `"elections"`)
}

func TestPage_UnknownOutput(t *testing.T) {
	_, err := polarizationPage(t).Call(context.Background(), CallbackRequest{Output: "network-graph"})
	assert.ErrorIs(t, err, ErrUnknownOutput)
}

func TestValues(t *testing.T) {
	v := Values{"a": float64(3), "b": "4", "c": "true", "d": true, "e": 12}

	assert.Equal(t, 3, v.Int("a"))
	assert.Equal(t, 4, v.Int("b"))
	assert.Equal(t, 0, v.Int("missing"))
	assert.True(t, v.Bool("c"))
	assert.True(t, v.Bool("d"))
	assert.Equal(t, "12", v.String("e"))
	assert.Equal(t, "", v.String("missing"))
}
