package pages

import (
	"context"

	"github.com/agenthands/discourse/internal/core/charts"
	"github.com/agenthands/discourse/internal/data"
	"github.com/agenthands/discourse/internal/ui"
)

const (
	keywordsBarplotID = "keywords_barplot"
	percentilesPlotID = "edge_bet_percentiles_plot"
	faqToggleID       = "faq_toggle"
	faqCollapseID     = "faq_collapse"
)

type faqEntry struct{ question, answer string }

var methodFAQ = []faqEntry{
	{
		"1. Identify the most common keywords related to the political discourse.",
		"In this analysis, we first identify the top 7 keywords that are most frequently mentioned in the collected Twitter data. " +
			"This helps to narrow down the focus of our analysis on the most relevant topics in the political discourse.",
	},
	{
		"2. Use the greedy modularity algorithm to find communities for each keyword.",
		"We then use the greedy modularity algorithm to identify communities for each keyword. This algorithm is a popular method " +
			"for detecting communities in networks, allowing us to group users that are closely related in the context of the keyword.",
	},
	{
		"3. Compute the level of agreement within each community using the RoBERTa-large algorithm.",
		"Next, we compute the level of agreement within each community using the RoBERTa-large algorithm, which is a state-of-the-art " +
			"natural language processing model. By analyzing the sentiment and content of the tweets, this algorithm allows us to " +
			"understand the degree of agreement among users within each community.",
	},
	{
		"4. Visualize the level of polarization within communities using the Kruskal-Wallis test.",
		"Finally, we visualize the level of polarization within communities using the Kruskal-Wallis test. This statistical test " +
			"helps us compare the distributions of edge betweenness within communities, allowing us to observe how polarized the " +
			"communities are based on the selected keywords.",
	},
}

// Polarization shows the top keywords and, per keyword, the upper percentiles
// of edge betweenness split by agreement.
func Polarization(keywordCounts *data.Table, edges *data.KeywordMap, opts charts.PercentileOptions) *Page {
	dummy := []ui.Dependency{{ID: dummyInputID, Property: ui.PropValue}}
	return &Page{
		Slug:   "polarization",
		Path:   "/polarization",
		Name:   "Polarization",
		Order:  2,
		Layout: polarizationLayout,
		Bindings: []Binding{
			{
				Output: Output{ID: keywordsBarplotID, Property: ui.PropFigure},
				Inputs: dummy,
				Handle: func(context.Context, Values) (any, error) {
					return charts.Bar(keywordCounts, "top_keywords", "top_occurrences", "Keywords", "Occurrences")
				},
			},
			{
				Output: Output{ID: percentilesPlotID, Property: ui.PropFigure},
				Inputs: dummy,
				Handle: func(context.Context, Values) (any, error) {
					return charts.PercentileOverlay(edges, opts)
				},
			},
			{
				Output: Output{ID: faqCollapseID, Property: ui.PropIsOpen},
				Inputs: []ui.Dependency{{ID: faqToggleID, Property: ui.PropNClicks}},
				State:  []ui.Dependency{{ID: faqCollapseID, Property: ui.PropIsOpen}},
				Handle: func(_ context.Context, v Values) (any, error) {
					return ToggleFAQ(v.Int(faqToggleID), v.Bool(faqCollapseID)), nil
				},
			},
		},
	}
}

func polarizationLayout() ui.Component {
	cards := make([]ui.Component, len(methodFAQ))
	for i, e := range methodFAQ {
		cards[i] = ui.Card(e.question, e.answer)
	}

	return ui.Container(
		ui.Row(ui.Col(12, 0,
			ui.H1("Unveiling Polarization: A Twitter Discourse Analysis"),
			ui.P("Journey with us as we delve into the Twitterverse, harnessing the power of keywords to unravel political discourse. "+
				"Our exploration reveals not only the most tweeted keywords, but also the polarization within communities. "+
				"This unique insight allows us to gauge the state of political discourse with unparalleled depth."),
		)).WithClass("my-5"),
		ui.Row(
			ui.Col(8, 0,
				ui.H4("Top 7 Keywords by Occurrence: The Power Players of Political Discourse"),
				ui.Graph(keywordsBarplotID, nil),
			),
			ui.Col(4, 0, ui.Card("", "This visualization represents the most influential keywords that shaped the Twitter discourse "+
				"during the politically charged period from October 2020 to January 6, 2021. The identified keywords played a central "+
				"role in driving conversations within the intricate ego networks of influential individuals. Understanding the prevalence "+
				"of these keywords gives us insights into the themes that were central to political dialogues during this period.").
				WithClass("mt-5")),
		),
		ui.Row(
			ui.Col(8, 0,
				ui.H4("Edge Betweenness Percentiles: Unveiling the Bridge Keywords"),
				ui.Graph(percentilesPlotID, nil),
			),
			ui.Col(4, 0, ui.Card("", "This visualization helps us understand the patterns of agreement and disagreement that were "+
				"prominent during this significant period. The edge betweenness metric reveals the potential bridge keywords which have "+
				"significant influence in connecting different communities. This analysis, along with the use of the RoBERTa-large model "+
				"and the Greedy Modularity algorithm, helped us to better understand the dynamics of these discussions and the role of "+
				"ego networks in shaping public opinion.").
				WithClass("mt-5")),
		),
		ui.Row(ui.Col(12, 0,
			ui.H4("How We Did It: A Peek Behind The Curtain").WithAlign("left"),
			ui.Button(faqToggleID, "FAQ"),
			ui.Collapse(faqCollapseID, false, cards...),
		)),
		ui.Row(ui.Col(12, 0, ui.Link("Want more? Return to the main page", "/").WithAlign("center"))),
		ui.Row(ui.Col(12, 0, ui.Hidden(dummyInputID, "dummy"))),
	)
}
