package pages

import (
	"context"

	"github.com/agenthands/discourse/internal/core/charts"
	"github.com/agenthands/discourse/internal/data"
	"github.com/agenthands/discourse/internal/ui"
)

const (
	usersBarplotID = "users_barplot"
	dummyInputID   = "dummy-input"
)

// Insights shows the most active and the most mentioned users side by side.
func Insights(mostActive, mostMentioned *data.Table) *Page {
	return &Page{
		Slug:   "insights",
		Path:   "/insights",
		Name:   "6th of January",
		Order:  1,
		Layout: insightsLayout,
		Bindings: []Binding{{
			Output: Output{ID: usersBarplotID, Property: ui.PropFigure},
			Inputs: []ui.Dependency{{ID: dummyInputID, Property: ui.PropValue}},
			Handle: func(context.Context, Values) (any, error) {
				return charts.SideBySideBars(
					charts.BarPanel{Title: "Most Active Users", Table: mostActive, XCol: "most_active_users", YCol: "value"},
					charts.BarPanel{Title: "Most Mentioned Users", Table: mostMentioned, XCol: "most_mentioned_users", YCol: "value"},
				)
			},
		}},
	}
}

func insightsLayout() ui.Component {
	return ui.Container(
		ui.Row(ui.Col(12, 0,
			ui.H1("The 6th of January: Decoding Democracy Through Twitter"),
			ui.P("What if we told you that the heartbeat of democracy could be traced in 280 characters or less? "+
				"From October 2020 to January 2021, we delved into the vibrant and volatile world of Twitter to dissect the discourse "+
				"around the infamous U.S. presidential election of 2020. "+
				"Welcome to a digital exploration that uncovers the unexpected and confronts the unimaginable."),
		)),
		ui.Row(ui.Col(12, 0,
			ui.Image("/assets/Poster_Unleash_def.png", "Twitter activity infographic"),
			ui.P("This infographic provides a deep investigation of Twitter activity during the critical period from October 2020 "+
				"to January 6, 2021. This period marked a crucial time in U.S. politics, witnessing an unprecedented level of discourse "+
				"on the digital stage. The focus of our analysis is on the ego networks of Twitter, which represent intricate structures "+
				"of interaction centered around influential individuals, or 'egos'. These influencers play a significant role in shaping "+
				"the dialogue within their networks, thereby influencing the patterns of agreement and disagreement that were particularly "+
				"noticeable during this remarkable time. The first visualization in our study provides an insightful snapshot of these ego "+
				"networks, illuminating the nature of political conversations in the online space during this crucial period."),
		)),
		ui.Spacer(30),
		ui.Row(ui.Col(12, 0,
			ui.H3("Insights from the Digital Battlefield"),
			ui.P("Beyond the hashtags and retweets, Twitter holds a mirror to society. "+
				"Our analysis reveals startling patterns and influential actors who steer the currents of conversation."),
		)),
		ui.Row(ui.Col(8, 2,
			ui.Graph(usersBarplotID, nil),
			ui.P("Step into the heart of the conversation with these key insights."),
		)),
		ui.Spacer(30),
		ui.Row(ui.Col(12, 0, ui.Link("Venture Back to Main Page", "/").WithAlign("center"))),
		ui.Row(ui.Col(12, 0, ui.Hidden(dummyInputID, "dummy"))),
	)
}
