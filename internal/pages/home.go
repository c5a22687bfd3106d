package pages

import "github.com/agenthands/discourse/internal/ui"

func Home() *Page {
	return &Page{
		Slug:  "home",
		Path:  "/",
		Name:  "Home",
		Order: 0,
		Layout: func() ui.Component {
			return ui.Container(
				ui.Row(ui.Col(12, 0,
					ui.H1("Decoding Democracy: The 2020 Election on Twitter"),
					ui.P("From October 2020 to January 2021 we followed the conversation around the U.S. presidential election. "+
						"Every page below looks at the same discourse from a different angle."),
				)),
				ui.Spacer(30),
				ui.Row(
					ui.Col(4, 0,
						ui.Card("6th of January", "Who drove the conversation: the most active and the most mentioned users."),
						ui.Link("Open the insights", "/insights"),
					),
					ui.Col(4, 0,
						ui.Card("Polarization", "The keywords that dominated the debate and how agreement and disagreement bridge communities."),
						ui.Link("Open the polarization analysis", "/polarization"),
					),
					ui.Col(4, 0,
						ui.Card("Relationships", "A keyword-centric network of the communities that talked to each other."),
						ui.Link("Open the network", "/relationships"),
					),
				),
			)
		},
	}
}
