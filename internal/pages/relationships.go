package pages

import (
	"context"

	"github.com/agenthands/discourse/internal/core/charts"
	"github.com/agenthands/discourse/internal/data"
	"github.com/agenthands/discourse/internal/ui"
)

const (
	keywordDropdownID = "keyword-dropdown"
	networkGraphID    = "network-graph"
)

// Relationships draws the community network of the keyword picked in the
// dropdown.
func Relationships(communities *data.KeywordMap, opts charts.NetworkOptions) *Page {
	return &Page{
		Slug:   "relationships",
		Path:   "/relationships",
		Name:   "Relationships",
		Order:  3,
		Layout: func() ui.Component { return relationshipsLayout(communities.Keywords()) },
		Bindings: []Binding{{
			Output: Output{ID: networkGraphID, Property: ui.PropFigure},
			Inputs: []ui.Dependency{{ID: keywordDropdownID, Property: ui.PropValue}},
			Handle: func(_ context.Context, v Values) (any, error) {
				keyword := v.String(keywordDropdownID)
				t, err := communities.Lookup(keyword)
				if err != nil {
					return nil, err
				}
				return charts.Network(keyword, t, opts)
			},
		}},
	}
}

func relationshipsLayout(keywords []string) ui.Component {
	options := make([]ui.Option, len(keywords))
	for i, kw := range keywords {
		options[i] = ui.Option{Label: kw, Value: kw}
	}
	selected := ""
	if len(keywords) > 0 {
		selected = keywords[0]
	}

	return ui.Container(
		ui.Row(ui.Col(12, 0,
			ui.H1("Unraveling Relationships: A Keyword-Centric Network"),
			ui.P("Step into the network of discourse. Here, we illuminate the complex web spun by communities as they engage with "+
				"different keywords. Our graph, rooted in edge betweenness, reveals the intricate connections between communities. "+
				"Select a keyword from the dropdown menu below and let the exploration begin!"),
		)),
		ui.Row(ui.Col(6, 3, ui.Dropdown(keywordDropdownID, options, selected))),
		ui.Row(ui.Col(12, 0, ui.Graph(networkGraphID, nil))),
		ui.Row(ui.Col(12, 0, ui.Link("Eager for more insights? Return to the main page", "/").WithAlign("center"))),
	)
}
