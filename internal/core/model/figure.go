package model

// Figure is a declarative chart: traces plus layout, serialized in the shape
// Plotly expects. A Figure is built per request and never cached.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type      string   `json:"type"`
	Name      string   `json:"name,omitempty"`
	X         []any    `json:"x"`
	Y         []any    `json:"y"`
	Text      []string `json:"text,omitempty"`
	Mode      string   `json:"mode,omitempty"`
	HoverInfo string   `json:"hoverinfo,omitempty"`
	HoverText []string `json:"hovertext,omitempty"`
	// Visible is true, false or "legendonly".
	Visible any     `json:"visible,omitempty"`
	Marker  *Marker `json:"marker,omitempty"`
	Line    *Line   `json:"line,omitempty"`
	XAxis   string  `json:"xaxis,omitempty"`
	YAxis   string  `json:"yaxis,omitempty"`
}

type Marker struct {
	Color any   `json:"color,omitempty"`
	Size  any   `json:"size,omitempty"`
	Line  *Line `json:"line,omitempty"`
}

type Line struct {
	Width float64 `json:"width,omitempty"`
	Color string  `json:"color,omitempty"`
}

type Layout struct {
	Title       *Title       `json:"title,omitempty"`
	ShowLegend  *bool        `json:"showlegend,omitempty"`
	HoverMode   string       `json:"hovermode,omitempty"`
	Margin      *Margin      `json:"margin,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	XAxis2      *Axis        `json:"xaxis2,omitempty"`
	YAxis2      *Axis        `json:"yaxis2,omitempty"`
	Legend      *Legend      `json:"legend,omitempty"`
	UpdateMenus []UpdateMenu `json:"updatemenus,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

type Title struct {
	Text string `json:"text"`
}

type Margin struct {
	B int `json:"b"`
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
}

type Axis struct {
	Title          *Title    `json:"title,omitempty"`
	Type           string    `json:"type,omitempty"`
	Domain         []float64 `json:"domain,omitempty"`
	Anchor         string    `json:"anchor,omitempty"`
	ShowGrid       *bool     `json:"showgrid,omitempty"`
	ZeroLine       *bool     `json:"zeroline,omitempty"`
	ShowTickLabels *bool     `json:"showticklabels,omitempty"`
}

type Legend struct {
	Title *Title `json:"title,omitempty"`
}

// UpdateMenu is a dropdown of buttons that restyle the figure client side.
type UpdateMenu struct {
	Buttons    []MenuButton `json:"buttons"`
	ShowActive bool         `json:"showactive"`
}

type MenuButton struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

type Annotation struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	XAnchor   string  `json:"xanchor"`
	YAnchor   string  `json:"yanchor"`
	ShowArrow bool    `json:"showarrow"`
}

func Bool(b bool) *bool { return &b }

func NewTitle(text string) *Title { return &Title{Text: text} }
