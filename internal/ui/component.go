// Package ui composes pages out of a small set of Bootstrap components and
// renders them to HTML.
package ui

import "github.com/agenthands/discourse/internal/core/model"

type Kind string

const (
	KindContainer Kind = "container"
	KindRow       Kind = "row"
	KindCol       Kind = "col"
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindImage     Kind = "image"
	KindGraph     Kind = "graph"
	KindDropdown  Kind = "dropdown"
	KindButton    Kind = "button"
	KindCollapse  Kind = "collapse"
	KindCard      Kind = "card"
	KindLink      Kind = "link"
	KindSpacer    Kind = "spacer"
	KindHidden    Kind = "hidden"
)

// Input properties a callback can read from a component.
const (
	PropValue   = "value"
	PropNClicks = "n_clicks"
	PropIsOpen  = "is_open"
	PropFigure  = "figure"
)

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Component is one node of a page layout. Only the fields relevant to Kind
// are set.
type Component struct {
	Kind     Kind          `json:"kind"`
	ID       string        `json:"id,omitempty"`
	Text     string        `json:"text,omitempty"`
	Level    int           `json:"level,omitempty"`
	Width    int           `json:"width,omitempty"`
	Offset   int           `json:"offset,omitempty"`
	Align    string        `json:"align,omitempty"`
	Class    string        `json:"class,omitempty"`
	Href     string        `json:"href,omitempty"`
	Src      string        `json:"src,omitempty"`
	Height   int           `json:"height,omitempty"`
	Figure   *model.Figure `json:"figure,omitempty"`
	Options  []Option      `json:"options,omitempty"`
	Value    string        `json:"value,omitempty"`
	Open     bool          `json:"open,omitempty"`
	Header   string        `json:"header,omitempty"`
	Children []Component   `json:"children,omitempty"`
}

func Container(children ...Component) Component {
	return Component{Kind: KindContainer, Children: children}
}

func Row(children ...Component) Component {
	return Component{Kind: KindRow, Children: children}
}

// Col is a grid column of width out of 12, shifted right by offset.
func Col(width, offset int, children ...Component) Component {
	return Component{Kind: KindCol, Width: width, Offset: offset, Children: children}
}

func Heading(level int, text string) Component {
	return Component{Kind: KindHeading, Level: level, Text: text, Align: "center"}
}

func H1(text string) Component { return Heading(1, text) }
func H3(text string) Component { return Heading(3, text) }
func H4(text string) Component { return Heading(4, text) }

func P(text string) Component {
	return Component{Kind: KindParagraph, Text: text, Align: "center"}
}

func Image(src, alt string) Component {
	return Component{Kind: KindImage, Src: src, Text: alt}
}

// Graph is a chart placeholder. A nil figure is filled by a callback.
func Graph(id string, fig *model.Figure) Component {
	return Component{Kind: KindGraph, ID: id, Figure: fig}
}

// Dropdown is a single-select that cannot be cleared.
func Dropdown(id string, options []Option, value string) Component {
	return Component{Kind: KindDropdown, ID: id, Options: options, Value: value}
}

func Button(id, label string) Component {
	return Component{Kind: KindButton, ID: id, Text: label}
}

func Collapse(id string, open bool, children ...Component) Component {
	return Component{Kind: KindCollapse, ID: id, Open: open, Children: children}
}

func Card(header, body string) Component {
	return Component{Kind: KindCard, Header: header, Text: body}
}

func Link(text, href string) Component {
	return Component{Kind: KindLink, Text: text, Href: href}
}

// Spacer is an empty block of the given height in pixels.
func Spacer(height int) Component {
	return Component{Kind: KindSpacer, Height: height}
}

func Hidden(id, value string) Component {
	return Component{Kind: KindHidden, ID: id, Value: value}
}

// WithAlign returns c with its text alignment replaced.
func (c Component) WithAlign(align string) Component {
	c.Align = align
	return c
}

// WithClass returns c with extra CSS classes.
func (c Component) WithClass(class string) Component {
	c.Class = class
	return c
}

// Walk visits c and its descendants depth first. Returning false from fn
// skips the children of the visited component.
func Walk(c Component, fn func(Component) bool) {
	if !fn(c) {
		return
	}
	for _, child := range c.Children {
		Walk(child, fn)
	}
}

// Defaults returns the initial input value of every identified component:
// the selected value of dropdowns and hidden inputs, zero clicks for buttons
// and the open flag of collapses.
func Defaults(root Component) map[string]any {
	out := make(map[string]any)
	Walk(root, func(c Component) bool {
		if c.ID == "" {
			return true
		}
		switch c.Kind {
		case KindDropdown, KindHidden:
			out[c.ID] = c.Value
		case KindButton:
			out[c.ID] = 0
		case KindCollapse:
			out[c.ID] = c.Open
		}
		return true
	})
	return out
}

// IDs lists the identified components in document order.
func IDs(root Component) []string {
	var ids []string
	Walk(root, func(c Component) bool {
		if c.ID != "" {
			ids = append(ids, c.ID)
		}
		return true
	})
	return ids
}
