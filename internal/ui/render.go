package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/agenthands/discourse/internal/core/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	// PageTemplate is the name to execute for a full page.
	PageTemplate = "page.html"

	BootstrapCSS = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css"
	PlotlyJS     = "https://cdn.plot.ly/plotly-2.35.2.min.js"
)

type NavLink struct {
	Name   string
	Path   string
	Active bool
}

// Dependency names one property of a component a callback reads.
type Dependency struct {
	ID       string `json:"id"`
	Property string `json:"property"`
}

// BindingView is the browser side of a callback: which elements to read and
// which element receives the result.
type BindingView struct {
	Output   string       `json:"output"`
	ID       string       `json:"id"`
	Property string       `json:"property"`
	Inputs   []Dependency `json:"inputs"`
	State    []Dependency `json:"state,omitempty"`
}

// View is everything the page template needs.
type View struct {
	Brand        string
	Title        string
	Nav          []NavLink
	Body         Component
	CallbackURL  string
	Bindings     []BindingView
	Figures      map[string]*model.Figure
	BootstrapCSS string
	PlotlyJS     string
}

// NewView prepares a page view, collecting the figures inlined in body.
func NewView(brand, title string, nav []NavLink, body Component, callbackURL string, bindings []BindingView) View {
	figures := make(map[string]*model.Figure)
	Walk(body, func(c Component) bool {
		if c.Kind == KindGraph && c.Figure != nil {
			figures[c.ID] = c.Figure
		}
		return true
	})
	return View{
		Brand:        brand,
		Title:        title,
		Nav:          nav,
		Body:         body,
		CallbackURL:  callbackURL,
		Bindings:     bindings,
		Figures:      figures,
		BootstrapCSS: BootstrapCSS,
		PlotlyJS:     PlotlyJS,
	}
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("ui").Funcs(template.FuncMap{
		"colClass":   colClass,
		"alignClass": alignClass,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Template exposes the parsed set for frameworks that execute templates
// themselves.
func (r *Renderer) Template() *template.Template { return r.tmpl }

func (r *Renderer) Render(w io.Writer, v View) error {
	return r.tmpl.ExecuteTemplate(w, PageTemplate, v)
}

func colClass(c Component) string {
	class := "col-12"
	if c.Width > 0 {
		class = fmt.Sprintf("col-md-%d", c.Width)
	}
	if c.Offset > 0 {
		class += fmt.Sprintf(" offset-md-%d", c.Offset)
	}
	if c.Align != "" {
		class += " " + alignClass(c)
	}
	if c.Class != "" {
		class += " " + c.Class
	}
	return class
}

func alignClass(c Component) string {
	switch c.Align {
	case "left":
		return "text-start"
	case "right":
		return "text-end"
	case "center":
		return "text-center"
	default:
		return ""
	}
}
