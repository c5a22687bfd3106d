// Package pages declares the dashboard pages: their layouts and the callbacks
// that fill their charts.
package pages

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/agenthands/discourse/internal/ui"
)

var (
	ErrUnknownPage    = errors.New("unknown page")
	ErrUnknownOutput  = errors.New("unknown callback output")
	ErrDuplicatePage  = errors.New("duplicate page")
	ErrInvalidBinding = errors.New("invalid binding")
)

// Values holds component input values keyed by component id.
type Values map[string]any

func (v Values) String(id string) string {
	switch x := v[id].(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// Int reads a click count. JSON numbers arrive as float64 and query string
// values as text.
func (v Values) Int(id string) int {
	switch x := v[id].(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	case string:
		n, _ := strconv.Atoi(x)
		return n
	default:
		return 0
	}
}

func (v Values) Bool(id string) bool {
	switch x := v[id].(type) {
	case bool:
		return x
	case string:
		b, _ := strconv.ParseBool(x)
		return b
	default:
		return false
	}
}

type Output struct {
	ID       string
	Property string
}

func (o Output) String() string { return o.ID + "." + o.Property }

// Binding recomputes one output property whenever one of its inputs changes.
// State is read along with the inputs but does not trigger the callback.
type Binding struct {
	Output Output
	Inputs []ui.Dependency
	State  []ui.Dependency
	Handle func(ctx context.Context, v Values) (any, error)
}

type Page struct {
	Slug     string
	Path     string
	Name     string
	Order    int
	Layout   func() ui.Component
	Bindings []Binding
}

// Defaults returns the initial value of every input component on the page.
func (p *Page) Defaults() Values {
	return Values(ui.Defaults(p.Layout()))
}

// Binding finds a callback by "id.property" or, when unambiguous, by id.
func (p *Page) Binding(key string) (*Binding, error) {
	var match *Binding
	for i := range p.Bindings {
		b := &p.Bindings[i]
		if b.Output.String() == key {
			return b, nil
		}
		if b.Output.ID == key {
			if match != nil {
				return nil, fmt.Errorf("%w: %q is ambiguous on page %s", ErrUnknownOutput, key, p.Slug)
			}
			match = b
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %q on page %s", ErrUnknownOutput, key, p.Slug)
	}
	return match, nil
}

type CallbackRequest struct {
	Output string `json:"output" binding:"required"`
	Inputs Values `json:"inputs"`
	State  Values `json:"state"`
}

type CallbackResponse struct {
	Output   string `json:"output"`
	Property string `json:"property"`
	Value    any    `json:"value"`
}

// Call runs the binding named by req.Output. Inputs and state missing from the
// request take the page defaults.
func (p *Page) Call(ctx context.Context, req CallbackRequest) (*CallbackResponse, error) {
	b, err := p.Binding(req.Output)
	if err != nil {
		return nil, err
	}

	defaults := p.Defaults()
	values := make(Values, len(b.Inputs)+len(b.State))
	resolve := func(deps []ui.Dependency, given Values) {
		for _, d := range deps {
			if v, ok := given[d.ID]; ok && v != nil {
				values[d.ID] = v
				continue
			}
			values[d.ID] = defaults[d.ID]
		}
	}
	resolve(b.Inputs, req.Inputs)
	resolve(b.State, req.State)

	value, err := b.Handle(ctx, values)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", p.Slug, b.Output, err)
	}
	return &CallbackResponse{Output: b.Output.String(), Property: b.Output.Property, Value: value}, nil
}

// BindingViews describes the page callbacks for the browser.
func (p *Page) BindingViews() []ui.BindingView {
	out := make([]ui.BindingView, len(p.Bindings))
	for i, b := range p.Bindings {
		out[i] = ui.BindingView{
			Output:   b.Output.String(),
			ID:       b.Output.ID,
			Property: b.Output.Property,
			Inputs:   b.Inputs,
			State:    b.State,
		}
	}
	return out
}

func (p *Page) validate() error {
	if p.Slug == "" || p.Path == "" || p.Layout == nil {
		return fmt.Errorf("%w: page %q needs a slug, a path and a layout", ErrInvalidBinding, p.Name)
	}

	known := make(map[string]bool)
	for _, id := range ui.IDs(p.Layout()) {
		known[id] = true
	}
	outputs := make(map[string]bool)
	for _, b := range p.Bindings {
		key := b.Output.String()
		if outputs[key] {
			return fmt.Errorf("%w: output %s bound twice on page %s", ErrInvalidBinding, key, p.Slug)
		}
		outputs[key] = true
		if b.Handle == nil || len(b.Inputs) == 0 {
			return fmt.Errorf("%w: output %s needs inputs and a handler", ErrInvalidBinding, key)
		}
		for _, id := range append([]string{b.Output.ID}, depIDs(b.Inputs, b.State)...) {
			if !known[id] {
				return fmt.Errorf("%w: %s references %q, not in the layout of page %s", ErrInvalidBinding, key, id, p.Slug)
			}
		}
	}
	return nil
}

func depIDs(groups ...[]ui.Dependency) []string {
	var ids []string
	for _, deps := range groups {
		for _, d := range deps {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// ToggleFAQ flips the FAQ panel once the toggle has been clicked.
func ToggleFAQ(nClicks int, isOpen bool) bool {
	if nClicks > 0 {
		return !isOpen
	}
	return isOpen
}
